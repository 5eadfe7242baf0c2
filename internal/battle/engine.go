package battle

import (
	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/entity"
	"github.com/samdwyer/timelock/internal/gamedata"
)

// ResultKind says what an input did.
type ResultKind int

const (
	// ResultIgnored - the input has no meaning in the current state
	ResultIgnored ResultKind = iota
	// ResultMoved - a cursor moved
	ResultMoved
	// ResultOpened - a submenu opened
	ResultOpened
	// ResultClosed - a submenu closed
	ResultClosed
	// ResultTargeting - target selection began
	ResultTargeting
	// ResultRejected - the action could not be paid for; nothing changed
	ResultRejected
	// ResultResolved - an action resolved and the player's turn is over
	ResultResolved
	// ResultFled - the player chose Run
	ResultFled
)

// String returns a human-readable result name.
func (k ResultKind) String() string {
	switch k {
	case ResultIgnored:
		return "ignored"
	case ResultMoved:
		return "moved"
	case ResultOpened:
		return "opened"
	case ResultClosed:
		return "closed"
	case ResultTargeting:
		return "targeting"
	case ResultRejected:
		return "rejected"
	case ResultResolved:
		return "resolved"
	case ResultFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Result is the definite outcome of one input.
type Result struct {
	Kind    ResultKind
	Action  *gamedata.ActionDef // Set for ResultResolved and ResultRejected
	Effects []combat.Effect     // Set for ResultResolved
	Message string
}

// Engine is the menu, submenu and targeting state machine for one player.
// It resolves the player's own actions and leaves turn order to Controller.
type Engine struct {
	player    *entity.Player
	roster    *entity.Roster
	resolver  *combat.ActionResolver
	presenter Presenter
	menus     [numOptions][]Entry

	state      MenuState
	selector   combat.Selector[*entity.Hostile]
	pending    *gamedata.ActionDef // Action waiting for a target
	playerTurn bool
}

// NewEngine creates an engine whose Attack and Defend submenus list the
// registry's actions in file order.
func NewEngine(player *entity.Player, actions *gamedata.ActionRegistry, presenter Presenter) *Engine {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	e := &Engine{
		player:    player,
		resolver:  combat.NewActionResolver(),
		presenter: presenter,
		state:     MainMenu{Selected: OptionAttack},
	}
	for _, opt := range Options() {
		menu, ok := opt.menu()
		if !ok {
			e.menus[opt] = []Entry{{Label: opt.String()}}
			continue
		}
		for _, action := range actions.ByMenu(menu) {
			e.menus[opt] = append(e.menus[opt], Entry{Label: action.Name, Action: action})
		}
	}
	return e
}

// Begin starts a fresh encounter against roster with the cursor on Attack.
func (e *Engine) Begin(roster *entity.Roster) {
	e.roster = roster
	if e.selector.Active() {
		e.selector.End()
	}
	e.pending = nil
	e.setState(MainMenu{Selected: OptionAttack})
	e.playerTurn = true
}

// SetPlayerTurn opens or closes the turn gate.
func (e *Engine) SetPlayerTurn(on bool) {
	e.playerTurn = on
}

// PlayerTurn reports whether input is accepted.
func (e *Engine) PlayerTurn() bool {
	return e.playerTurn
}

// State returns the current menu state.
func (e *Engine) State() MenuState {
	return e.state
}

// Entries returns the submenu listed under opt.
func (e *Engine) Entries(opt Option) []Entry {
	if opt < 0 || int(opt) >= numOptions {
		return nil
	}
	return e.menus[opt]
}

// Target returns the hostile under the targeting cursor, or nil outside targeting.
func (e *Engine) Target() *entity.Hostile {
	if !e.selector.Active() {
		return nil
	}
	return e.selector.Current()
}

// Handle interprets one input. It never panics on user input.
func (e *Engine) Handle(in Input) Result {
	if !e.playerTurn || e.roster == nil {
		return Result{Kind: ResultIgnored}
	}

	switch s := e.state.(type) {
	case MainMenu:
		return e.handleMainMenu(s, in)
	case Submenu:
		return e.handleSubmenu(s, in)
	case Targeting:
		return e.handleTargeting(in)
	default:
		return Result{Kind: ResultIgnored}
	}
}

func (e *Engine) handleMainMenu(s MainMenu, in Input) Result {
	switch in {
	case InputUp:
		e.setState(MainMenu{Selected: Option(wrap(int(s.Selected), -1, numOptions))})
		return Result{Kind: ResultMoved}
	case InputDown:
		e.setState(MainMenu{Selected: Option(wrap(int(s.Selected), 1, numOptions))})
		return Result{Kind: ResultMoved}
	case InputConfirm, InputRight:
		if s.Selected == OptionStats {
			e.presenter.ShowStats(SnapshotOf(e.player))
		}
		e.setState(Submenu{Option: s.Selected, Selected: 0})
		return Result{Kind: ResultOpened}
	default:
		return Result{Kind: ResultIgnored}
	}
}

func (e *Engine) handleSubmenu(s Submenu, in Input) Result {
	entries := e.menus[s.Option]
	if len(entries) == 0 {
		if in == InputCancel || in == InputLeft {
			e.setState(MainMenu{Selected: s.Option})
			return Result{Kind: ResultClosed}
		}
		return Result{Kind: ResultIgnored}
	}

	switch in {
	case InputUp:
		e.setState(Submenu{Option: s.Option, Selected: wrap(s.Selected, -1, len(entries))})
		return Result{Kind: ResultMoved}
	case InputDown:
		e.setState(Submenu{Option: s.Option, Selected: wrap(s.Selected, 1, len(entries))})
		return Result{Kind: ResultMoved}
	case InputCancel, InputLeft:
		e.setState(MainMenu{Selected: s.Option})
		return Result{Kind: ResultClosed}
	case InputConfirm:
		return e.dispatch(s, entries[s.Selected])
	default:
		return Result{Kind: ResultIgnored}
	}
}

// dispatch resolves the submenu entry under the cursor.
func (e *Engine) dispatch(s Submenu, entry Entry) Result {
	switch s.Option {
	case OptionStats:
		e.presenter.ShowStats(SnapshotOf(e.player))
		return Result{Kind: ResultIgnored}
	case OptionRun:
		e.playerTurn = false
		e.setState(MainMenu{Selected: s.Option})
		return Result{Kind: ResultFled, Message: e.player.GetName() + " runs away!"}
	}

	action := entry.Action
	if !e.resolver.CanUse(action, e.player) {
		msg := e.player.GetName() + " doesn't have enough SP!"
		e.presenter.Feedback(FeedbackFailure, msg)
		return Result{Kind: ResultRejected, Action: action, Message: msg}
	}

	if action.NeedsTarget() {
		living := e.roster.Living()
		if len(living) == 0 {
			return Result{Kind: ResultRejected, Action: action, Message: "No targets"}
		}
		first := e.selector.Begin(living)
		e.pending = action
		e.presenter.Highlight(first.Slot, true)
		e.setState(Targeting{Cursor: 0})
		return Result{Kind: ResultTargeting, Action: action}
	}

	var targets []combat.Combatant
	if action.IsOffensive() {
		targets = e.roster.Targets()
	}
	return e.commit(action, targets)
}

func (e *Engine) handleTargeting(in Input) Result {
	switch in {
	case InputUp, InputLeft:
		prev, cur := e.selector.Prev()
		e.moveHighlight(prev, cur)
		return Result{Kind: ResultMoved}
	case InputDown, InputRight:
		prev, cur := e.selector.Next()
		e.moveHighlight(prev, cur)
		return Result{Kind: ResultMoved}
	case InputConfirm:
		target := e.selector.End()
		e.presenter.Highlight(target.Slot, false)
		action := e.pending
		e.pending = nil
		return e.commit(action, []combat.Combatant{target})
	default:
		return Result{Kind: ResultIgnored}
	}
}

func (e *Engine) moveHighlight(prev, cur *entity.Hostile) {
	e.presenter.Highlight(prev.Slot, false)
	e.presenter.Highlight(cur.Slot, true)
	e.setState(Targeting{Cursor: e.selector.Cursor()})
}

// commit resolves a paid-for action and closes the player's turn.
func (e *Engine) commit(action *gamedata.ActionDef, targets []combat.Combatant) Result {
	result := e.resolver.Resolve(action, e.player, targets)
	if !result.Success {
		e.presenter.Feedback(FeedbackFailure, result.Message)
		return Result{Kind: ResultRejected, Action: action, Message: result.Message}
	}

	for _, effect := range result.Effects {
		e.presenter.ShowEffect(effect)
	}
	e.presenter.Feedback(FeedbackInfo, result.Message)
	e.presenter.ShowStats(SnapshotOf(e.player))

	e.playerTurn = false
	e.setState(MainMenu{Selected: e.mainOption()})
	return Result{Kind: ResultResolved, Action: action, Effects: result.Effects, Message: result.Message}
}

// mainOption returns the main option the current state belongs to.
func (e *Engine) mainOption() Option {
	switch s := e.state.(type) {
	case MainMenu:
		return s.Selected
	case Submenu:
		return s.Option
	default:
		return OptionAttack
	}
}

func (e *Engine) setState(s MenuState) {
	e.state = s
	e.presenter.MenuChanged(s)
}
