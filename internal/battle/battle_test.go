package battle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/entity"
	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
	"github.com/samdwyer/timelock/internal/schedule"
)

// constSource returns the same draw every time.
type constSource float64

func (s constSource) Float64() float64 { return float64(s) }

// alwaysAttack never satisfies any row of the hostile action table.
const alwaysAttack = constSource(0.99)

type highlight struct {
	slot int
	on   bool
}

// recordingPresenter keeps everything the battle showed.
type recordingPresenter struct {
	stats      []Snapshot
	effects    []combat.Effect
	highlights []highlight
	failures   []string
	menus      []MenuState
	ended      []Outcome
}

func (p *recordingPresenter) ShowStats(s Snapshot) { p.stats = append(p.stats, s) }
func (p *recordingPresenter) ShowEffect(e combat.Effect) { p.effects = append(p.effects, e) }
func (p *recordingPresenter) MenuChanged(s MenuState) { p.menus = append(p.menus, s) }
func (p *recordingPresenter) EncounterEnded(o Outcome) { p.ended = append(p.ended, o) }

func (p *recordingPresenter) Highlight(slot int, on bool) {
	p.highlights = append(p.highlights, highlight{slot, on})
}

func (p *recordingPresenter) Feedback(k FeedbackKind, m string) {
	if k == FeedbackFailure {
		p.failures = append(p.failures, m)
	}
}

type fixture struct {
	ctrl      *Controller
	presenter *recordingPresenter
	ledger    *ledger.Ledger
	player    *entity.Player
	scheduler *schedule.Scheduler
	exits     []Outcome
}

var testRegistry = gamedata.MustLoadRegistry()

func newFixture(src combat.Source) *fixture {
	f := &fixture{
		presenter: &recordingPresenter{},
		ledger:    ledger.New(zap.NewNop()),
		player:    entity.NewPlayer(&testRegistry.Player),
		scheduler: schedule.New(),
	}
	f.ctrl = NewController(Deps{
		Registry:  testRegistry,
		Ledger:    f.ledger,
		Player:    f.player,
		Random:    src,
		Scheduler: f.scheduler,
		Presenter: f.presenter,
		Logger:    zap.NewNop(),
		Timing:    DefaultTiming(),
	})
	f.ctrl.SetOnExit(func(o Outcome) { f.exits = append(f.exits, o) })
	return f
}

func (f *fixture) press(t *testing.T, inputs ...Input) Result {
	t.Helper()
	var res Result
	for _, in := range inputs {
		res = f.ctrl.SubmitInput(in)
	}
	return res
}

func TestFullScenario(t *testing.T) {
	f := newFixture(alwaysAttack)
	const trigger = ledger.ID("Level 1/lurker")

	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Lurker", trigger))
	require.Equal(t, PhasePlayerTurn, f.ctrl.Phase())
	lurker := f.ctrl.Roster().Slot(1)
	require.True(t, lurker.Initialized())

	// Attack -> Jab -> first target
	assert.Equal(t, ResultOpened, f.press(t, InputConfirm).Kind)
	assert.Equal(t, ResultTargeting, f.press(t, InputConfirm).Kind)
	assert.Equal(t, ResultResolved, f.press(t, InputConfirm).Kind)
	assert.Equal(t, 5, lurker.HP)
	assert.Equal(t, PhaseHostileTurn, f.ctrl.Phase())
	assert.False(t, f.ctrl.IsPlayerTurnActive())

	// The hostile waits for its delay before acting.
	f.ctrl.Advance(500 * time.Millisecond)
	assert.Equal(t, 100, f.player.HP)
	f.ctrl.Advance(500 * time.Millisecond)
	assert.Equal(t, 97, f.player.HP)
	assert.Equal(t, PhasePlayerTurn, f.ctrl.Phase())
	assert.True(t, f.ctrl.IsPlayerTurnActive())

	f.press(t, InputConfirm, InputConfirm)
	assert.Equal(t, ResultResolved, f.press(t, InputConfirm).Kind)

	assert.Equal(t, 0, lurker.HP)
	assert.False(t, lurker.Initialized())
	assert.Equal(t, PhaseOver, f.ctrl.Phase())
	assert.Equal(t, OutcomeWin, f.ctrl.Outcome())
	assert.True(t, f.ledger.Contains(ledger.EntityDestroyed, trigger))
	assert.Equal(t, ledger.None, f.ctrl.Trigger())
	assert.Equal(t, []Outcome{OutcomeWin}, f.presenter.ended)

	// Control returns to the scene only after the victory delay.
	assert.Empty(t, f.exits)
	f.ctrl.Advance(3 * time.Second)
	assert.Equal(t, []Outcome{OutcomeWin}, f.exits)
	assert.False(t, f.ctrl.Active())
}

func TestStartWhileActive(t *testing.T) {
	f := newFixture(alwaysAttack)
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Bat", ledger.None))

	err := f.ctrl.StartEncounter(context.Background(), "Bat", ledger.None)
	assert.True(t, errors.Is(err, ErrEncounterActive))
}

func TestUnknownEncounterFallsBack(t *testing.T) {
	f := newFixture(alwaysAttack)

	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Dragon", ledger.None))

	assert.Equal(t, gamedata.DefaultEncounter, f.ctrl.EncounterType())
	assert.Equal(t, 1, f.ctrl.UnknownEncounterTypes())
	assert.Equal(t, 3, f.ctrl.Roster().LivingCount())
	assert.Equal(t, "Big Lurker", f.ctrl.Roster().Slot(1).Kind)
}

func TestSlashHitsEveryHostileIndependently(t *testing.T) {
	f := newFixture(alwaysAttack)
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Swarm", ledger.None))
	f.player.Attack = 10
	for _, h := range f.ctrl.Roster().Slots() {
		h.Defense = 2
	}

	// Attack -> Slash
	res := f.press(t, InputConfirm, InputDown, InputConfirm)

	require.Equal(t, ResultResolved, res.Kind)
	for _, h := range f.ctrl.Roster().Slots() {
		assert.Equal(t, 3, h.HP, "slot %d", h.Slot)
	}
	assert.Equal(t, 22, f.player.SP)
}

func TestRejectedActionsChangeNothing(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Input
		want   Submenu
	}{
		{"heal", []Input{InputDown, InputConfirm, InputDown}, Submenu{Option: OptionDefend, Selected: 1}},
		{"slash", []Input{InputConfirm, InputDown}, Submenu{Option: OptionAttack, Selected: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(alwaysAttack)
			require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Swarm", ledger.None))
			f.player.SP = 2
			f.player.HP = 40

			f.press(t, tt.inputs...)
			res := f.press(t, InputConfirm)

			assert.Equal(t, ResultRejected, res.Kind)
			assert.Equal(t, 2, f.player.SP)
			assert.Equal(t, 40, f.player.HP)
			assert.Equal(t, tt.want, f.ctrl.Engine().State())
			assert.Equal(t, PhasePlayerTurn, f.ctrl.Phase())
			assert.Len(t, f.presenter.failures, 1)
			for _, h := range f.ctrl.Roster().Slots() {
				assert.Equal(t, 5, h.HP)
			}
		})
	}
}

func TestDefendStacksUntilPlayerTurnStarts(t *testing.T) {
	f := newFixture(alwaysAttack)
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Lurker", ledger.None))
	f.player.SP = 20

	// Defend -> Defend
	res := f.press(t, InputDown, InputConfirm, InputConfirm)
	require.Equal(t, ResultResolved, res.Kind)
	assert.Equal(t, 2, f.player.TempDefense)
	assert.Equal(t, 22, f.player.SP)

	f.ctrl.Advance(time.Second)

	// Lurker attack 3 minus total defense 2
	assert.Equal(t, 99, f.player.HP)
	assert.Equal(t, 0, f.player.TempDefense)
	assert.Equal(t, PhasePlayerTurn, f.ctrl.Phase())
}

func TestRunDisablesTrigger(t *testing.T) {
	f := newFixture(alwaysAttack)
	const trigger = ledger.ID("Level 1/bats")
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Bat", trigger))

	// Up from Attack wraps to Run.
	f.press(t, InputUp)
	assert.Equal(t, MainMenu{Selected: OptionRun}, f.ctrl.Engine().State())
	res := f.press(t, InputConfirm, InputConfirm)

	assert.Equal(t, ResultFled, res.Kind)
	assert.Equal(t, OutcomeFled, f.ctrl.Outcome())
	assert.True(t, f.ledger.Contains(ledger.EntityDisabled, trigger))
	assert.False(t, f.ledger.Contains(ledger.EntityDestroyed, trigger))
	assert.Equal(t, []Outcome{OutcomeFled}, f.exits)
	assert.Equal(t, 0, f.scheduler.Pending())
}

func TestLoseAbortsHostileTurnAndWritesNothing(t *testing.T) {
	f := newFixture(alwaysAttack)
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "TestBattle", ledger.ID("Level 1/boss")))

	f.press(t, InputConfirm, InputConfirm, InputConfirm)
	f.ctrl.Advance(10 * time.Second)

	assert.Equal(t, OutcomeLose, f.ctrl.Outcome())
	assert.Equal(t, 0, f.player.HP)
	assert.Equal(t, []Outcome{OutcomeLose}, f.exits)
	for _, cat := range ledger.Categories() {
		assert.Equal(t, 0, f.ledger.Len(cat), cat.String())
	}

	// Slot 0 hit for 3, slot 1 finished the player, slot 2 never acted.
	var hits []int
	for _, e := range f.presenter.effects {
		if e.Kind == combat.EffectDamage && e.Slot == combat.PlayerSlot {
			hits = append(hits, e.Amount)
		}
	}
	assert.Equal(t, []int{3, 97}, hits)
	assert.Equal(t, ResultIgnored, f.press(t, InputConfirm).Kind)
}

func TestInputIgnoredDuringHostileTurn(t *testing.T) {
	f := newFixture(alwaysAttack)
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Combo1", ledger.None))

	f.press(t, InputConfirm, InputConfirm, InputConfirm)
	require.Equal(t, PhaseHostileTurn, f.ctrl.Phase())

	for _, in := range []Input{InputUp, InputDown, InputConfirm, InputCancel} {
		assert.Equal(t, ResultIgnored, f.ctrl.SubmitInput(in).Kind)
	}

	// Three hostiles act one second apart.
	f.ctrl.Advance(2 * time.Second)
	assert.Equal(t, PhaseHostileTurn, f.ctrl.Phase())
	f.ctrl.Advance(time.Second)
	assert.Equal(t, PhasePlayerTurn, f.ctrl.Phase())
}

func TestSpawnFillsInertSlot(t *testing.T) {
	// 0.05 skips the Insect miss row and satisfies the spawn row.
	f := newFixture(constSource(0.05))
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Insect", ledger.None))
	f.player.Attack = 1

	f.press(t, InputConfirm, InputConfirm, InputConfirm)
	f.ctrl.Advance(time.Second)

	assert.Equal(t, 2, f.ctrl.Roster().LivingCount())
	assert.Equal(t, "Insect", f.ctrl.Roster().Slot(0).Kind)
	assert.Equal(t, 100, f.player.HP)
}

func TestTargetingWrapsAndHighlights(t *testing.T) {
	f := newFixture(alwaysAttack)
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Combo1", ledger.None))

	f.press(t, InputConfirm, InputConfirm)
	require.Equal(t, Targeting{Cursor: 0}, f.ctrl.Engine().State())

	f.press(t, InputUp)
	assert.Equal(t, Targeting{Cursor: 2}, f.ctrl.Engine().State())
	assert.Equal(t, 2, f.ctrl.Engine().Target().Slot)

	f.press(t, InputDown)
	assert.Equal(t, Targeting{Cursor: 0}, f.ctrl.Engine().State())

	// Cancel does not leave targeting.
	assert.Equal(t, ResultIgnored, f.press(t, InputCancel).Kind)

	f.press(t, InputConfirm)
	assert.Equal(t, []highlight{
		{0, true},
		{0, false}, {2, true},
		{2, false}, {0, true},
		{0, false},
	}, f.presenter.highlights)
	assert.Equal(t, 2, f.ctrl.Roster().Slot(0).HP)
}

func TestSubmenuCancelAndStats(t *testing.T) {
	f := newFixture(alwaysAttack)
	require.NoError(t, f.ctrl.StartEncounter(context.Background(), "Bat", ledger.None))

	f.press(t, InputDown, InputConfirm)
	assert.Equal(t, Submenu{Option: OptionDefend, Selected: 0}, f.ctrl.Engine().State())
	f.press(t, InputDown, InputDown)
	assert.Equal(t, Submenu{Option: OptionDefend, Selected: 0}, f.ctrl.Engine().State())
	assert.Equal(t, ResultClosed, f.press(t, InputCancel).Kind)
	assert.Equal(t, MainMenu{Selected: OptionDefend}, f.ctrl.Engine().State())

	before := len(f.presenter.stats)
	f.press(t, InputDown)
	assert.Equal(t, ResultOpened, f.press(t, InputRight).Kind)
	assert.Equal(t, before+1, len(f.presenter.stats))
	assert.Equal(t, ResultIgnored, f.press(t, InputConfirm).Kind)
	assert.Equal(t, PhasePlayerTurn, f.ctrl.Phase())
	assert.Equal(t, f.ctrl.CurrentStats(), f.presenter.stats[len(f.presenter.stats)-1])
	assert.Equal(t, ResultClosed, f.press(t, InputLeft).Kind)
}

func TestWinIffNoHostilesLeft(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		encounter := rapid.SampledFrom([]string{"Lurker", "Insect", "Bat", "Swarm", "Combo1", "Combo2"}).Draw(t, "encounter")
		draw := rapid.Float64Range(0, 0.999).Draw(t, "draw")
		inputs := rapid.SliceOfN(rapid.IntRange(int(InputUp), int(InputCancel)), 1, 200).Draw(t, "inputs")

		f := newFixture(constSource(draw))
		if err := f.ctrl.StartEncounter(context.Background(), encounter, ledger.ID("trigger")); err != nil {
			t.Fatalf("StartEncounter: %v", err)
		}
		size := f.ctrl.Roster().LivingCount()
		if size < 1 || size > 3 {
			t.Fatalf("roster size %d", size)
		}

		for _, in := range inputs {
			f.ctrl.SubmitInput(Input(in))
			won := f.ctrl.Outcome() == OutcomeWin
			cleared := f.ctrl.Roster().LivingCount() == 0
			if won != cleared {
				t.Fatalf("won=%v but living=%d", won, f.ctrl.Roster().LivingCount())
			}
			if won != f.ledger.Contains(ledger.EntityDestroyed, "trigger") {
				t.Fatalf("win and ledger disagree")
			}
			if f.ctrl.Phase() == PhaseOver {
				return
			}
			f.ctrl.Advance(time.Second)
		}
	})
}
