package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/entity"
	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
	"github.com/samdwyer/timelock/internal/schedule"
	"github.com/samdwyer/timelock/internal/telemetry"
)

// SpawnHostileID is the hostile a Spawn action brings into an inert slot.
const SpawnHostileID = "insect"

var (
	// ErrEncounterActive is returned by StartEncounter while another
	// encounter has not yet handed control back.
	ErrEncounterActive = errors.New("encounter already active")
	// ErrEmptyRoster is returned when an encounter has no living hostiles.
	ErrEmptyRoster = errors.New("encounter roster has no hostiles")
)

// Phase represents the current phase of an encounter.
type Phase int

const (
	// PhaseIdle - no encounter has started
	PhaseIdle Phase = iota
	// PhasePlayerTurn - waiting for the player to pick an action
	PhasePlayerTurn
	// PhaseHostileTurn - hostiles are acting one at a time
	PhaseHostileTurn
	// PhaseOver - the encounter has an outcome
	PhaseOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseHostileTurn:
		return "hostile_turn"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome is how an encounter ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomeFled
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Timing holds the pacing delays of an encounter.
type Timing struct {
	HostileActionDelay time.Duration // Before each hostile acts
	VictoryDelay       time.Duration // Between winning and handing control back
}

// DefaultTiming returns the standard pacing.
func DefaultTiming() Timing {
	return Timing{
		HostileActionDelay: time.Second,
		VictoryDelay:       3 * time.Second,
	}
}

// Deps are the collaborators a Controller is built from.
type Deps struct {
	Registry  *gamedata.Registry
	Ledger    *ledger.Ledger
	Player    *entity.Player
	Random    combat.Source
	Scheduler *schedule.Scheduler
	Presenter Presenter // Optional, defaults to NopPresenter
	Logger    *zap.Logger
	Timing    Timing
}

// Controller runs encounters: turn order, hostile turns, outcomes and the
// ledger writes outcomes imply.
type Controller struct {
	registry  *gamedata.Registry
	ledger    *ledger.Ledger
	player    *entity.Player
	hostiles  *combat.HostileResolver
	engine    *Engine
	scheduler *schedule.Scheduler
	presenter Presenter
	logger    *zap.Logger
	timing    Timing
	onExit    func(Outcome)

	unknownTypes   int
	unknownCounter metric.Int64Counter

	// Per-encounter state
	ctx           context.Context
	active        bool
	phase         Phase
	outcome       Outcome
	roster        *entity.Roster
	trigger       ledger.ID
	encounterID   string
	encounterType string
	turn          int
}

// NewController creates a controller from its collaborators.
func NewController(deps Deps) *Controller {
	presenter := deps.Presenter
	if presenter == nil {
		presenter = NopPresenter{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	counter, err := telemetry.Meter("battle").Int64Counter(
		"encounter.unknown_type",
		metric.WithDescription("Encounters started with an unknown type and run as the default roster"),
	)
	if err != nil {
		logger.Warn("creating unknown encounter counter", zap.Error(err))
	}

	return &Controller{
		registry:       deps.Registry,
		ledger:         deps.Ledger,
		player:         deps.Player,
		hostiles:       combat.NewHostileResolver(deps.Random),
		engine:         NewEngine(deps.Player, deps.Registry.Actions, presenter),
		scheduler:      deps.Scheduler,
		presenter:      presenter,
		logger:         logger,
		timing:         deps.Timing,
		unknownCounter: counter,
		ctx:            context.Background(),
	}
}

// SetOnExit registers the function called when an encounter hands control
// back to the owning scene.
func (c *Controller) SetOnExit(fn func(Outcome)) {
	c.onExit = fn
}

// StartEncounter begins an encounter of the given type. trigger identifies
// the overworld hostile that started it, or ledger.None.
// An unknown type runs the default roster and is logged and counted.
func (c *Controller) StartEncounter(ctx context.Context, encounterType string, trigger ledger.ID) error {
	if c.active {
		return ErrEncounterActive
	}

	def, ok := c.registry.Encounters.Lookup(encounterType)
	if !ok {
		c.unknownTypes++
		if c.unknownCounter != nil {
			c.unknownCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("encounter.type", encounterType)))
		}
		c.logger.Warn("unknown encounter type, using default roster",
			zap.String("type", encounterType),
			zap.String("default", gamedata.DefaultEncounter),
		)
		def = c.registry.Encounters.Default()
	}

	roster := c.buildRoster(def)
	if roster.LivingCount() == 0 {
		return fmt.Errorf("start encounter %s: %w", def.ID, ErrEmptyRoster)
	}

	c.ctx = ctx
	c.active = true
	c.roster = roster
	c.trigger = trigger
	c.encounterID = uuid.NewString()
	c.encounterType = def.ID
	c.turn = 0
	c.outcome = OutcomeNone

	_, span := telemetry.Tracer("battle").Start(ctx, "encounter.start")
	span.SetAttributes(
		attribute.String("encounter.id", c.encounterID),
		attribute.String("encounter.type", def.ID),
		attribute.String("encounter.requested_type", encounterType),
		attribute.String("encounter.trigger", string(trigger)),
		attribute.Int("hostile_count", roster.LivingCount()),
	)
	span.End()

	c.logger.Info("encounter started",
		zap.String("encounter_id", c.encounterID),
		zap.String("type", def.ID),
		zap.String("trigger", string(trigger)),
		zap.Int("hostiles", roster.LivingCount()),
	)

	c.engine.Begin(roster)
	c.beginPlayerTurn()
	return nil
}

func (c *Controller) buildRoster(def *gamedata.EncounterDef) *entity.Roster {
	defs := make([]*gamedata.HostileDef, len(def.Slots))
	for i, id := range def.Slots {
		if id != "" {
			defs[i] = c.registry.Hostiles.GetByID(id)
		}
	}
	return entity.NewRoster(defs)
}

// SubmitInput delivers one input to the battle menu. Outside the player's
// turn every input is ignored.
func (c *Controller) SubmitInput(in Input) Result {
	if c.phase != PhasePlayerTurn {
		return Result{Kind: ResultIgnored}
	}

	res := c.engine.Handle(in)
	switch res.Kind {
	case ResultResolved:
		c.afterPlayerAction(res)
	case ResultFled:
		c.flee()
	case ResultRejected:
		c.logger.Debug("player action rejected",
			zap.String("encounter_id", c.encounterID),
			zap.String("message", res.Message),
		)
	}
	return res
}

// IsPlayerTurnActive reports whether the engine is accepting input.
func (c *Controller) IsPlayerTurnActive() bool {
	return c.phase == PhasePlayerTurn && c.engine.PlayerTurn()
}

// CurrentStats returns a snapshot of the player's stats.
func (c *Controller) CurrentStats() Snapshot {
	return SnapshotOf(c.player)
}

// Phase returns the current encounter phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Outcome returns how the last encounter ended, or OutcomeNone while running.
func (c *Controller) Outcome() Outcome {
	return c.outcome
}

// Active reports whether an encounter holds control.
func (c *Controller) Active() bool {
	return c.active
}

// Roster returns the current encounter's hostile slots.
func (c *Controller) Roster() *entity.Roster {
	return c.roster
}

// Engine returns the battle menu state machine.
func (c *Controller) Engine() *Engine {
	return c.engine
}

// EncounterType returns the roster actually in use.
func (c *Controller) EncounterType() string {
	return c.encounterType
}

// Trigger returns the triggering entity, cleared once an outcome is recorded.
func (c *Controller) Trigger() ledger.ID {
	return c.trigger
}

// UnknownEncounterTypes returns how many encounters fell back to the default roster.
func (c *Controller) UnknownEncounterTypes() int {
	return c.unknownTypes
}

// Advance moves the pacing clock forward by dt.
func (c *Controller) Advance(dt time.Duration) {
	c.scheduler.Advance(dt)
}

// =============================================================================
// Turn flow
// =============================================================================

func (c *Controller) beginPlayerTurn() {
	c.player.ResetTemporaryDefense()
	c.phase = PhasePlayerTurn
	c.engine.SetPlayerTurn(true)
	c.presenter.ShowStats(SnapshotOf(c.player))
	c.presenter.MenuChanged(c.engine.State())
}

// afterPlayerAction records a resolved player action and hands the turn on.
func (c *Controller) afterPlayerAction(res Result) {
	_, span := telemetry.Tracer("battle").Start(c.ctx, "encounter.player_action")
	span.SetAttributes(
		attribute.String("encounter.id", c.encounterID),
		attribute.String("action", res.Action.ID),
		attribute.Int("turn", c.turn),
		attribute.Int("damage", damageOf(res.Effects)),
		attribute.Int("player.sp", c.player.SP),
	)
	span.End()

	c.logger.Debug("player action",
		zap.String("encounter_id", c.encounterID),
		zap.String("action", res.Action.ID),
		zap.Int("turn", c.turn),
		zap.Int("hostiles_left", c.roster.LivingCount()),
	)
	c.turn++

	if c.roster.LivingCount() == 0 {
		c.win()
		return
	}
	c.beginHostileTurn()
}

// beginHostileTurn snapshots the living hostiles and schedules them one at
// a time. Hostiles spawned during the turn wait for the next one.
func (c *Controller) beginHostileTurn() {
	c.phase = PhaseHostileTurn
	c.engine.SetPlayerTurn(false)
	c.scheduleHostile(c.roster.Living(), 0)
}

func (c *Controller) scheduleHostile(queue []*entity.Hostile, i int) {
	c.scheduler.After(c.timing.HostileActionDelay, func() {
		if c.phase != PhaseHostileTurn {
			return
		}
		if h := queue[i]; h.Initialized() {
			c.hostileAction(h)
		}
		if !c.player.IsAlive() {
			c.lose()
			return
		}
		if i+1 < len(queue) {
			c.scheduleHostile(queue, i+1)
			return
		}
		c.beginPlayerTurn()
	})
}

// hostileAction draws and commits one hostile's action.
func (c *Controller) hostileAction(h *entity.Hostile) {
	action := c.hostiles.Choose(h.GetKind())
	outcome := c.hostiles.Execute(action, h, c.player, c.spawn)

	_, span := telemetry.Tracer("battle").Start(c.ctx, "encounter.hostile_action")
	span.SetAttributes(
		attribute.String("encounter.id", c.encounterID),
		attribute.String("hostile", h.GetName()),
		attribute.Int("slot", h.Slot),
		attribute.String("chosen", action.String()),
		attribute.String("performed", outcome.Action.String()),
		attribute.Int("damage", damageOf(outcome.Effects)),
		attribute.Int("player.hp", c.player.HP),
	)
	span.End()

	c.logger.Debug("hostile action",
		zap.String("encounter_id", c.encounterID),
		zap.String("hostile", h.GetName()),
		zap.Int("slot", h.Slot),
		zap.Stringer("action", outcome.Action),
		zap.Int("player_hp", c.player.HP),
	)

	for _, effect := range outcome.Effects {
		c.presenter.ShowEffect(effect)
	}
	c.presenter.Feedback(FeedbackInfo, outcome.Message)
	c.presenter.ShowStats(SnapshotOf(c.player))
}

func (c *Controller) spawn() (int, bool) {
	def := c.registry.Hostiles.GetByID(SpawnHostileID)
	if def == nil {
		return 0, false
	}
	return c.roster.Spawn(def)
}

// =============================================================================
// Outcomes
// =============================================================================

func (c *Controller) win() {
	c.player.ResetTemporaryDefense()
	c.settle(OutcomeWin, ledger.EntityDestroyed)
	c.scheduler.After(c.timing.VictoryDelay, c.exit)
}

func (c *Controller) lose() {
	c.settle(OutcomeLose, 0)
	c.exit()
}

func (c *Controller) flee() {
	c.player.ResetTemporaryDefense()
	c.settle(OutcomeFled, ledger.EntityDisabled)
	c.exit()
}

// settle ends the encounter. For Win and Fled the trigger is written to the
// ledger and cleared together; Lose writes nothing.
func (c *Controller) settle(outcome Outcome, category ledger.Category) {
	c.phase = PhaseOver
	c.outcome = outcome
	c.engine.SetPlayerTurn(false)

	trigger := c.trigger
	if outcome != OutcomeLose && trigger != ledger.None {
		c.ledger.Register(category, trigger)
		c.trigger = ledger.None
	}

	_, span := telemetry.Tracer("battle").Start(c.ctx, "encounter.end")
	span.SetAttributes(
		attribute.String("encounter.id", c.encounterID),
		attribute.String("outcome", outcome.String()),
		attribute.Int("turns_taken", c.turn),
		attribute.Int("player.hp", c.player.HP),
		attribute.String("encounter.trigger", string(trigger)),
	)
	span.End()

	c.logger.Info("encounter ended",
		zap.String("encounter_id", c.encounterID),
		zap.Stringer("outcome", outcome),
		zap.Int("turns", c.turn),
		zap.Int("player_hp", c.player.HP),
	)

	c.presenter.EncounterEnded(outcome)
}

// exit hands control back to the owning scene.
func (c *Controller) exit() {
	c.active = false
	if c.onExit != nil {
		c.onExit(c.outcome)
	}
}

func damageOf(effects []combat.Effect) int {
	return combat.EffectResult{Effects: effects}.Damage()
}
