package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/battle"
	"github.com/samdwyer/timelock/internal/entity"
	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
	"github.com/samdwyer/timelock/internal/puzzle"
	"github.com/samdwyer/timelock/internal/schedule"
	"github.com/samdwyer/timelock/internal/telemetry"
	"github.com/samdwyer/timelock/internal/world"
)

// ErrUnknownScene is returned when a scene name has no definition.
var ErrUnknownScene = errors.New("unknown scene")

// Session is everything that survives from one frame to the next: the
// ledger, the player, the loaded scenes and whichever mode has input. It
// knows nothing about the terminal and is driven one call at a time.
type Session struct {
	cfg        Config
	registry   *gamedata.Registry
	ledger     *ledger.Ledger
	player     *entity.Player
	inventory  *world.Inventory
	interactor *world.Interactor
	scheduler  *schedule.Scheduler
	battle     *battle.Controller
	rng        *rand.Rand
	logger     *zap.Logger

	ctx     context.Context
	state   State
	scenes  map[string]*world.Scene
	scene   *world.Scene
	message string

	// Encounter bridge
	trigger ledger.ID

	// Open puzzle
	puzzle    *world.Object
	clocks    map[ledger.ID]*puzzle.ClockPuzzle
	sequences map[ledger.ID]*puzzle.SequencePuzzle
	cursor    int               // Selected clock
	lit       int               // Lit sequence button, -1 for none
	showing   []schedule.Handle // Pending steps of the sequence being shown
}

// NewSession wires a session from the registry. presenter receives battle
// output and may be nil.
func NewSession(cfg Config, registry *gamedata.Registry, presenter battle.Presenter, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	led := ledger.New(logger)
	player := entity.NewPlayer(&registry.Player)
	inv := world.NewInventory(registry.Player.StartingItems)
	sched := schedule.New()

	s := &Session{
		cfg:        cfg,
		registry:   registry,
		ledger:     led,
		player:     player,
		inventory:  inv,
		interactor: world.NewInteractor(led, inv, logger),
		scheduler:  sched,
		rng:        rng,
		logger:     logger,
		ctx:        context.Background(),
		scenes:     make(map[string]*world.Scene),
		clocks:     make(map[ledger.ID]*puzzle.ClockPuzzle),
		sequences:  make(map[ledger.ID]*puzzle.SequencePuzzle),
		lit:        -1,
	}
	s.battle = battle.NewController(battle.Deps{
		Registry:  registry,
		Ledger:    led,
		Player:    player,
		Random:    rng,
		Scheduler: sched,
		Presenter: presenter,
		Logger:    logger,
		Timing:    cfg.Timing,
	})
	s.battle.SetOnExit(s.onEncounterExit)

	logger.Info("session created", zap.Int64("seed", seed), zap.String("start_scene", cfg.StartScene))
	return s
}

// NewGame clears the ledger, restores the player and inventory and loads
// the start scene.
func (s *Session) NewGame(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.new")
	defer span.End()

	s.ctx = ctx
	s.scheduler.Clear()
	s.ledger.ResetAll()
	s.player.Reset(&s.registry.Player)
	s.inventory.Reset(s.registry.Player.StartingItems)
	s.scenes = make(map[string]*world.Scene)
	s.clocks = make(map[ledger.ID]*puzzle.ClockPuzzle)
	s.sequences = make(map[ledger.ID]*puzzle.SequencePuzzle)
	s.puzzle = nil
	s.trigger = ledger.None
	s.lit = -1
	s.showing = nil
	s.state = StateExplore
	s.message = ""

	span.SetAttributes(attribute.String("scene", s.cfg.StartScene))
	return s.LoadScene(ctx, s.cfg.StartScene, "")
}

// LoadScene makes name the current scene and re-synchronizes it with the
// ledger. from names the scene the player came from, or "" for a fresh start.
func (s *Session) LoadScene(ctx context.Context, name, from string) error {
	def, ok := s.registry.Scene(name)
	if !ok {
		return fmt.Errorf("load scene %q: %w", name, ErrUnknownScene)
	}

	scene, cached := s.scenes[name]
	if !cached {
		scene = world.NewScene(ctx, def)
		s.scenes[name] = scene
	}
	scene.Resync(ctx, s.ledger)
	s.scene = scene

	if from == "" {
		s.player.SetPosition(scene.Start())
	} else {
		s.player.SetPosition(scene.Arrival(from))
	}

	s.logger.Info("scene loaded",
		zap.String("scene", name),
		zap.String("from", from),
		zap.Bool("cached", cached),
	)
	return nil
}

// Tick advances every pending continuation by dt.
func (s *Session) Tick(dt time.Duration) {
	s.scheduler.Advance(dt)
}

// Move steps the player in explore mode. Bumping into a blocking object
// interacts with it; stepping onto stairs takes them.
func (s *Session) Move(ctx context.Context, dx, dy int) {
	if s.state != StateExplore {
		return
	}
	s.ctx = ctx

	x, y := s.player.Position()
	nx, ny := x+dx, y+dy

	if o := s.scene.ObjectAt(nx, ny); o != nil && o.Blocks() {
		s.handle(ctx, s.interactor.Interact(o))
		return
	}
	if !s.scene.Passable(nx, ny) {
		return
	}
	s.player.Move(dx, dy)
	s.message = ""

	if o := s.scene.ObjectAt(nx, ny); o != nil && o.Kind() == gamedata.ObjectStairs {
		s.handle(ctx, s.interactor.Interact(o))
	}
}

// handle applies the session side of an interaction.
func (s *Session) handle(ctx context.Context, in world.Interaction) {
	if in.Message != "" {
		s.message = in.Message
	}

	switch in.Kind {
	case world.InteractEncounter:
		s.startEncounter(ctx, in.Object)
	case world.InteractPuzzle:
		s.openPuzzle(in.Object)
	case world.InteractStairs:
		from := s.scene.Name
		if err := s.LoadScene(ctx, in.Object.Def.Target, from); err != nil {
			s.logger.Error("taking stairs", zap.String("object", string(in.Object.ID)), zap.Error(err))
			s.message = "The stairs lead nowhere."
		}
	}
}

// =============================================================================
// Accessors
// =============================================================================

// State returns which mode has input.
func (s *Session) State() State { return s.state }

// Scene returns the current scene.
func (s *Session) Scene() *world.Scene { return s.scene }

// Player returns the player.
func (s *Session) Player() *entity.Player { return s.player }

// Inventory returns the player's inventory.
func (s *Session) Inventory() *world.Inventory { return s.inventory }

// Ledger returns the world-state ledger.
func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

// Battle returns the encounter controller.
func (s *Session) Battle() *battle.Controller { return s.battle }

// Registry returns the game data.
func (s *Session) Registry() *gamedata.Registry { return s.registry }

// Message returns the last overworld message.
func (s *Session) Message() string { return s.message }
