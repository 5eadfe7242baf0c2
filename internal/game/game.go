package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/puzzle"
	"github.com/samdwyer/timelock/internal/telemetry"
	"github.com/samdwyer/timelock/internal/ui"
)

// Game owns the terminal and drives a Session from key events and frame
// ticks. All session calls happen on the goroutine running Run.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	log      *ui.BattleLog
	session  *Session
	cfg      Config
	logger   *zap.Logger
	running  bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, logger *zap.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening screen: %w", err)
	}
	g, err := NewWithScreen(screen, cfg, logger)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing to screen.
func NewWithScreen(screen *ui.Screen, cfg Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry, err := gamedata.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading game data: %w", err)
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultConfig().FrameInterval
	}

	log := ui.NewBattleLog()
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, registry),
		log:      log,
		session:  NewSession(cfg, registry, log, logger),
		cfg:      cfg,
		logger:   logger,
		running:  true,
	}, nil
}

// Session returns the game session.
func (g *Game) Session() *Session {
	return g.session
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	ctx, initSpan := telemetry.Tracer("game").Start(ctx, "game.init")
	if err := g.session.NewGame(ctx); err != nil {
		initSpan.End()
		return fmt.Errorf("starting game: %w", err)
	}
	initSpan.SetAttributes(
		attribute.String("scene", g.session.Scene().Name),
		attribute.Int("scene.rooms", len(g.session.Scene().Dungeon.Rooms)),
		attribute.Int64("frame_interval_ms", g.cfg.FrameInterval.Milliseconds()),
	)
	initSpan.End()

	quit := make(chan struct{})
	defer close(quit)
	events := g.screen.Events(quit)

	ticker := time.NewTicker(g.cfg.FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for g.running {
		g.render()

		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)
		case now := <-ticker.C:
			g.session.Tick(now.Sub(last))
			last = now
		}
	}

	g.logger.Info("game loop stopped")
	return nil
}

// render draws whichever mode has input.
func (g *Game) render() {
	s := g.session
	switch s.State() {
	case StateBattle:
		g.renderer.RenderBattle(s.Battle(), g.log)
	case StateClock:
		p, cursor := s.ClockPuzzle()
		g.renderer.RenderClock(p, cursor, s.Message())
	case StateSequence:
		p, lit := s.SequencePuzzle()
		g.renderer.RenderSequence(p, lit, s.Message())
	case StateGameOver:
		g.renderer.RenderGameOver(s.Message())
	default:
		g.renderer.RenderScene(s.Scene(), s.Player(), s.Inventory(), s.Message())
	}
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent routes one key to the current mode.
func (g *Game) handleKeyEvent(ctx context.Context, k tcell.Key, r rune) {
	if k == tcell.KeyCtrlC {
		g.running = false
		return
	}

	s := g.session
	switch s.State() {
	case StateExplore:
		if k == tcell.KeyEscape || (k == tcell.KeyRune && (r == 'q' || r == 'Q')) {
			g.running = false
			return
		}
		if dx, dy, ok := direction(k, r); ok {
			s.Move(ctx, dx, dy)
		}

	case StateBattle:
		if in, ok := battleInput(k, r); ok {
			s.BattleInput(in)
		}

	case StateClock:
		switch {
		case k == tcell.KeyEscape:
			s.LeavePuzzle()
		case k == tcell.KeyLeft:
			s.SelectClock(-1)
		case k == tcell.KeyRight:
			s.SelectClock(1)
		case k == tcell.KeyUp:
			s.AdjustClock(puzzle.HourUp)
		case k == tcell.KeyDown:
			s.AdjustClock(puzzle.HourDown)
		case k == tcell.KeyRune && r == ']':
			s.AdjustClock(puzzle.MinuteUp)
		case k == tcell.KeyRune && r == '[':
			s.AdjustClock(puzzle.MinuteDown)
		}

	case StateSequence:
		if k == tcell.KeyEscape {
			s.LeavePuzzle()
			return
		}
		if i, ok := buttonIndex(k, r); ok {
			s.PressButton(i)
		}

	case StateGameOver:
		switch {
		case k == tcell.KeyEnter:
			if err := s.NewGame(ctx); err != nil {
				g.logger.Error("new game", zap.Error(err))
				g.running = false
			}
		case k == tcell.KeyEscape || (k == tcell.KeyRune && (r == 'q' || r == 'Q')):
			g.running = false
		}
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
