package puzzle

import (
	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/ledger"
)

// phaseLengths are the sequence lengths of the three phases.
var phaseLengths = []int{3, 4, 6}

// Intn supplies random button indexes. *math/rand.Rand satisfies Intn.
type Intn interface {
	Intn(n int) int
}

// SequenceState is where a sequence puzzle is in its cycle.
type SequenceState int

const (
	// SequenceIdle - not started, or solved
	SequenceIdle SequenceState = iota
	// SequenceShowing - the sequence is being shown, presses are ignored
	SequenceShowing
	// SequenceInput - waiting for the player to repeat the sequence
	SequenceInput
)

// PressResult is what a button press did.
type PressResult int

const (
	PressIgnored PressResult = iota
	PressAccepted
	PressMistake
	PressPhaseComplete
	PressSolved
)

// String returns the press result name.
func (r PressResult) String() string {
	switch r {
	case PressIgnored:
		return "ignored"
	case PressAccepted:
		return "accepted"
	case PressMistake:
		return "mistake"
	case PressPhaseComplete:
		return "phase_complete"
	case PressSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// SequencePuzzle is a simon-says puzzle over a row of buttons. The first two
// phases light the buttons in order; the last phase is random. A wrong
// sequence replays the same phase.
type SequencePuzzle struct {
	id      ledger.ID
	door    ledger.ID
	buttons int
	rng     Intn
	ledger  *ledger.Ledger
	logger  *zap.Logger

	state  SequenceState
	phase  int // Index into phaseLengths
	target []int
	input  []int
}

// NewSequencePuzzle creates a puzzle over buttons buttons whose completion opens door.
func NewSequencePuzzle(id, door ledger.ID, buttons int, rng Intn, led *ledger.Ledger, logger *zap.Logger) *SequencePuzzle {
	if buttons < 1 {
		buttons = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SequencePuzzle{
		id:      id,
		door:    door,
		buttons: buttons,
		rng:     rng,
		ledger:  led,
		logger:  logger,
	}
}

// ID returns the puzzle identifier.
func (p *SequencePuzzle) ID() ledger.ID {
	return p.id
}

// Buttons returns the number of buttons.
func (p *SequencePuzzle) Buttons() int {
	return p.buttons
}

// Start begins phase one. Returns false if the puzzle is solved or running.
func (p *SequencePuzzle) Start() bool {
	if p.Solved() || p.state != SequenceIdle {
		return false
	}
	p.beginPhase(0)
	return true
}

// Abort drops an unfinished attempt; the next Start begins at phase one.
func (p *SequencePuzzle) Abort() {
	if p.state == SequenceIdle {
		return
	}
	p.state = SequenceIdle
	p.phase = 0
	p.input = p.input[:0]
	p.target = p.target[:0]
}

// Shown ends the showing of the sequence and starts accepting presses.
func (p *SequencePuzzle) Shown() {
	if p.state == SequenceShowing {
		p.state = SequenceInput
	}
}

// Press records a button press. The sequence is checked once it is complete.
func (p *SequencePuzzle) Press(button int) PressResult {
	if p.state != SequenceInput || button < 0 || button >= p.buttons {
		return PressIgnored
	}

	p.input = append(p.input, button)
	if len(p.input) < len(p.target) {
		return PressAccepted
	}

	for i, b := range p.input {
		if b != p.target[i] {
			p.logger.Debug("sequence mistake",
				zap.String("puzzle", string(p.id)),
				zap.Int("phase", p.phase+1),
			)
			p.input = p.input[:0]
			p.state = SequenceShowing
			return PressMistake
		}
	}

	if p.phase+1 < len(phaseLengths) {
		p.beginPhase(p.phase + 1)
		return PressPhaseComplete
	}

	p.complete()
	return PressSolved
}

// State returns the puzzle state.
func (p *SequencePuzzle) State() SequenceState {
	return p.state
}

// Phase returns the current phase, starting at 1.
func (p *SequencePuzzle) Phase() int {
	return p.phase + 1
}

// Sequence returns a copy of the sequence to repeat.
func (p *SequencePuzzle) Sequence() []int {
	return append([]int(nil), p.target...)
}

// Progress returns how many presses of the current sequence have been made.
func (p *SequencePuzzle) Progress() int {
	return len(p.input)
}

// Solved reports whether the puzzle is registered as solved.
func (p *SequencePuzzle) Solved() bool {
	return p.ledger.Contains(ledger.PuzzleSolved, p.id)
}

func (p *SequencePuzzle) beginPhase(phase int) {
	p.phase = phase
	p.target = p.target[:0]
	p.input = p.input[:0]
	last := phase == len(phaseLengths)-1
	for i := 0; i < phaseLengths[phase]; i++ {
		if last {
			p.target = append(p.target, p.rng.Intn(p.buttons))
		} else {
			p.target = append(p.target, i%p.buttons)
		}
	}
	p.state = SequenceShowing
}

func (p *SequencePuzzle) complete() {
	p.state = SequenceIdle
	p.input = p.input[:0]
	p.ledger.Register(ledger.PuzzleSolved, p.id)
	if p.door != ledger.None {
		p.ledger.Register(ledger.BarrierOpen, p.door)
	}
	p.logger.Info("sequence puzzle solved",
		zap.String("puzzle", string(p.id)),
		zap.String("door", string(p.door)),
	)
}
