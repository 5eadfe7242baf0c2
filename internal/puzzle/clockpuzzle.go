package puzzle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/ledger"
)

// Adjustment is one turn of one hand.
type Adjustment int

const (
	HourUp Adjustment = iota
	HourDown
	MinuteUp
	MinuteDown
)

// String returns the adjustment name.
func (a Adjustment) String() string {
	switch a {
	case HourUp:
		return "hour_up"
	case HourDown:
		return "hour_down"
	case MinuteUp:
		return "minute_up"
	case MinuteDown:
		return "minute_down"
	default:
		return "unknown"
	}
}

// ClockPuzzle is four clocks that must all show their solution time.
// Every adjustment stores all four dials in the ledger.
type ClockPuzzle struct {
	id       ledger.ID
	door     ledger.ID
	clocks   [ledger.DialCount]Clock
	solution [ledger.DialCount]ledger.Dial
	ledger   *ledger.Ledger
	logger   *zap.Logger
}

// NewClockPuzzle creates a clock puzzle whose solution opens door. The clocks
// start from the dials stored in the ledger.
func NewClockPuzzle(id, door ledger.ID, solution []ledger.Dial, led *ledger.Ledger, logger *zap.Logger) (*ClockPuzzle, error) {
	if len(solution) != ledger.DialCount {
		return nil, fmt.Errorf("clock puzzle %s: need %d solution times, got %d", id, ledger.DialCount, len(solution))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &ClockPuzzle{
		id:     id,
		door:   door,
		ledger: led,
		logger: logger,
	}
	copy(p.solution[:], solution)
	p.Restore()
	return p, nil
}

// Restore sets every clock to its stored dial.
func (p *ClockPuzzle) Restore() {
	for i := range p.clocks {
		d := p.ledger.Dial(i)
		p.clocks[i].SetTime(d.Hour, d.Minute)
	}
}

// ID returns the puzzle identifier.
func (p *ClockPuzzle) ID() ledger.ID {
	return p.id
}

// Clock returns clock i, or a default clock when i is out of range.
func (p *ClockPuzzle) Clock(i int) Clock {
	if i < 0 || i >= len(p.clocks) {
		return NewClock()
	}
	return p.clocks[i]
}

// Adjust turns one hand of clock i and checks the puzzle. Returns true when
// this adjustment solved it.
func (p *ClockPuzzle) Adjust(i int, a Adjustment) bool {
	if i < 0 || i >= len(p.clocks) {
		return false
	}
	c := &p.clocks[i]
	switch a {
	case HourUp:
		c.IncrementHour()
	case HourDown:
		c.DecrementHour()
	case MinuteUp:
		c.IncrementMinute()
	case MinuteDown:
		c.DecrementMinute()
	default:
		return false
	}
	return p.Check()
}

// Check stores the dials and, the first time all clocks match, registers
// the puzzle as solved and opens its door. Returns true only on that first time.
func (p *ClockPuzzle) Check() bool {
	solved := false
	if p.matches() && !p.Solved() {
		p.ledger.Register(ledger.PuzzleSolved, p.id)
		if p.door != ledger.None {
			p.ledger.Register(ledger.BarrierOpen, p.door)
		}
		p.logger.Info("clock puzzle solved",
			zap.String("puzzle", string(p.id)),
			zap.String("door", string(p.door)),
		)
		solved = true
	}
	p.store()
	return solved
}

// Solved reports whether the puzzle is registered as solved.
func (p *ClockPuzzle) Solved() bool {
	return p.ledger.Contains(ledger.PuzzleSolved, p.id)
}

func (p *ClockPuzzle) matches() bool {
	for i, c := range p.clocks {
		if !c.Shows(p.solution[i]) {
			return false
		}
	}
	return true
}

func (p *ClockPuzzle) store() {
	for i, c := range p.clocks {
		p.ledger.SetDial(i, c.Time())
	}
}
