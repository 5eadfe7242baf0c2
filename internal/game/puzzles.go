package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
	"github.com/samdwyer/timelock/internal/puzzle"
	"github.com/samdwyer/timelock/internal/world"
)

// openPuzzle gives input to the puzzle object o.
func (s *Session) openPuzzle(o *world.Object) {
	door := ledger.None
	if d, ok := s.scene.Linked(o); ok {
		door = d.ID
	}

	switch o.Kind() {
	case gamedata.ObjectClockPuzzle:
		p, ok := s.clocks[o.ID]
		if !ok {
			var err error
			p, err = puzzle.NewClockPuzzle(o.ID, door, dials(o.Def.Solution), s.ledger, s.logger)
			if err != nil {
				s.logger.Error("opening clock puzzle", zap.String("object", string(o.ID)), zap.Error(err))
				return
			}
			s.clocks[o.ID] = p
		}
		p.Restore()
		s.puzzle = o
		s.cursor = 0
		s.state = StateClock
		s.message = "Set the four clocks."

	case gamedata.ObjectButtonPuzzle:
		p, ok := s.sequences[o.ID]
		if !ok {
			p = puzzle.NewSequencePuzzle(o.ID, door, o.Def.Buttons, s.rng, s.ledger, s.logger)
			s.sequences[o.ID] = p
		}
		if p.Solved() {
			s.message = "The plates are silent."
			return
		}
		if !p.Start() {
			return
		}
		s.puzzle = o
		s.state = StateSequence
		s.message = "Watch the plates."
		s.showSequence(p)
	}
}

func dials(times []gamedata.TimeDef) []ledger.Dial {
	out := make([]ledger.Dial, len(times))
	for i, t := range times {
		out[i] = ledger.Dial{Hour: t.Hour, Minute: t.Minute}
	}
	return out
}

// ClockPuzzle returns the open clock puzzle and the selected clock.
func (s *Session) ClockPuzzle() (*puzzle.ClockPuzzle, int) {
	if s.state != StateClock || s.puzzle == nil {
		return nil, 0
	}
	return s.clocks[s.puzzle.ID], s.cursor
}

// SelectClock moves the clock cursor by delta, wrapping.
func (s *Session) SelectClock(delta int) {
	if s.state != StateClock {
		return
	}
	s.cursor = ((s.cursor+delta)%ledger.DialCount + ledger.DialCount) % ledger.DialCount
}

// AdjustClock turns a hand of the selected clock. Returns true when this
// adjustment solved the puzzle.
func (s *Session) AdjustClock(a puzzle.Adjustment) bool {
	p, i := s.ClockPuzzle()
	if p == nil {
		return false
	}
	if !p.Adjust(i, a) {
		return false
	}
	s.message = "Somewhere, a door grinds open."
	s.scene.Resync(s.ctx, s.ledger)
	return true
}

// SequencePuzzle returns the open sequence puzzle and the lit button, or -1.
func (s *Session) SequencePuzzle() (*puzzle.SequencePuzzle, int) {
	if s.state != StateSequence || s.puzzle == nil {
		return nil, -1
	}
	return s.sequences[s.puzzle.ID], s.lit
}

// PressButton presses button i of the open sequence puzzle.
func (s *Session) PressButton(i int) puzzle.PressResult {
	p, _ := s.SequencePuzzle()
	if p == nil {
		return puzzle.PressIgnored
	}

	res := p.Press(i)
	switch res {
	case puzzle.PressMistake:
		s.message = "Wrong. Watch again."
		s.showSequence(p)
	case puzzle.PressPhaseComplete:
		s.message = "The plates hum. Watch again."
		s.showSequence(p)
	case puzzle.PressSolved:
		s.message = "Somewhere, a door grinds open."
		s.closePuzzle()
	}
	return res
}

// showSequence lights each button of the current sequence in turn, then
// accepts presses.
func (s *Session) showSequence(p *puzzle.SequencePuzzle) {
	s.cancelShowing()
	step := s.cfg.SequenceStepDelay
	seq := p.Sequence()

	for i, b := range seq {
		b := b
		s.showing = append(s.showing,
			s.scheduler.After(step*(2*time.Duration(i)+1), func() { s.lit = b }),
			s.scheduler.After(step*(2*time.Duration(i)+2), func() { s.lit = -1 }),
		)
	}
	s.showing = append(s.showing, s.scheduler.After(step*(2*time.Duration(len(seq))+1), func() {
		s.lit = -1
		s.showing = nil
		p.Shown()
	}))
}

func (s *Session) cancelShowing() {
	for _, h := range s.showing {
		s.scheduler.Cancel(h)
	}
	s.showing = nil
	s.lit = -1
}

// LeavePuzzle returns to exploring. An unfinished sequence starts over next time.
func (s *Session) LeavePuzzle() {
	if s.state != StateClock && s.state != StateSequence {
		return
	}
	if p, _ := s.SequencePuzzle(); p != nil && !p.Solved() {
		p.Abort()
	}
	s.closePuzzle()
}

func (s *Session) closePuzzle() {
	s.cancelShowing()
	s.puzzle = nil
	s.state = StateExplore
	s.scene.Resync(s.ctx, s.ledger)
}
