package ledger

// DialCount is the number of puzzle dial slots the ledger keeps.
const DialCount = 4

// Dial is a stored (hour, minute) pair of a clock puzzle dial.
// The ledger stores dials verbatim; normalisation belongs to the puzzle.
type Dial struct {
	Hour   int
	Minute int
}

// DefaultDial is the position every dial returns to on ResetAll.
var DefaultDial = Dial{Hour: 12, Minute: 0}

// Dial returns the stored value of slot i, or DefaultDial when i is out of range.
func (l *Ledger) Dial(i int) Dial {
	if i < 0 || i >= DialCount {
		return DefaultDial
	}
	return l.dials[i]
}

// SetDial stores d in slot i. Returns false if i is out of range.
func (l *Ledger) SetDial(i int, d Dial) bool {
	if i < 0 || i >= DialCount {
		return false
	}
	l.dials[i] = d
	return true
}

// Dials returns a copy of all dial slots.
func (l *Ledger) Dials() [DialCount]Dial {
	return l.dials
}
