package world

import (
	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
)

// Object is a placed world object. Its flags mirror the ledger and are
// rewritten on every Resync.
type Object struct {
	ID   ledger.ID
	Def  gamedata.ObjectDef
	X, Y int

	Gone     bool // Destroyed hostile or collected key
	Disabled bool // Hostile the player fled from
	Open     bool // Door
	Emptied  bool // Barrel
	Read     bool // Sign
	Solved   bool // Puzzle
}

// Kind returns the object kind.
func (o *Object) Kind() gamedata.ObjectKind {
	return o.Def.Kind
}

// Visible reports whether the object is drawn.
func (o *Object) Visible() bool {
	return !o.Gone
}

// Blocks reports whether the object stops movement onto its tile.
func (o *Object) Blocks() bool {
	if o.Gone {
		return false
	}
	switch o.Def.Kind {
	case gamedata.ObjectHostile:
		return !o.Disabled
	case gamedata.ObjectDoor:
		return !o.Open
	case gamedata.ObjectStairs:
		return false
	default:
		return true
	}
}

// Glyph returns the map character for non-hostile objects. Hostiles are
// drawn from their hostile definition.
func (o *Object) Glyph() rune {
	switch o.Def.Kind {
	case gamedata.ObjectDoor:
		if o.Open {
			return '\''
		}
		return '+'
	case gamedata.ObjectKey:
		return '*'
	case gamedata.ObjectBarrel:
		if o.Emptied {
			return 'u'
		}
		return '0'
	case gamedata.ObjectSign:
		return '?'
	case gamedata.ObjectClockPuzzle:
		return '%'
	case gamedata.ObjectButtonPuzzle:
		return '='
	case gamedata.ObjectStairs:
		return '>'
	default:
		return '&'
	}
}

// sync reads the object's flags from led.
func (o *Object) sync(led *ledger.Ledger) {
	switch o.Def.Kind {
	case gamedata.ObjectHostile:
		o.Gone = led.Contains(ledger.EntityDestroyed, o.ID)
		o.Disabled = led.Contains(ledger.EntityDisabled, o.ID)
	case gamedata.ObjectKey:
		o.Gone = led.Contains(ledger.ItemCollected, o.ID)
	case gamedata.ObjectBarrel:
		o.Emptied = led.Contains(ledger.ItemCollected, o.ID)
	case gamedata.ObjectDoor:
		o.Open = led.Contains(ledger.BarrierOpen, o.ID)
	case gamedata.ObjectSign:
		o.Read = led.Contains(ledger.MarkerRead, o.ID)
	case gamedata.ObjectClockPuzzle, gamedata.ObjectButtonPuzzle:
		o.Solved = led.Contains(ledger.PuzzleSolved, o.ID)
	}
}
