// Package battle provides the player-facing battle menu state machine and
// the encounter lifecycle around it.
package battle

import "github.com/samdwyer/timelock/internal/gamedata"

// Input is one discrete input event delivered by the host.
type Input int

const (
	InputUp Input = iota
	InputDown
	InputLeft
	InputRight
	InputConfirm
	InputCancel
)

// String returns a human-readable input name.
func (i Input) String() string {
	switch i {
	case InputUp:
		return "up"
	case InputDown:
		return "down"
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputConfirm:
		return "confirm"
	case InputCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Option is a main menu option.
type Option int

const (
	OptionAttack Option = iota
	OptionDefend
	OptionStats
	OptionRun

	numOptions = 4
)

// Options lists the main menu in display order.
func Options() []Option {
	return []Option{OptionAttack, OptionDefend, OptionStats, OptionRun}
}

// String returns the option label.
func (o Option) String() string {
	switch o {
	case OptionAttack:
		return "Attack"
	case OptionDefend:
		return "Defend"
	case OptionStats:
		return "Stats"
	case OptionRun:
		return "Run"
	default:
		return "Unknown"
	}
}

// menu returns the action menu an option lists, if any.
func (o Option) menu() (gamedata.Menu, bool) {
	switch o {
	case OptionAttack:
		return gamedata.MenuAttack, true
	case OptionDefend:
		return gamedata.MenuDefend, true
	default:
		return "", false
	}
}

// Entry is one submenu line. Action is nil for the Stats and Run entries.
type Entry struct {
	Label  string
	Action *gamedata.ActionDef
}

// MenuState is exactly one of MainMenu, Submenu or Targeting.
type MenuState interface {
	isMenuState()
}

// MainMenu has the cursor on one of the four main options.
type MainMenu struct {
	Selected Option
}

// Submenu has the submenu of Option open with the cursor on Selected.
type Submenu struct {
	Option   Option
	Selected int
}

// Targeting is choosing a hostile for a single-target action.
type Targeting struct {
	Cursor int
}

func (MainMenu) isMenuState() {}
func (Submenu) isMenuState() {}
func (Targeting) isMenuState() {}

// wrap returns i moved by delta within [0, n).
func wrap(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}
