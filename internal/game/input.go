package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/timelock/internal/battle"
)

// direction maps arrow keys and vi keys to a movement delta.
func direction(k tcell.Key, r rune) (dx, dy int, ok bool) {
	switch k {
	case tcell.KeyUp:
		return 0, -1, true
	case tcell.KeyDown:
		return 0, 1, true
	case tcell.KeyLeft:
		return -1, 0, true
	case tcell.KeyRight:
		return 1, 0, true
	case tcell.KeyRune:
		switch r {
		case 'k', 'w':
			return 0, -1, true
		case 'j', 's':
			return 0, 1, true
		case 'h', 'a':
			return -1, 0, true
		case 'l', 'd':
			return 1, 0, true
		}
	}
	return 0, 0, false
}

// battleInput maps a key to a battle menu input.
func battleInput(k tcell.Key, r rune) (battle.Input, bool) {
	switch k {
	case tcell.KeyEnter:
		return battle.InputConfirm, true
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		return battle.InputCancel, true
	case tcell.KeyRune:
		switch r {
		case ' ', 'z':
			return battle.InputConfirm, true
		case 'x':
			return battle.InputCancel, true
		}
	}
	if dx, dy, ok := direction(k, r); ok {
		switch {
		case dy < 0:
			return battle.InputUp, true
		case dy > 0:
			return battle.InputDown, true
		case dx < 0:
			return battle.InputLeft, true
		default:
			return battle.InputRight, true
		}
	}
	return 0, false
}

// buttonIndex maps the digit keys 1-9 to button indexes 0-8.
func buttonIndex(k tcell.Key, r rune) (int, bool) {
	if k != tcell.KeyRune || r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}
