// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is walking the current scene.
	StateExplore State = iota
	// StateBattle hands input to the encounter controller.
	StateBattle
	// StateClock is adjusting the dials of a clock puzzle.
	StateClock
	// StateSequence is repeating a button sequence.
	StateSequence
	// StateGameOver waits for a new game.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateBattle:
		return "battle"
	case StateClock:
		return "clock"
	case StateSequence:
		return "sequence"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
