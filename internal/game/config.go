package game

import (
	"time"

	"github.com/samdwyer/timelock/internal/battle"
	"github.com/samdwyer/timelock/internal/config"
)

// Config holds game configuration options.
type Config struct {
	// Seed for hostile action draws and puzzle sequences.
	// A seed of 0 means a random seed will be generated.
	Seed       int64
	StartScene string

	Timing            battle.Timing
	DisableDuration   time.Duration // How long a fled-from hostile stays passable
	FrameInterval     time.Duration // Host tick
	SequenceStepDelay time.Duration // How long each sequence button stays lit
}

// ConfigFrom extracts the game settings from the application configuration.
func ConfigFrom(c config.Config) Config {
	return Config{
		Seed:       c.Game.Seed,
		StartScene: c.Game.StartScene,
		Timing: battle.Timing{
			HostileActionDelay: c.Battle.HostileActionDelay,
			VictoryDelay:       c.Battle.VictoryDelay,
		},
		DisableDuration:   c.Battle.DisableDuration,
		FrameInterval:     c.Battle.FrameInterval,
		SequenceStepDelay: c.Battle.SequenceStepDelay,
	}
}

// DefaultConfig returns the settings of a default application configuration.
func DefaultConfig() Config {
	return ConfigFrom(config.Default())
}
