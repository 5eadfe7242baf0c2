// Package config provides Viper-based configuration loading for Timelock.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TIMELOCK_GAME_SEED.
const EnvPrefix = "TIMELOCK"

// GameConfig holds session settings.
type GameConfig struct {
	// Seed drives hostile action draws and puzzle sequences. 0 picks a
	// time-based seed. Scene layouts always use their own fixed seeds.
	Seed int64 `mapstructure:"seed"`
	// StartScene is the scene a new game begins in.
	StartScene string `mapstructure:"start_scene"`
}

// BattleConfig holds encounter pacing.
type BattleConfig struct {
	// HostileActionDelay separates consecutive hostile actions.
	HostileActionDelay time.Duration `mapstructure:"hostile_action_delay"`
	// VictoryDelay is the pause between the last hostile falling and leaving the encounter.
	VictoryDelay time.Duration `mapstructure:"victory_delay"`
	// DisableDuration is how long a fled-from hostile stays disabled in the overworld.
	DisableDuration time.Duration `mapstructure:"disable_duration"`
	// FrameInterval is the host tick that advances scheduled continuations.
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	// SequenceStepDelay is how long each button of a sequence puzzle stays lit.
	SequenceStepDelay time.Duration `mapstructure:"sequence_step_delay"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output lists zap sink paths. The terminal belongs to the game, so the
	// default is a file.
	Output []string `mapstructure:"output"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// Config is the top-level application configuration.
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Battle    BattleConfig    `mapstructure:"battle"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if c.Game.StartScene == "" {
		errs = append(errs, "game.start_scene must not be empty")
	}
	errs = append(errs, validateBattle(c.Battle)...)
	errs = append(errs, validateLogging(c.Logging)...)
	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		errs = append(errs, "telemetry.service_name must not be empty when telemetry is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBattle(b BattleConfig) []string {
	var errs []string
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"battle.hostile_action_delay", b.HostileActionDelay},
		{"battle.victory_delay", b.VictoryDelay},
		{"battle.disable_duration", b.DisableDuration},
		{"battle.sequence_step_delay", b.SequenceStepDelay},
	}
	for _, d := range durations {
		if d.d < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative, got %s", d.name, d.d))
		}
	}
	if b.FrameInterval <= 0 {
		errs = append(errs, fmt.Sprintf("battle.frame_interval must be positive, got %s", b.FrameInterval))
	}
	return errs
}

func validateLogging(l LoggingConfig) []string {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if len(l.Output) == 0 {
		errs = append(errs, "logging.output must list at least one path")
	}
	return errs
}

// Load reads configuration from path, applies TIMELOCK_ environment
// overrides and defaults, and validates the result. An empty path uses
// defaults and the environment only.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.start_scene", "Level 1")

	v.SetDefault("battle.hostile_action_delay", "1s")
	v.SetDefault("battle.victory_delay", "3s")
	v.SetDefault("battle.disable_duration", "5s")
	v.SetDefault("battle.frame_interval", "50ms")
	v.SetDefault("battle.sequence_step_delay", "600ms")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", []string{"timelock.log"})

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "timelock")
}
