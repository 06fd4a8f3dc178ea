// Package config loads chippy's runtime configuration (clock speed, quirk
// toggles, keymap overrides, asset paths) from an optional YAML file via
// spf13/viper, layered under command-line flags supplied as a pflag set.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chippy-vm/chippy/internal/chip8"
	"github.com/chippy-vm/chippy/internal/keymap"
)

// DefaultClockHz is the instruction rate used when neither a config file
// nor a flag overrides it; spec §5 suggests 500-1000 Step calls/second.
const DefaultClockHz = 700

// Quirks mirrors chip8.Quirks with mapstructure tags so it can be decoded
// directly from YAML.
type Quirks struct {
	ShiftUsesVY       bool `mapstructure:"shift_uses_vy"`
	IncrementIOnStore bool `mapstructure:"increment_i_on_store"`
}

// Config is the fully resolved set of knobs the run command needs.
type Config struct {
	ClockHz int               `mapstructure:"clock_hz"`
	BeepPath string           `mapstructure:"beep_path"`
	Keymap   map[string]string `mapstructure:"keymap"`
	Quirks   Quirks            `mapstructure:"quirks"`
}

// Defaults returns the configuration chippy runs with absent any file or
// flag overrides.
func Defaults() Config {
	dq := chip8.DefaultQuirks()
	return Config{
		ClockHz:  DefaultClockHz,
		BeepPath: "assets/beep.mp3",
		Quirks: Quirks{
			ShiftUsesVY:       dq.ShiftUsesVY,
			IncrementIOnStore: dq.IncrementIOnStore,
		},
	}
}

// Load resolves Config from, in increasing precedence: built-in defaults,
// an optional YAML file at path (ignored if path is empty), and flags
// bound in fs (any flag the caller has defined takes precedence once set).
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Defaults()
	v.SetDefault("clock_hz", def.ClockHz)
	v.SetDefault("beep_path", def.BeepPath)
	v.SetDefault("quirks.shift_uses_vy", def.Quirks.ShiftUsesVY)
	v.SetDefault("quirks.increment_i_on_store", def.Quirks.IncrementIOnStore)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// ChipQuirks converts the config's quirk toggles to the type chip8.New
// expects.
func (c Config) ChipQuirks() chip8.Quirks {
	return chip8.Quirks{
		ShiftUsesVY:       c.Quirks.ShiftUsesVY,
		IncrementIOnStore: c.Quirks.IncrementIOnStore,
	}
}

// KeyLayout resolves the configured keymap overrides against
// keymap.DefaultLayout.
func (c Config) KeyLayout() (map[uint8]string, error) {
	return keymap.Parse(c.Keymap)
}
