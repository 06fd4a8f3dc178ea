package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithNoFileOrFlags(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultClockHz, cfg.ClockHz)
	assert.True(t, cfg.Quirks.ShiftUsesVY)
	assert.True(t, cfg.Quirks.IncrementIOnStore)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chippy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
clock_hz: 1000
quirks:
  shift_uses_vy: false
  increment_i_on_store: false
keymap:
  "5": j
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.ClockHz)
	assert.False(t, cfg.Quirks.ShiftUsesVY)
	assert.Equal(t, "j", cfg.Keymap["5"])
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chippy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock_hz: 1000\n"), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("clock_hz", DefaultClockHz, "")
	require.NoError(t, fs.Set("clock_hz", "42"))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.ClockHz)
}

func TestKeyLayoutRejectsBadOverride(t *testing.T) {
	cfg := Defaults()
	cfg.Keymap = map[string]string{"Z": "j"}
	_, err := cfg.KeyLayout()
	assert.Error(t, err)
}

func TestChipQuirksRoundTrips(t *testing.T) {
	cfg := Defaults()
	q := cfg.ChipQuirks()
	assert.Equal(t, cfg.Quirks.ShiftUsesVY, q.ShiftUsesVY)
	assert.Equal(t, cfg.Quirks.IncrementIOnStore, q.IncrementIOnStore)
}
