package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"split-racer/internal/player"
	"split-racer/internal/race"
)

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "single", s.Mode)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, uint64(0), s.Seed)
	assert.Equal(t, Window{Width: 1280, Height: 720, TPS: 60}, s.Window)
	assert.Equal(t, 0.02, s.Vehicle.Acceleration)
	assert.Equal(t, 0.008, s.Vehicle.Deceleration)
	assert.Equal(t, "assets/car.png", s.Assets.Car)
	assert.Equal(t, "sound_effects/car_idle.wav", s.Assets.Idle)
	assert.Equal(t, Volumes{Start: 0.05, Idle: 0.03, Moving: 0.2, Collision: 0.2}, s.Volume)
	assert.Equal(t, player.DefaultBindings(0), s.Keys(0).Bindings())
	assert.Equal(t, player.DefaultBindings(1), s.Keys(1).Bindings())

	mode, err := s.RaceMode()
	require.NoError(t, err)
	assert.Equal(t, race.ModeSingle, mode)
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "race.yaml")
	cfg := `
mode: multi
window:
  width: 800
vehicle:
  acceleration: 0.05
player2:
  forward: I
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	s, err := Load(flags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, "multi", s.Mode)
	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height)
	assert.Equal(t, 0.05, s.Vehicle.Acceleration)
	assert.Equal(t, "I", s.Player2.Forward)
	assert.Equal(t, "ArrowDown", s.Player2.Backward)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load(flags(t, "--config", "/nonexistent/split-racer.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "race.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: single\nwindow:\n  tps: 30\n"), 0644))
	t.Setenv("SPLITRACER_MODE", "multi")
	t.Setenv("SPLITRACER_WINDOW_TPS", "120")

	s, err := Load(flags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "multi", s.Mode)
	assert.Equal(t, 120, s.Window.TPS)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SPLITRACER_MODE", "single")

	s, err := Load(flags(t, "--mode", "multi", "--seed", "42", "--log-level", "debug"))
	require.NoError(t, err)
	assert.Equal(t, "multi", s.Mode)
	assert.Equal(t, uint64(42), s.Seed)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown mode", map[string]string{"SPLITRACER_MODE": "triple"}},
		{"zero width", map[string]string{"SPLITRACER_WINDOW_WIDTH": "0"}},
		{"zero tps", map[string]string{"SPLITRACER_WINDOW_TPS": "0"}},
		{"negative accel", map[string]string{"SPLITRACER_VEHICLE_ACCELERATION": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(nil)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
