// Package config loads game settings from defaults, an optional YAML file,
// SPLITRACER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"split-racer/internal/player"
	"split-racer/internal/race"
)

const (
	FileName  = "split-racer"
	EnvPrefix = "SPLITRACER"
)

var ErrInvalid = errors.New("config: invalid setting")

// Keys names the key bound to each action for one player.
type Keys struct {
	Forward  string `mapstructure:"forward"`
	Backward string `mapstructure:"backward"`
	Left     string `mapstructure:"left"`
	Right    string `mapstructure:"right"`
}

// Bindings converts the key names into player bindings.
func (k Keys) Bindings() player.Bindings {
	return player.Bindings{
		player.ActionForward:  k.Forward,
		player.ActionBackward: k.Backward,
		player.ActionLeft:     k.Left,
		player.ActionRight:    k.Right,
	}
}

type Window struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	TPS    int `mapstructure:"tps"` // Simulation ticks per second
}

type Vehicle struct {
	Acceleration float64 `mapstructure:"acceleration"`
	Deceleration float64 `mapstructure:"deceleration"`
}

type Assets struct {
	Car       string `mapstructure:"car"`
	Tree      string `mapstructure:"tree"`
	Start     string `mapstructure:"start"`
	Idle      string `mapstructure:"idle"`
	Moving    string `mapstructure:"moving"`
	Collision string `mapstructure:"collision"`
}

// Volumes are per-cue playback volumes in [0, 1].
type Volumes struct {
	Start     float64 `mapstructure:"start"`
	Idle      float64 `mapstructure:"idle"`
	Moving    float64 `mapstructure:"moving"`
	Collision float64 `mapstructure:"collision"`
}

// Settings is everything the game reads at startup.
type Settings struct {
	Mode     string  `mapstructure:"mode"`
	LogLevel string  `mapstructure:"logLevel"`
	Debug    bool    `mapstructure:"debug"`
	Seed     uint64  `mapstructure:"seed"` // 0 picks a fresh seed per run
	Window   Window  `mapstructure:"window"`
	Vehicle  Vehicle `mapstructure:"vehicle"`
	Assets   Assets  `mapstructure:"assets"`
	Volume   Volumes `mapstructure:"volume"`
	Player1  Keys    `mapstructure:"player1"`
	Player2  Keys    `mapstructure:"player2"`
}

// Keys returns the key names for player index 0 or 1.
func (s Settings) Keys(index int) Keys {
	if index == 0 {
		return s.Player1
	}
	return s.Player2
}

// RaceMode parses the configured mode.
func (s Settings) RaceMode() (race.Mode, error) {
	return race.ParseMode(s.Mode)
}

func setDefaults() {
	viper.SetDefault("mode", string(race.ModeSingle))
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("seed", 0)
	viper.SetDefault("debug", false)

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.tps", 60)

	viper.SetDefault("vehicle.acceleration", 0.02)
	viper.SetDefault("vehicle.deceleration", 0.008)

	viper.SetDefault("assets.car", "assets/car.png")
	viper.SetDefault("assets.tree", "assets/tree.png")
	viper.SetDefault("assets.start", "sound_effects/car_start.wav")
	viper.SetDefault("assets.idle", "sound_effects/car_idle.wav")
	viper.SetDefault("assets.moving", "sound_effects/car_moving.wav")
	viper.SetDefault("assets.collision", "sound_effects/collision.wav")

	viper.SetDefault("volume.start", 0.05)
	viper.SetDefault("volume.idle", 0.03)
	viper.SetDefault("volume.moving", 0.2)
	viper.SetDefault("volume.collision", 0.2)

	for i, prefix := range []string{"player1", "player2"} {
		b := player.DefaultBindings(i)
		viper.SetDefault(prefix+".forward", b[player.ActionForward])
		viper.SetDefault(prefix+".backward", b[player.ActionBackward])
		viper.SetDefault(prefix+".left", b[player.ActionLeft])
		viper.SetDefault(prefix+".right", b[player.ActionRight])
	}
}

// RegisterFlags adds the command-line flags Load understands.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (default ./split-racer.yaml if present)")
	fs.String("mode", string(race.ModeSingle), "race mode: single or multi")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.Uint64("seed", 0, "tree placement seed, 0 for random")
	fs.Bool("debug", false, "show the debug overlay")
}

// Load reads settings. fs may be nil; when set, its changed flags override
// everything else and its --config flag names the file to read. Without
// --config a missing split-racer.yaml in the working directory is fine.
func Load(fs *pflag.FlagSet) (Settings, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	path := ""
	if fs != nil {
		for key, flag := range map[string]string{
			"mode":     "mode",
			"logLevel": "log-level",
			"seed":     "seed",
			"debug":    "debug",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := viper.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(FileName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the game cannot start with.
func (s Settings) Validate() error {
	if _, err := s.RaceMode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.Window.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, s.Window.TPS)
	}
	if s.Vehicle.Acceleration <= 0 || s.Vehicle.Deceleration <= 0 {
		return fmt.Errorf("%w: vehicle acceleration and deceleration must be positive", ErrInvalid)
	}
	return nil
}
