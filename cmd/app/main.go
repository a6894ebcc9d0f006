package main

import (
	"errors"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"split-racer/internal/config"
	"split-racer/internal/logging"
	"split-racer/internal/player"
	"split-racer/internal/race"
	"split-racer/internal/render"
	"split-racer/internal/scene"
	"split-racer/internal/sound"
	"split-racer/internal/track"
)

const WindowTitle = "Split Racer"

func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	settings, err := config.Load(fs)
	if err != nil {
		// No logger yet
		logging.New(os.Stderr, "info", true).Fatal().Err(err).Msg("Loading config")
	}
	log := logging.New(os.Stderr, settings.LogLevel, true)

	mode, err := settings.RaceMode()
	if err != nil {
		log.Fatal().Err(err).Msg("Parsing mode")
	}

	// 1. Cars
	cars := make([]*scene.Model, mode.Players())
	models := make([]player.Model, mode.Players())
	for i := range cars {
		car, err := scene.Load(settings.Assets.Car, scene.CarMesh())
		if err != nil {
			log.Fatal().Err(err).Int("player", i+1).Msg("Loading car")
		}
		cars[i], models[i] = car, car
	}

	treeLivery, err := scene.LoadLivery(settings.Assets.Tree)
	if err != nil {
		log.Warn().Err(err).Msg("Tree livery missing, drawing flat trees")
	}

	// 2. Session
	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	session, err := race.New(race.Config{
		Mode:         mode,
		Width:        settings.Window.Width,
		Height:       settings.Window.Height,
		Acceleration: settings.Vehicle.Acceleration,
		Deceleration: settings.Vehicle.Deceleration,
		Placement:    track.DefaultPlacement(),
	}, models, rand.New(rand.NewPCG(seed, seed>>1|1)), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Starting race")
	}
	log.Info().Uint64("seed", seed).Msg("Trees placed")

	// 3. Sound
	channels := loadChannels(settings, mode.Players(), log)

	// 4. Window
	bindings := make([]player.Bindings, mode.Players())
	for i := range bindings {
		bindings[i] = settings.Keys(i).Bindings()
	}
	game, err := render.NewGame(session, render.Options{
		Width:      settings.Window.Width,
		Height:     settings.Window.Height,
		TPS:        settings.Window.TPS,
		Bindings:   bindings,
		Channels:   channels,
		Cars:       cars,
		TreeLivery: treeLivery,
		Debug:      settings.Debug,
		Logger:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Preparing renderer")
	}

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetTPS(settings.Window.TPS)

	runErr := ebiten.RunGame(game)
	if err := errors.Join(game.Close(), session.Close()); err != nil {
		log.Error().Err(err).Msg("Shutting down")
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal().Err(runErr).Msg("Running game")
	}
}

// loadChannels builds one sound channel per player. Any missing sound file
// leaves the game silent rather than failing it.
func loadChannels(s config.Settings, players int, log zerolog.Logger) []*sound.Channel {
	channels := make([]*sound.Channel, players)
	for i := range channels {
		channels[i] = sound.Silent()
	}

	bank, err := sound.NewBank(audio.NewContext(sound.SampleRate),
		map[player.Cue]string{
			player.CueStart:     s.Assets.Start,
			player.CueIdle:      s.Assets.Idle,
			player.CueMoving:    s.Assets.Moving,
			player.CueCollision: s.Assets.Collision,
		},
		map[player.Cue]float64{
			player.CueStart:     s.Volume.Start,
			player.CueIdle:      s.Volume.Idle,
			player.CueMoving:    s.Volume.Moving,
			player.CueCollision: s.Volume.Collision,
		})
	if err != nil {
		log.Warn().Err(err).Msg("Sound disabled")
		return channels
	}

	for i := range channels {
		ch, err := bank.NewChannel()
		if err != nil {
			log.Warn().Err(err).Int("player", i+1).Msg("Sound disabled")
			continue
		}
		channels[i] = ch
	}
	return channels
}
