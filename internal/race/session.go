// Package race runs a session: the players, the shared track and trees, the
// race clock and the ranking between players.
package race

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"reflect"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"split-racer/internal/collision"
	"split-racer/internal/common"
	"split-racer/internal/player"
	"split-racer/internal/track"
)

var (
	ErrPlayerCount = errors.New("race: wrong number of players for mode")
	ErrUnknownMode = errors.New("race: unknown mode")
)

// Mode selects how many players share the screen.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSingle, ModeMulti:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Players returns how many cars race in this mode.
func (m Mode) Players() int {
	if m == ModeMulti {
		return 2
	}
	return 1
}

// Viewports splits a w×h screen into one rectangle per player, side by side.
func (m Mode) Viewports(w, h int) []image.Rectangle {
	n := m.Players()
	out := make([]image.Rectangle, n)
	for i := range out {
		out[i] = image.Rect(i*w/n, 0, (i+1)*w/n, h)
	}
	return out
}

// Grid returns the starting spot of each player.
func (m Mode) Grid() []mgl64.Vec3 {
	if m == ModeMulti {
		return []mgl64.Vec3{{-2, 0, 0}, {2, 0, 0}}
	}
	return []mgl64.Vec3{{0, 0, 0}}
}

// Tree is one obstacle as the renderer sees it.
type Tree struct {
	Site  common.Vec2
	Scale float64
}

// Config holds what a session needs besides its cars.
type Config struct {
	Mode          Mode
	Width, Height int // Screen size, used for camera aspect ratios

	Acceleration float64 // Zero keeps the physics default
	Deceleration float64

	Placement track.Placement
}

// Session is one race.
type Session struct {
	id     uuid.UUID
	mode   Mode
	logger zerolog.Logger

	players   []*player.Controller
	models    []player.Model
	field     *collision.Field
	trees     []Tree
	layout    []track.Segment
	viewports []image.Rectangle

	tick    uint64
	elapsed time.Duration
}

// New sets up a race. cars holds one loaded model per player in mode order;
// a missing model aborts the session.
func New(cfg Config, cars []player.Model, rng *rand.Rand, logger zerolog.Logger) (*Session, error) {
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}
	if len(cars) != mode.Players() {
		return nil, fmt.Errorf("%w: %s needs %d, got %d", ErrPlayerCount, mode, mode.Players(), len(cars))
	}

	regions := track.Regions()
	sites := track.PlaceObstacles(rng, regions, cfg.Placement)
	trees := make([]Tree, len(sites))
	for i, s := range sites {
		trees[i] = Tree{Site: s, Scale: 0.1 + rng.Float64()*0.9}
	}
	field := collision.NewField(sites, regions)

	id := uuid.New()
	s := &Session{
		id:        id,
		mode:      mode,
		logger:    logger.With().Str("session", id.String()).Str("mode", string(mode)).Logger(),
		models:    cars,
		field:     field,
		trees:     trees,
		layout:    track.Layout(),
		viewports: mode.Viewports(cfg.Width, cfg.Height),
	}

	grid := mode.Grid()
	for i, car := range cars {
		if missing(car) {
			return nil, fmt.Errorf("player %d: %w", i+1, player.ErrNoModel)
		}
		start := grid[i].Sub(car.Position())
		car.Move(start.X(), start.Y(), start.Z())

		vp := s.viewports[i]
		aspect := 1.0
		if vp.Dy() > 0 {
			aspect = float64(vp.Dx()) / float64(vp.Dy())
		}
		c, err := player.New(player.Config{
			Index:        i,
			Model:        car,
			Collider:     field,
			Aspect:       aspect,
			Acceleration: cfg.Acceleration,
			Deceleration: cfg.Deceleration,
		})
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		s.players = append(s.players, c)
	}

	s.logger.Info().
		Int("players", len(s.players)).
		Int("trees", len(trees)).
		Msg("session ready")
	return s, nil
}

// missing catches a nil model, including a nil pointer held in the interface.
func missing(m player.Model) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (s *Session) ID() uuid.UUID           { return s.id }
func (s *Session) Mode() Mode              { return s.mode }
func (s *Session) Trees() []Tree           { return append([]Tree(nil), s.trees...) }
func (s *Session) Layout() []track.Segment { return append([]track.Segment(nil), s.layout...) }
func (s *Session) Viewports() []image.Rectangle {
	return append([]image.Rectangle(nil), s.viewports...)
}
func (s *Session) Players() []*player.Controller   { return s.players }
func (s *Session) Obstacles() []collision.Obstacle { return s.field.Obstacles() }
func (s *Session) ElapsedMS() int64                { return elapsedMS(s.elapsed) }

// Step advances the race by one frame. inputs holds one entry per player;
// missing entries mean no keys held. Player 1 is stepped fully before
// player 2.
func (s *Session) Step(inputs []player.Input, dt time.Duration) {
	s.tick++
	s.elapsed += dt
	now := elapsedMS(s.elapsed)

	for i, p := range s.players {
		var in player.Input
		if i < len(inputs) {
			in = inputs[i]
		}

		before := p.Block()
		f := p.Step(in)
		if f.Block != before {
			s.logger.Debug().
				Int("player", i+1).
				Stringer("from", before).
				Stringer("to", f.Block).
				Msg("block state changed")
		}

		if p.UpdateLap(now) {
			s.logger.Info().
				Int("player", i+1).
				Int("laps", p.Progress().Laps).
				Str("time", FormatTimer(now)).
				Msg("lap completed")
		}
	}

	if len(s.players) == 2 {
		player.CheckRank(s.players[1], s.players[0])
	}
}

// Close releases the car models that support it.
func (s *Session) Close() error {
	var errs []error
	for _, m := range s.models {
		if f, ok := m.(interface{ Free() error }); ok {
			if err := f.Free(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	s.logger.Info().Dur("elapsed", s.elapsed).Msg("session closed")
	return errors.Join(errs...)
}

// elapsedMS rounds race time to whole milliseconds. A time.Second/60 tick is
// a few nanoseconds short of 1/60 s.
func elapsedMS(d time.Duration) int64 {
	return d.Round(time.Millisecond).Milliseconds()
}

// FormatTimer renders race time as minutes:seconds:milliseconds.
func FormatTimer(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d:%03d", ms/60000, ms/1000%60, ms%1000)
}
