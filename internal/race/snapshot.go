package race

import (
	"github.com/go-gl/mathgl/mgl64"

	"split-racer/internal/camera"
	"split-racer/internal/player"
	"split-racer/internal/track"
)

// PlayerView is one player's state as of the end of a frame.
type PlayerView struct {
	Index    int
	Position mgl64.Vec3
	Yaw      float64 // Model yaw in degrees
	Speed    float64
	Camera   camera.Pose
	Laps     int
	Rank     player.Rank
	Cue      player.Cue
	Block    player.BlockState
	OnTrack  bool
	ToFinish float64 // Straight-line distance to the finish box center
}

// Snapshot is a copy of the race taken between frames. It shares no memory
// with the session, so it can be handed to a renderer running elsewhere.
type Snapshot struct {
	Tick      uint64
	ElapsedMS int64
	Timer     string
	Players   []PlayerView
}

// Snapshot copies the current state of the race.
func (s *Session) Snapshot() Snapshot {
	views := make([]PlayerView, len(s.players))
	for i, p := range s.players {
		prog := p.Progress()
		views[i] = PlayerView{
			Index:    p.Index(),
			Position: p.Model().Position(),
			Yaw:      p.Heading(),
			Speed:    p.Speed(),
			Camera:   p.Camera(),
			Laps:     prog.Laps,
			Rank:     prog.Rank,
			Cue:      p.Cue(),
			Block:    p.Block(),
			OnTrack:  s.field.OnTrack(p.Ground()),
			ToFinish: p.Ground().Sub(track.FinishLine.Center()).Len(),
		}
	}
	return Snapshot{
		Tick:      s.tick,
		ElapsedMS: s.ElapsedMS(),
		Timer:     FormatTimer(s.ElapsedMS()),
		Players:   views,
	}
}
