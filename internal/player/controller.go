// Package player turns one player's key presses into car motion, collision
// handling, camera placement and lap bookkeeping.
package player

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"split-racer/internal/camera"
	"split-racer/internal/common"
	"split-racer/internal/physics"
)

var ErrNoModel = errors.New("player: vehicle model is required")

// Model is the renderable object a car is drawn with.
type Model interface {
	Position() mgl64.Vec3
	Center() mgl64.Vec3
	Move(dx, dy, dz float64)
	Rotate(yaw, pitch, roll float64)
}

// Collider vetoes moves that would run into something.
type Collider interface {
	WouldCollide(pos, delta common.Vec2) bool
}

type openField struct{}

func (openField) WouldCollide(common.Vec2, common.Vec2) bool { return false }

// BlockState remembers which travel direction last ran into an obstacle. It
// only returns to Clear once the car's speed changes sign, so a car pinned
// against a tree is not re-tested every frame while still pushing into it.
type BlockState int

const (
	Clear BlockState = iota
	BlockedForward
	BlockedBackward
)

func (b BlockState) String() string {
	switch b {
	case Clear:
		return "clear"
	case BlockedForward:
		return "blocked-forward"
	case BlockedBackward:
		return "blocked-backward"
	}
	return "unknown"
}

// Config describes one player.
type Config struct {
	Index    int
	Model    Model
	Collider Collider // nil means nothing to hit
	Aspect   float64  // Viewport width / height

	// Zero keeps the physics defaults.
	Acceleration float64
	Deceleration float64
}

// Frame is what one Step did.
type Frame struct {
	Delta  common.Vec2 // Applied displacement
	Turn   float64     // Applied heading change, degrees
	Vetoed bool        // A collision cancelled this tick's move
	Block  BlockState
	Cue    Cue
	Camera camera.Pose
}

// Controller owns one car for the length of a race.
type Controller struct {
	index    int
	vehicle  *physics.Vehicle
	model    Model
	collider Collider
	camera   *camera.Follow

	block    BlockState
	cue      Cue
	pose     camera.Pose
	progress Progress
}

func New(cfg Config) (*Controller, error) {
	if cfg.Model == nil {
		return nil, ErrNoModel
	}
	collider := cfg.Collider
	if collider == nil {
		collider = openField{}
	}

	v := physics.NewVehicle()
	if cfg.Acceleration > 0 {
		v.Accel = cfg.Acceleration
	}
	if cfg.Deceleration > 0 {
		v.Decel = cfg.Deceleration
	}

	c := &Controller{
		index:    cfg.Index,
		vehicle:  v,
		model:    cfg.Model,
		collider: collider,
		camera:   camera.NewFollow(cfg.Aspect),
		cue:      CueIdle,
		progress: newProgress(),
	}
	c.pose = c.camera.Update(c.model.Position(), c.model.Center(), v.Heading)
	return c, nil
}

func (c *Controller) Index() int               { return c.index }
func (c *Controller) Speed() float64           { return c.vehicle.Speed }
func (c *Controller) Heading() float64         { return c.vehicle.Heading }
func (c *Controller) Block() BlockState        { return c.block }
func (c *Controller) Cue() Cue                 { return c.cue }
func (c *Controller) Camera() camera.Pose      { return c.pose }
func (c *Controller) Progress() Progress       { return c.progress }
func (c *Controller) Model() Model             { return c.model }
func (c *Controller) Ground() common.Vec2      { return ground(c.model.Position()) }
func (c *Controller) Vehicle() physics.Vehicle { return *c.vehicle }

func ground(p mgl64.Vec3) common.Vec2 {
	return common.Vec2{X: p.X(), Z: p.Z()}
}

// Step advances the car by one tick of input.
func (c *Controller) Step(in Input) Frame {
	// 1-3. Speed, gated turn, candidate move from the new heading
	delta, turn := c.vehicle.Step(in.Forward, in.Backward, in.Left, in.Right)

	// 4. Collision veto, memoized per travel direction
	vetoed := false
	pos := c.Ground()
	switch speed := c.vehicle.Speed; {
	case speed > 0:
		if c.block == BlockedBackward {
			c.block = Clear
		}
		if c.block == Clear && c.collider.WouldCollide(pos, delta) {
			c.block = BlockedForward
		}
		vetoed = c.block == BlockedForward
	case speed < 0:
		if c.block == BlockedForward {
			c.block = Clear
		}
		if c.block == Clear && c.collider.WouldCollide(pos, delta) {
			c.block = BlockedBackward
		}
		vetoed = c.block == BlockedBackward
	}
	if vetoed {
		c.vehicle.Turn(-turn)
		delta = common.Vec2{}
		turn = 0
	}

	// 5. Apply to the model
	if !delta.IsZero() {
		c.model.Move(delta.X, 0, delta.Z)
	}
	if turn != 0 {
		c.model.Rotate(turn, 0, 0)
	}

	// 6. Camera
	c.pose = c.camera.Update(c.model.Position(), c.model.Center(), c.vehicle.Heading)

	// 7. Sound
	c.cue = SelectCue(c.vehicle.Speed, c.block)

	return Frame{
		Delta:  delta,
		Turn:   turn,
		Vetoed: vetoed,
		Block:  c.block,
		Cue:    c.cue,
		Camera: c.pose,
	}
}

// Cue is an engine sound. Idle, Moving and Collision are mutually exclusive;
// Start plays once on its own.
type Cue int

const (
	CueNone Cue = iota
	CueStart
	CueIdle
	CueMoving
	CueCollision
)

// IdleBelow is the |speed| under which a free car sounds idle.
const IdleBelow = 0.1

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueIdle:
		return "idle"
	case CueMoving:
		return "moving"
	case CueCollision:
		return "collision"
	}
	return "none"
}

// SelectCue picks the engine sound for the car's current state.
func SelectCue(speed float64, block BlockState) Cue {
	switch {
	case block != Clear:
		return CueCollision
	case math.Abs(speed) < IdleBelow:
		return CueIdle
	}
	return CueMoving
}
