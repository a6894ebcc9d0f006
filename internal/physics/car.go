package physics

import (
	"math"

	"split-racer/internal/common"
)

const (
	MaxSpeed     = 0.5   // World units per tick, forward
	MinSpeed     = -0.3  // World units per tick, reverse
	Acceleration = 0.02  // Speed gained per tick while throttle or reverse is held
	Deceleration = 0.008 // Speed lost per tick while coasting
	TurnEpsilon  = 0.005 // Below this |speed| steering is ignored
	TurnStep     = 2.0   // Degrees per tick
)

// Vehicle is the kinematic state of one car. Position lives on the model the
// car is rendered with; the vehicle only proposes moves.
type Vehicle struct {
	Speed   float64 // Signed, in [MinSpeed, MaxSpeed]
	Heading float64 // Degrees, in [0, 360)

	Accel float64
	Decel float64
}

func NewVehicle() *Vehicle {
	return &Vehicle{
		Accel: Acceleration,
		Decel: Deceleration,
	}
}

// Throttle updates speed from the longitudinal keys. Forward wins when both
// are held. With neither held the car coasts toward zero without crossing it.
func (v *Vehicle) Throttle(forward, backward bool) {
	switch {
	case forward:
		v.Speed += v.Accel
	case backward:
		v.Speed -= v.Accel
	case v.Speed > 0:
		v.Speed = math.Max(0, v.Speed-v.Decel)
	case v.Speed < 0:
		v.Speed = math.Min(0, v.Speed+v.Decel)
	}
	v.Speed = ClampSpeed(v.Speed)
}

// Steer returns the heading change requested by the lateral keys. Left wins
// when both are held. A car that is (nearly) stopped cannot turn.
func (v *Vehicle) Steer(left, right bool) float64 {
	if math.Abs(v.Speed) <= TurnEpsilon {
		return 0
	}
	switch {
	case left:
		return TurnStep
	case right:
		return -TurnStep
	}
	return 0
}

// Turn applies a heading delta, keeping the heading in [0, 360).
func (v *Vehicle) Turn(delta float64) {
	if delta == 0 {
		return
	}
	v.Heading = common.WrapDegrees(v.Heading + delta)
}

// Displacement is the move the car wants to make this tick at its current
// speed and heading.
func (v *Vehicle) Displacement() common.Vec2 {
	return common.Forward(v.Heading).Scale(v.Speed)
}

// Step runs one tick of input and returns the candidate move together with the
// heading delta that was applied. The caller decides whether the move happens;
// undoing the turn is Turn(-dHeading).
func (v *Vehicle) Step(forward, backward, left, right bool) (delta common.Vec2, dHeading float64) {
	// 1. Longitudinal
	v.Throttle(forward, backward)

	// 2. Steering, gated on the new speed
	dHeading = v.Steer(left, right)
	v.Turn(dHeading)

	// 3. Candidate move from the new heading
	return v.Displacement(), dHeading
}

// ClampSpeed bounds a speed into [MinSpeed, MaxSpeed].
func ClampSpeed(s float64) float64 {
	return math.Min(math.Max(s, MinSpeed), MaxSpeed)
}
