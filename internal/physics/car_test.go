package physics

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeedStaysClamped(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	v := NewVehicle()
	for i := 0; i < 5000; i++ {
		v.Step(rng.IntN(2) == 0, rng.IntN(2) == 0, rng.IntN(2) == 0, rng.IntN(2) == 0)
		require.GreaterOrEqual(t, v.Speed, MinSpeed, "tick %d", i)
		require.LessOrEqual(t, v.Speed, MaxSpeed, "tick %d", i)
		require.GreaterOrEqual(t, v.Heading, 0.0, "tick %d", i)
		require.Less(t, v.Heading, 360.0, "tick %d", i)
	}
}

func TestForwardWinsOverBackward(t *testing.T) {
	v := NewVehicle()
	v.Throttle(true, true)
	assert.InDelta(t, Acceleration, v.Speed, 1e-12)
}

func TestCoastingNeverOvershootsZero(t *testing.T) {
	v := NewVehicle()
	v.Speed = 0.005
	v.Throttle(false, false)
	assert.Equal(t, 0.0, v.Speed)

	v.Speed = -0.005
	v.Throttle(false, false)
	assert.Equal(t, 0.0, v.Speed)

	v.Speed = 0.1
	v.Throttle(false, false)
	assert.InDelta(t, 0.1-Deceleration, v.Speed, 1e-12)
}

func TestReverseClamp(t *testing.T) {
	v := NewVehicle()
	for i := 0; i < 100; i++ {
		v.Throttle(false, true)
	}
	assert.Equal(t, MinSpeed, v.Speed)
}

func TestSteeringGatedBySpeed(t *testing.T) {
	v := NewVehicle()
	assert.Equal(t, 0.0, v.Steer(true, false))

	v.Speed = TurnEpsilon
	assert.Equal(t, 0.0, v.Steer(true, false))

	v.Speed = 0.01
	assert.Equal(t, TurnStep, v.Steer(true, false))
	assert.Equal(t, -TurnStep, v.Steer(false, true))
	assert.Equal(t, TurnStep, v.Steer(true, true))

	v.Speed = -0.01
	assert.Equal(t, TurnStep, v.Steer(true, false))
}

func TestHeadingWrapsBelowZero(t *testing.T) {
	v := NewVehicle()
	v.Speed = 0.2
	_, d := v.Step(false, false, false, true)
	assert.Equal(t, -TurnStep, d)
	assert.InDelta(t, 358, v.Heading, 1e-9)
}

func TestStraightLineAcceleration(t *testing.T) {
	v := NewVehicle()
	var sumZ, expected float64
	for i := 0; i < 50; i++ {
		delta, d := v.Step(true, false, false, false)
		assert.Equal(t, 0.0, d)
		assert.InDelta(t, 0, delta.X, 1e-12)
		sumZ += delta.Z
		expected += v.Speed
	}
	assert.Equal(t, MaxSpeed, v.Speed)
	// heading 0 drives toward -Z
	assert.InDelta(t, -expected, sumZ, 1e-9)
	assert.InDelta(t, -19.0, sumZ, 1e-6)
}
