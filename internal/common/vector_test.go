package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{362, 2},
		{-2, 358},
		{-720, 0},
		{1082, 2},
	}
	for _, tt := range tests {
		got := WrapDegrees(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "WrapDegrees(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestWrapDegreesTinyNegative(t *testing.T) {
	got := WrapDegrees(-1e-17)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.Less(t, got, 360.0)
}

func TestForward(t *testing.T) {
	f := Forward(0)
	assert.InDelta(t, 0, f.X, 1e-12)
	assert.InDelta(t, -1, f.Z, 1e-12)

	f = Forward(90)
	assert.InDelta(t, -1, f.X, 1e-12)
	assert.InDelta(t, 0, f.Z, 1e-12)

	for deg := 0.0; deg < 360; deg += 15 {
		assert.InDelta(t, 1, Forward(deg).Len(), 1e-12)
	}
}

func TestVec2Ops(t *testing.T) {
	a := Vec2{X: 3, Z: 4}
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, Vec2{X: 4, Z: 6}, a.Add(Vec2{X: 1, Z: 2}))
	assert.Equal(t, Vec2{X: 2, Z: 2}, a.Sub(Vec2{X: 1, Z: 2}))
	assert.Equal(t, Vec2{X: 6, Z: 8}, a.Scale(2))
	assert.True(t, a.Sub(a).IsZero())
}
