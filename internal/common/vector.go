package common

import "math"

// Vec2 is a vector on the ground plane. Y is up in world space, so the two
// components are the world X and Z axes.
type Vec2 struct {
	X, Z float64
}

// Add adds two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Z + other.Z}
}

// Sub subtracts other from v.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Z - other.Z}
}

// Scale multiplies the vector by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Z * s}
}

// Len returns the length of the vector.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Z == 0
}

// WrapDegrees normalizes an angle into [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod(-1e-17, 360) + 360 rounds to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Forward returns the unit direction a vehicle with the given heading (degrees)
// drives in. Heading 0 faces world -Z and heading 90 faces world -X; the track
// layout is authored in this frame.
func Forward(headingDeg float64) Vec2 {
	r := Radians(headingDeg)
	return Vec2{X: -math.Sin(r), Z: -math.Cos(r)}
}
