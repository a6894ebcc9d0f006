// Package camera derives a chase camera from a car's pose.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"split-racer/internal/common"
)

const (
	Distance = 10.0 // Behind the car, world units
	Height   = 5.0  // Above the car, world units
	FOV      = 70.0 // Vertical field of view, degrees
	Near     = 0.1
	Far      = 100.0
)

var up = mgl64.Vec3{0, 1, 0}

// Follow keeps a camera behind and above a car.
type Follow struct {
	Distance float64
	Height   float64
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
}

// NewFollow returns a chase camera for a viewport with the given aspect ratio.
func NewFollow(aspect float64) *Follow {
	if aspect <= 0 {
		aspect = 1
	}
	return &Follow{
		Distance: Distance,
		Height:   Height,
		FOV:      FOV,
		Aspect:   aspect,
		Near:     Near,
		Far:      Far,
	}
}

// Pose is a camera placement ready for rendering.
type Pose struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Yaw    float64 // Degrees, same as the followed car's heading

	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// Update places the camera Distance behind the car along its heading, Height
// above it, looking at the car's geometric center. The center is used instead
// of the car's origin so that off-center meshes stay framed.
func (f *Follow) Update(pos, center mgl64.Vec3, heading float64) Pose {
	back := common.Forward(heading).Scale(-f.Distance)
	eye := mgl64.Vec3{pos.X() + back.X, pos.Y() + f.Height, pos.Z() + back.Z}

	return Pose{
		Eye:        eye,
		Target:     center,
		Yaw:        heading,
		View:       mgl64.LookAtV(eye, center, up),
		Projection: mgl64.Perspective(mgl64.DegToRad(f.FOV), f.Aspect, f.Near, f.Far),
	}
}

// Clip transforms a world point into homogeneous clip space.
func (p Pose) Clip(world mgl64.Vec3) mgl64.Vec4 {
	return p.Projection.Mul4(p.View).Mul4x1(world.Vec4(1))
}

// Depth is the distance of a world point in front of the camera, along the
// viewing direction. Negative means behind.
func (p Pose) Depth(world mgl64.Vec3) float64 {
	v := p.View.Mul4x1(world.Vec4(1))
	return -v.Z()
}
