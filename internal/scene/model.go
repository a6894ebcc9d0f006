// Package scene holds the transform-carrying models that cars and trees are
// drawn with. A model is a small procedural mesh skinned with a livery image
// loaded from disk.
package scene

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrEmptyMesh = errors.New("scene: mesh has no vertices")
	ErrFreed     = errors.New("scene: model already freed")
)

// Face is a quad or triangle of a mesh. Shade darkens the livery on that face
// so the mesh reads as solid without lighting.
type Face struct {
	Indices []int
	Shade   float64
}

// Mesh is geometry in model space, Y up, centered on the model's origin.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    []Face
}

// Model is a mesh placed in the world.
type Model struct {
	mesh   Mesh
	livery image.Image
	name   string

	position mgl64.Vec3
	rotation mgl64.Vec3 // Yaw, pitch, roll in degrees
	scale    float64
	freed    bool
}

// LoadLivery decodes the image a model is skinned with.
func LoadLivery(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open livery %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode livery %s: %w", path, err)
	}
	return img, nil
}

// Load builds a model from a mesh and the livery at path. A missing or
// unreadable livery is an error; callers cannot race without their car.
func Load(path string, mesh Mesh) (*Model, error) {
	livery, err := LoadLivery(path)
	if err != nil {
		return nil, err
	}
	return New(path, mesh, livery)
}

// New builds a model from an already decoded livery.
func New(name string, mesh Mesh, livery image.Image) (*Model, error) {
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyMesh)
	}
	return &Model{
		mesh:   mesh,
		livery: livery,
		name:   name,
		scale:  1,
	}, nil
}

func (m *Model) Name() string         { return m.name }
func (m *Model) Livery() image.Image  { return m.livery }
func (m *Model) Mesh() Mesh           { return m.mesh }
func (m *Model) Position() mgl64.Vec3 { return m.position }
func (m *Model) Rotation() mgl64.Vec3 { return m.rotation }
func (m *Model) Freed() bool          { return m.freed }

// Move translates the model.
func (m *Model) Move(dx, dy, dz float64) {
	m.position = m.position.Add(mgl64.Vec3{dx, dy, dz})
}

// SetPosition places the model.
func (m *Model) SetPosition(p mgl64.Vec3) {
	m.position = p
}

// Rotate adds to the model's yaw, pitch and roll.
func (m *Model) Rotate(yaw, pitch, roll float64) {
	m.rotation = m.rotation.Add(mgl64.Vec3{yaw, pitch, roll})
}

// Scale sets a uniform scale.
func (m *Model) Scale(s float64) {
	m.scale = s
}

// Transform returns the model-to-world matrix.
func (m *Model) Transform() mgl64.Mat4 {
	rot := mgl64.AnglesToQuat(
		mgl64.DegToRad(m.rotation.X()),
		mgl64.DegToRad(m.rotation.Y()),
		mgl64.DegToRad(m.rotation.Z()),
		mgl64.YXZ,
	).Mat4()
	return mgl64.Translate3D(m.position.X(), m.position.Y(), m.position.Z()).
		Mul4(rot).
		Mul4(mgl64.Scale3D(m.scale, m.scale, m.scale))
}

// WorldVertices returns the mesh vertices in world space.
func (m *Model) WorldVertices() []mgl64.Vec3 {
	t := m.Transform()
	out := make([]mgl64.Vec3, len(m.mesh.Vertices))
	for i, v := range m.mesh.Vertices {
		out[i] = mgl64.TransformCoordinate(v, t)
	}
	return out
}

// Center is the average of the model's world-space vertices.
func (m *Model) Center() mgl64.Vec3 {
	verts := m.WorldVertices()
	var sum mgl64.Vec3
	for _, v := range verts {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(verts)))
}

// Bounds returns the world-space axis-aligned bounding box.
func (m *Model) Bounds() (lo, hi mgl64.Vec3) {
	verts := m.WorldVertices()
	lo, hi = verts[0], verts[0]
	for _, v := range verts[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return lo, hi
}

// Free releases the model. Renderers drop any cached resources for freed
// models.
func (m *Model) Free() error {
	if m.freed {
		return fmt.Errorf("%s: %w", m.name, ErrFreed)
	}
	m.freed = true
	return nil
}
