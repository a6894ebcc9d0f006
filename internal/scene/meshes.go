package scene

import "github.com/go-gl/mathgl/mgl64"

// Face shading
const (
	shadeTop   = 1.0
	shadeFront = 0.85
	shadeSide  = 0.7
	shadeBack  = 0.55
)

// box appends an axis-aligned box spanning lo..hi to the mesh.
func (m *Mesh) box(lo, hi mgl64.Vec3) {
	base := len(m.Vertices)
	x0, y0, z0 := lo.X(), lo.Y(), lo.Z()
	x1, y1, z1 := hi.X(), hi.Y(), hi.Z()
	m.Vertices = append(m.Vertices,
		mgl64.Vec3{x0, y0, z0}, mgl64.Vec3{x1, y0, z0}, mgl64.Vec3{x1, y0, z1}, mgl64.Vec3{x0, y0, z1},
		mgl64.Vec3{x0, y1, z0}, mgl64.Vec3{x1, y1, z0}, mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x0, y1, z1},
	)
	idx := func(is ...int) []int {
		out := make([]int, len(is))
		for i, v := range is {
			out[i] = base + v
		}
		return out
	}
	m.Faces = append(m.Faces,
		Face{Indices: idx(4, 5, 6, 7), Shade: shadeTop},
		Face{Indices: idx(0, 1, 5, 4), Shade: shadeFront}, // -Z
		Face{Indices: idx(3, 2, 6, 7), Shade: shadeBack},  // +Z
		Face{Indices: idx(0, 3, 7, 4), Shade: shadeSide},  // -X
		Face{Indices: idx(1, 2, 6, 5), Shade: shadeSide},  // +X
	)
}

// CarMesh is a two-box sedan, nose pointing at -Z.
func CarMesh() Mesh {
	var m Mesh
	m.box(mgl64.Vec3{-0.9, 0, -2}, mgl64.Vec3{0.9, 0.7, 2})
	m.box(mgl64.Vec3{-0.75, 0.7, -0.6}, mgl64.Vec3{0.75, 1.3, 1.2})
	return m
}

// TreeMesh is a trunk under a four-sided canopy.
func TreeMesh() Mesh {
	var m Mesh
	m.box(mgl64.Vec3{-0.4, 0, -0.4}, mgl64.Vec3{0.4, 2, 0.4})

	base := len(m.Vertices)
	m.Vertices = append(m.Vertices,
		mgl64.Vec3{-2, 2, -2}, mgl64.Vec3{2, 2, -2}, mgl64.Vec3{2, 2, 2}, mgl64.Vec3{-2, 2, 2},
		mgl64.Vec3{0, 7, 0},
	)
	apex := base + 4
	m.Faces = append(m.Faces,
		Face{Indices: []int{base, base + 1, apex}, Shade: shadeFront},
		Face{Indices: []int{base + 1, base + 2, apex}, Shade: shadeSide},
		Face{Indices: []int{base + 2, base + 3, apex}, Shade: shadeBack},
		Face{Indices: []int{base + 3, base, apex}, Shade: shadeSide},
	)
	return m
}
