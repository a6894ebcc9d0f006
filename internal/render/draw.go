package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"split-racer/internal/camera"
	"split-racer/internal/scene"
	"split-racer/internal/track"
)

var whiteSubImage *ebiten.Image

// white returns a 1x1 white source image for flat-colored triangles. It is
// cut from the middle of a larger image so edge sampling stays white.
func white() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// fill draws a projected polygon as a triangle fan. With tex nil the polygon
// is flat colored; otherwise U and V index into tex and c tints it.
func fill(dst *ebiten.Image, pts []Point, tex *ebiten.Image, c color.RGBA, shade float64) {
	if len(pts) < 3 {
		return
	}
	src := tex
	if src == nil {
		src = white()
	}
	r := float32(float64(c.R) / 255 * shade)
	g := float32(float64(c.G) / 255 * shade)
	b := float32(float64(c.B) / 255 * shade)
	a := float32(c.A) / 255

	vs := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		sx, sy := float32(1), float32(1)
		if tex != nil {
			sx, sy = float32(p.U), float32(p.V)
		}
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: sx, SrcY: sy,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	is := make([]uint16, 0, 3*(len(pts)-2))
	for i := 1; i < len(pts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	dst.DrawTriangles(vs, is, src, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawGround draws the floor and track quads, lowest layer first.
func drawGround(dst *ebiten.Image, pose camera.Pose, vp image.Rectangle, mesh track.Mesh) {
	for _, q := range mesh.Quads {
		corners := make([]Corner, len(q.Corners))
		for i, p := range q.Corners {
			corners[i] = Corner{World: mgl64.Vec3{p.X, groundY(q.Layer), p.Z}}
		}
		fill(dst, Project(pose, vp, corners), nil, q.Color, 1)
	}
}

// groundY lifts markings a hair above the asphalt so neither flickers.
func groundY(l track.Layer) float64 {
	return float64(l) * 0.001
}

// faceUV gives texture coordinates for the corners of a face on a w×h
// texture: quads get the whole image, triangles a centered apex.
func faceUV(n int, w, h float64) [][2]float64 {
	switch n {
	case 3:
		return [][2]float64{{0, h}, {w, h}, {w / 2, 0}}
	case 4:
		return [][2]float64{{0, h}, {w, h}, {w, 0}, {0, 0}}
	}
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{w / 2, h / 2}
	}
	return out
}

// modelDrawables returns one drawable per face of m so faces of every model
// can be sorted together.
func modelDrawables(dst *ebiten.Image, pose camera.Pose, vp image.Rectangle, m *scene.Model, tex *ebiten.Image, tint color.RGBA) []Drawable {
	verts := m.WorldVertices()
	var tw, th float64
	if tex != nil {
		b := tex.Bounds()
		tw, th = float64(b.Dx()), float64(b.Dy())
	}

	faces := m.Mesh().Faces
	out := make([]Drawable, 0, len(faces))
	for _, f := range faces {
		world := make([]mgl64.Vec3, len(f.Indices))
		for i, idx := range f.Indices {
			world[i] = verts[idx]
		}
		uv := faceUV(len(world), tw, th)
		corners := make([]Corner, len(world))
		for i := range world {
			corners[i] = Corner{World: world[i], U: uv[i][0], V: uv[i][1]}
		}
		shade := f.Shade
		out = append(out, Drawable{
			Depth: depthOf(pose, world),
			Draw: func() {
				fill(dst, Project(pose, vp, corners), tex, tint, shade)
			},
		})
	}
	return out
}
