package render

import (
	"image"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"split-racer/internal/camera"
)

// Corner is a polygon corner in world space with its texture coordinate.
type Corner struct {
	World mgl64.Vec3
	U, V  float64
}

// Point is a projected corner in screen pixels.
type Point struct {
	X, Y float64
	U, V float64
}

type clipCorner struct {
	c    mgl64.Vec4
	u, v float64
}

func lerp(a, b clipCorner, t float64) clipCorner {
	return clipCorner{
		c: a.c.Add(b.c.Sub(a.c).Mul(t)),
		u: a.u + (b.u-a.u)*t,
		v: a.v + (b.v-a.v)*t,
	}
}

// clipNear keeps the part of a convex polygon with w >= near. Nothing behind
// the camera reaches the perspective divide.
func clipNear(in []clipCorner, near float64) []clipCorner {
	if len(in) == 0 {
		return nil
	}
	out := make([]clipCorner, 0, len(in)+2)
	prev := in[len(in)-1]
	prevIn := prev.c.W() >= near
	for _, cur := range in {
		curIn := cur.c.W() >= near
		if curIn != prevIn {
			t := (near - prev.c.W()) / (cur.c.W() - prev.c.W())
			out = append(out, lerp(prev, cur, t))
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// Project maps a convex world polygon into the pixels of vp as seen through
// pose. It returns nil when the polygon is entirely behind the near plane.
// Clipping against the viewport edges is left to the target image.
func Project(pose camera.Pose, vp image.Rectangle, corners []Corner) []Point {
	cc := make([]clipCorner, len(corners))
	for i, c := range corners {
		cc[i] = clipCorner{c: pose.Clip(c.World), u: c.U, v: c.V}
	}
	cc = clipNear(cc, camera.Near)
	if len(cc) < 3 {
		return nil
	}

	w, h := float64(vp.Dx()), float64(vp.Dy())
	out := make([]Point, len(cc))
	for i, c := range cc {
		ndcX, ndcY := c.c.X()/c.c.W(), c.c.Y()/c.c.W()
		out[i] = Point{
			X: float64(vp.Min.X) + (ndcX+1)/2*w,
			Y: float64(vp.Min.Y) + (1-ndcY)/2*h,
			U: c.u,
			V: c.v,
		}
	}
	return out
}

// depthOf is the mean camera-space depth of a set of world points.
func depthOf(pose camera.Pose, pts []mgl64.Vec3) float64 {
	if len(pts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pts {
		sum += pose.Depth(p)
	}
	return sum / float64(len(pts))
}

// Drawable is anything sorted back to front before drawing.
type Drawable struct {
	Depth float64
	Draw  func()
}

// PainterOrder sorts drawables farthest first.
func PainterOrder(ds []Drawable) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Depth > ds[j].Depth
	})
}
