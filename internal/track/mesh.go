package track

import (
	"image/color"
	"math"
	"sort"

	"split-racer/internal/common"
)

// Layer orders ground polygons that share the same plane. Higher layers are
// drawn on top.
type Layer int

const (
	LayerFloor Layer = iota
	LayerSurface
	LayerMarking
)

const (
	StripeStep    = 5.0   // Length of one border stripe
	AccentEvery   = 10    // Red accent on stripes starting at a multiple of this
	BorderWidth   = 0.5   // Width of painted borders
	CurveStepDeg  = 10    // Angular resolution of curve strips
	FloorHalfSize = 100.0 // The grass floor spans [-100, 100] on both axes
)

// Ground colors
var (
	ColorFloor   = color.RGBA{0, 128, 0, 255}
	ColorAsphalt = color.RGBA{128, 128, 128, 255}
	ColorBorder  = color.RGBA{255, 255, 255, 255}
	ColorAccent  = color.RGBA{255, 0, 0, 255}
	ColorChecker = color.RGBA{0, 0, 0, 255}
)

// Quad is a flat convex polygon on the ground, corners in winding order.
type Quad struct {
	Corners [4]common.Vec2
	Layer   Layer
	Color   color.RGBA
}

// Mesh is the drawable ground of a track.
type Mesh struct {
	Quads []Quad
}

// rect builds an axis-aligned quad with one corner at (x, z), extending width
// along X and length along Z.
func rect(x, z, width, length float64, layer Layer, c color.RGBA) Quad {
	return Quad{
		Corners: [4]common.Vec2{
			{X: x, Z: z},
			{X: x + width, Z: z},
			{X: x + width, Z: z + length},
			{X: x, Z: z + length},
		},
		Layer: layer,
		Color: c,
	}
}

// BuildMesh emits the ground polygons of the given segments plus the floor.
// Quads come back sorted by layer, keeping emission order within a layer.
func BuildMesh(segments []Segment) Mesh {
	m := Mesh{}
	m.Quads = append(m.Quads, rect(-FloorHalfSize, -FloorHalfSize, 2*FloorHalfSize, 2*FloorHalfSize, LayerFloor, ColorFloor))

	for _, s := range segments {
		switch s.Kind {
		case SegmentStart:
			m.Quads = append(m.Quads, startLine(s)...)
		case SegmentStraight:
			m.Quads = append(m.Quads, straight(s)...)
		case SegmentCurve:
			m.Quads = append(m.Quads, curve(s)...)
		}
	}

	sort.SliceStable(m.Quads, func(i, j int) bool {
		return m.Quads[i].Layer < m.Quads[j].Layer
	})
	return m
}

func straight(s Segment) []Quad {
	quads := []Quad{rect(s.X, s.Z, s.Width, s.Length, LayerSurface, ColorAsphalt)}

	if !s.Rotated {
		// Borders run along Z on both X edges
		for i := 0.0; i < s.Length; i += StripeStep {
			seg := math.Min(StripeStep, s.Length-i)
			c := ColorBorder
			if int(i)%AccentEvery == 0 {
				c = ColorAccent
			}
			quads = append(quads,
				rect(s.X, s.Z+i, BorderWidth, seg, LayerMarking, c),
				rect(s.X+s.Width, s.Z+i, BorderWidth, seg, LayerMarking, c),
			)
		}
		return quads
	}

	// Borders run along X on both Z edges
	for i := 0.0; i < s.Width; i += StripeStep {
		seg := math.Min(StripeStep, s.Width-i)
		c := ColorBorder
		if int(i)%AccentEvery == 0 {
			c = ColorAccent
		}
		quads = append(quads,
			rect(s.X+i, s.Z, seg, BorderWidth, LayerMarking, c),
			rect(s.X+i, s.Z+s.Length, seg, BorderWidth, LayerMarking, c),
		)
	}
	return quads
}

// CurveStartAngle returns the angle (degrees) a curve in the given quadrant
// starts at.
func CurveStartAngle(quadrant int) int {
	switch quadrant {
	case 4:
		return 0
	case 3:
		return 90
	case 2:
		return 180
	case 1:
		return 270
	}
	return 0
}

// Arc returns ring strip quads around (cx, cz) between inner and outer radius.
func Arc(cx, cz, inner, outer float64, startDeg, sweepDeg int, layer Layer, c color.RGBA) []Quad {
	var quads []Quad
	point := func(r float64, deg int) common.Vec2 {
		theta := common.Radians(float64(deg))
		return common.Vec2{X: r*math.Cos(theta) + cx, Z: r*math.Sin(theta) + cz}
	}
	for a := startDeg; a < startDeg+sweepDeg; a += CurveStepDeg {
		b := min(a+CurveStepDeg, startDeg+sweepDeg)
		quads = append(quads, Quad{
			Corners: [4]common.Vec2{point(inner, a), point(outer, a), point(outer, b), point(inner, b)},
			Layer:   layer,
			Color:   c,
		})
	}
	return quads
}

func curve(s Segment) []Quad {
	start := CurveStartAngle(s.Quadrant)
	quads := Arc(s.X, s.Z, s.Radius, s.Radius+s.Length, start, s.Sweep, LayerSurface, ColorAsphalt)
	quads = append(quads, Arc(s.X, s.Z, s.Radius, s.Radius+BorderWidth, start, s.Sweep, LayerMarking, ColorAccent)...)
	quads = append(quads, Arc(s.X, s.Z, s.Radius+s.Length, s.Radius+s.Length+BorderWidth, start, s.Sweep, LayerMarking, ColorBorder)...)
	return quads
}

func startLine(s Segment) []Quad {
	var quads []Quad
	if !s.Rotated {
		for i := 0.0; i <= s.Width; i++ {
			quads = append(quads,
				rect(s.X+i, s.Z, BorderWidth, 1, LayerMarking, ColorBorder),
				rect(s.X+i+BorderWidth, s.Z, BorderWidth, 1, LayerMarking, ColorChecker),
				rect(s.X+i, s.Z+s.Length, BorderWidth, 1, LayerMarking, ColorChecker),
				rect(s.X+i+BorderWidth, s.Z+s.Length, BorderWidth, 1, LayerMarking, ColorBorder),
			)
		}
		return quads
	}
	for i := 0.0; i <= s.Length; i++ {
		quads = append(quads,
			rect(s.X, s.Z+i, BorderWidth, 1, LayerMarking, ColorBorder),
			rect(s.X, s.Z+i+BorderWidth, BorderWidth, 1, LayerMarking, ColorChecker),
			rect(s.X+s.Width, s.Z+i, BorderWidth, 1, LayerMarking, ColorChecker),
			rect(s.X+s.Width, s.Z+i+BorderWidth, BorderWidth, 1, LayerMarking, ColorBorder),
		)
	}
	return quads
}
