package track

import "split-racer/internal/common"

// SegmentKind is the type of piece a track segment is built from.
type SegmentKind int

const (
	SegmentStart SegmentKind = iota
	SegmentStraight
	SegmentCurve
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentStart:
		return "start"
	case SegmentStraight:
		return "straight"
	case SegmentCurve:
		return "curve"
	}
	return "unknown"
}

// Region is the axis-aligned footprint of one track segment on the ground
// plane. Width runs along X and Height along Z.
type Region struct {
	CenterX, CenterZ float64
	Width, Height    float64
}

// Box returns the region's bounds grown by padding on every side.
func (r Region) Box(padding float64) Box {
	return Box{
		MinX: r.CenterX - r.Width/2 - padding,
		MinZ: r.CenterZ - r.Height/2 - padding,
		MaxX: r.CenterX + r.Width/2 + padding,
		MaxZ: r.CenterZ + r.Height/2 + padding,
	}
}

// Box is a closed axis-aligned rectangle on the ground plane.
type Box struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// Contains reports whether (x, z) lies inside the box, edges included.
func (b Box) Contains(x, z float64) bool {
	return b.MinX <= x && x <= b.MaxX && b.MinZ <= z && z <= b.MaxZ
}

// Center returns the middle of the box.
func (b Box) Center() common.Vec2 {
	return common.Vec2{X: (b.MinX + b.MaxX) / 2, Z: (b.MinZ + b.MaxZ) / 2}
}

// ContainsOpen reports whether (x, z) lies strictly inside the box.
func (b Box) ContainsOpen(x, z float64) bool {
	return b.MinX < x && x < b.MaxX && b.MinZ < z && z < b.MaxZ
}

// Segment is one piece of the racetrack together with its footprint.
type Segment struct {
	Kind SegmentKind

	// Origin of the piece. For curves this is the arc center.
	X, Z float64

	Length  float64 // Along Z for unrotated straights, ring width for curves
	Width   float64 // Along X for unrotated straights
	Rotated bool    // Straights and start line laid out across X instead of Z

	Radius   float64 // Inner radius of a curve
	Sweep    int     // Degrees covered by a curve (90 or 180)
	Quadrant int     // 1..4, picks the curve's starting angle

	Footprint Region
}

// FinishLine is the box a car must enter to complete a lap.
var FinishLine = Box{MinX: -5, MinZ: -6.5, MaxX: 5, MaxZ: -6}

// layout is the closed loop in drive order.
var layout = []Segment{
	{Kind: SegmentStart, X: -5, Z: -6, Length: 1, Width: 9,
		Footprint: Region{-5, -6, 1, 9}},
	{Kind: SegmentStraight, X: -5, Z: -30, Length: 30, Width: 10,
		Footprint: Region{-5, -30, 30, 10}},
	{Kind: SegmentCurve, X: 6.5, Z: -30, Length: 10, Radius: 1, Sweep: 180, Quadrant: 2,
		Footprint: Region{6.5, -30, 10, 2}},
	{Kind: SegmentCurve, X: 19, Z: -30, Length: 10, Radius: 1, Sweep: 180, Quadrant: 4,
		Footprint: Region{19, -30, 10, 4}},
	{Kind: SegmentStraight, X: 20, Z: -60, Length: 30, Width: 10,
		Footprint: Region{20, -60, 30, 10}},
	{Kind: SegmentCurve, X: 31.5, Z: -60, Length: 10, Radius: 1, Sweep: 180, Quadrant: 2,
		Footprint: Region{31.5, -60, 10, 2}},
	{Kind: SegmentCurve, X: 44, Z: -60, Length: 10, Radius: 1, Sweep: 90, Quadrant: 3,
		Footprint: Region{44, -60, 10, 3}},
	{Kind: SegmentStraight, X: 44, Z: -59, Length: 10, Width: 20, Rotated: true,
		Footprint: Region{44, -59, 10, 20}},
	{Kind: SegmentCurve, X: 64, Z: -47.5, Length: 10, Radius: 1, Sweep: 90, Quadrant: 1,
		Footprint: Region{64, -47.5, 10, 1}},
	{Kind: SegmentStraight, X: 65, Z: -47.5, Length: 50, Width: 10,
		Footprint: Region{65, -47.5, 50, 10}},
	{Kind: SegmentCurve, X: 64, Z: 2.5, Length: 10, Radius: 1, Sweep: 90, Quadrant: 4,
		Footprint: Region{64, 2.5, 10, 4}},
	{Kind: SegmentStraight, X: 61.5, Z: 3.5, Length: 10, Width: 2.5, Rotated: true,
		Footprint: Region{61.5, 3.5, 10, 2.5}},
	{Kind: SegmentStraight, X: 6.5, Z: 3.5, Length: 10, Width: 55, Rotated: true,
		Footprint: Region{6.5, 3.5, 10, 55}},
	{Kind: SegmentCurve, X: 6.5, Z: 2.5, Length: 10, Radius: 1, Sweep: 90, Quadrant: 3,
		Footprint: Region{6.5, 2.5, 10, 3}},
	{Kind: SegmentStraight, X: -5, Z: 0, Length: 2.5, Width: 10,
		Footprint: Region{-5, 0, 2.5, 10}},
}

// Layout returns a copy of the fixed racetrack.
func Layout() []Segment {
	out := make([]Segment, len(layout))
	copy(out, layout)
	return out
}

// Regions returns the footprints of the racetrack in drive order.
func Regions() []Region {
	out := make([]Region, len(layout))
	for i, s := range layout {
		out[i] = s.Footprint
	}
	return out
}

// InsideAny reports whether (x, z) falls inside any region grown by padding.
func InsideAny(regions []Region, x, z, padding float64) bool {
	for _, r := range regions {
		if r.Box(padding).Contains(x, z) {
			return true
		}
	}
	return false
}
