// Package collision answers containment queries between a moving car and the
// static things around it: trees and the track footprint.
package collision

import (
	"split-racer/internal/common"
	"split-racer/internal/track"
)

// TreeRadius is the half size of a tree's square footprint.
const TreeRadius = 2.0

// Obstacle is a static blocker with a square footprint of side 2*Radius.
type Obstacle struct {
	X, Z   float64
	Radius float64
}

// Footprint returns the obstacle's blocking square.
func (o Obstacle) Footprint() track.Box {
	return track.Box{
		MinX: o.X - o.Radius,
		MinZ: o.Z - o.Radius,
		MaxX: o.X + o.Radius,
		MaxZ: o.Z + o.Radius,
	}
}

// Field is the read-only set of obstacles and track regions shared by every
// car in a race.
type Field struct {
	obstacles []Obstacle
	regions   []track.Region
}

// NewField builds a field with one tree per site.
func NewField(sites []common.Vec2, regions []track.Region) *Field {
	obstacles := make([]Obstacle, len(sites))
	for i, s := range sites {
		obstacles[i] = Obstacle{X: s.X, Z: s.Z, Radius: TreeRadius}
	}
	return &Field{
		obstacles: obstacles,
		regions:   append([]track.Region(nil), regions...),
	}
}

// Obstacles returns a copy of the field's obstacles.
func (f *Field) Obstacles() []Obstacle {
	return append([]Obstacle(nil), f.obstacles...)
}

// WouldCollide reports whether moving from pos by delta ends strictly inside
// any obstacle footprint.
func (f *Field) WouldCollide(pos, delta common.Vec2) bool {
	next := pos.Add(delta)
	for _, o := range f.obstacles {
		if o.Footprint().ContainsOpen(next.X, next.Z) {
			return true
		}
	}
	return false
}

// OnTrack reports whether a point lies on any track region.
func (f *Field) OnTrack(p common.Vec2) bool {
	return track.InsideAny(f.regions, p.X, p.Z, 0)
}
