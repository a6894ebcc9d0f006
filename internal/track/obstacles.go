package track

import (
	"math/rand/v2"

	"split-racer/internal/common"
)

// Placement controls how obstacle sites are scattered around the track.
type Placement struct {
	Bounds  Box     // Area samples are drawn from
	Padding float64 // Clearance kept around every region
	Samples int     // Sample budget
	Max     int     // Stop once this many sites are accepted
}

// DefaultPlacement scatters up to 20 sites from 100 samples over the floor,
// keeping 5 units clear of the track.
func DefaultPlacement() Placement {
	return Placement{
		Bounds:  Box{MinX: -FloorHalfSize, MinZ: -FloorHalfSize, MaxX: FloorHalfSize, MaxZ: FloorHalfSize},
		Padding: 5,
		Samples: 100,
		Max:     20,
	}
}

// PlaceObstacles draws uniform samples inside p.Bounds and keeps the ones that
// fall outside every padded region. Running out of samples before p.Max sites
// are found just yields fewer sites.
func PlaceObstacles(rng *rand.Rand, regions []Region, p Placement) []common.Vec2 {
	sites := make([]common.Vec2, 0, p.Max)
	for i := 0; i < p.Samples && len(sites) < p.Max; i++ {
		x := p.Bounds.MinX + rng.Float64()*(p.Bounds.MaxX-p.Bounds.MinX)
		z := p.Bounds.MinZ + rng.Float64()*(p.Bounds.MaxZ-p.Bounds.MinZ)
		if InsideAny(regions, x, z, p.Padding) {
			continue
		}
		sites = append(sites, common.Vec2{X: x, Z: z})
	}
	return sites
}
