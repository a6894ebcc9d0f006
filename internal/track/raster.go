package track

import (
	"image"
	"math"
)

// Contains reports whether (x, z) is inside the quad, edges included. The
// quad must be convex; either winding works.
func (q Quad) Contains(x, z float64) bool {
	var pos, neg bool
	for i := range q.Corners {
		a, b := q.Corners[i], q.Corners[(i+1)%len(q.Corners)]
		cross := (b.X-a.X)*(z-a.Z) - (b.Z-a.Z)*(x-a.X)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// MapPixel converts a world point to pixel coordinates of a map rendered by
// Rasterize at pxPerUnit. -Z is up.
func MapPixel(x, z, pxPerUnit float64) (px, py float64) {
	return (x + FloorHalfSize) * pxPerUnit, (z + FloorHalfSize) * pxPerUnit
}

// Rasterize paints the mesh top-down, pxPerUnit pixels per world unit, later
// quads over earlier ones.
func (m Mesh) Rasterize(pxPerUnit float64) *image.RGBA {
	size := int(math.Ceil(2 * FloorHalfSize * pxPerUnit))
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for _, q := range m.Quads {
		minX, minZ := math.Inf(1), math.Inf(1)
		maxX, maxZ := math.Inf(-1), math.Inf(-1)
		for _, c := range q.Corners {
			minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
			minZ, maxZ = math.Min(minZ, c.Z), math.Max(maxZ, c.Z)
		}
		x0, y0 := MapPixel(minX, minZ, pxPerUnit)
		x1, y1 := MapPixel(maxX, maxZ, pxPerUnit)

		r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))).
			Intersect(img.Bounds())
		for py := r.Min.Y; py < r.Max.Y; py++ {
			for px := r.Min.X; px < r.Max.X; px++ {
				// Sample the pixel center
				wx := (float64(px)+0.5)/pxPerUnit - FloorHalfSize
				wz := (float64(py)+0.5)/pxPerUnit - FloorHalfSize
				if q.Contains(wx, wz) {
					img.SetRGBA(px, py, q.Color)
				}
			}
		}
	}
	return img
}
