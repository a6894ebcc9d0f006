package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"split-racer/internal/track"
)

// Minimap settings
const (
	minimapSize   = 160.0 // Side of the map on screen, in pixels
	minimapMargin = 10.0
	minimapDot    = 4.0
)

var (
	ColorMinimapFrame = color.RGBA{0, 0, 0, 255}
	ColorPlayerDots   = []color.RGBA{
		{220, 20, 60, 255},
		{30, 90, 220, 255},
	}
)

// minimapScale is how many map pixels one world unit takes.
func minimapScale() float64 {
	return minimapSize / (2 * track.FloorHalfSize)
}

// MinimapPoint maps a world position onto a minimap whose top-left corner
// sits at origin.
func MinimapPoint(pos mgl64.Vec3, origin image.Point) (x, y float64) {
	px, py := track.MapPixel(pos.X(), pos.Z(), minimapScale())
	return float64(origin.X) + px, float64(origin.Y) + py
}

// minimapOrigin puts the map in the top-right corner of the screen.
func minimapOrigin(screen image.Rectangle) image.Point {
	return image.Pt(screen.Max.X-int(minimapSize+minimapMargin), screen.Min.Y+int(minimapMargin))
}

// newMinimap paints the ground once; the dots move on top of it each frame.
func newMinimap(ground track.Mesh) *ebiten.Image {
	return ebiten.NewImageFromImage(ground.Rasterize(minimapScale()))
}

func drawMinimap(screen, minimap *ebiten.Image, positions []mgl64.Vec3) {
	if minimap == nil {
		return
	}
	origin := minimapOrigin(screen.Bounds())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(origin.X), float64(origin.Y))
	screen.DrawImage(minimap, op)
	vector.StrokeRect(screen, float32(origin.X), float32(origin.Y), minimapSize, minimapSize, 2, ColorMinimapFrame, false)

	for i, pos := range positions {
		x, y := MinimapPoint(pos, origin)
		vector.FillCircle(screen, float32(x), float32(y), minimapDot, ColorPlayerDots[i%len(ColorPlayerDots)], true)
	}
}
