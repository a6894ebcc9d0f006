package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"split-racer/internal/race"
)

// HUD settings
const (
	hudScale   = 2.0
	hudPadding = 10.0
	hudLine    = 16.0 // Line height of the bitmap font before scaling
)

var (
	ColorHUDText = color.RGBA{0, 0, 0, 255}
	ColorHUDBack = color.RGBA{255, 255, 255, 255}
	ColorDivider = color.RGBA{0, 0, 0, 255}
)

var face = text.NewGoXFace(bitmapfont.Face)

// PlayerLabel is the line shown at the top of a player's viewport.
func PlayerLabel(p race.PlayerView, withRank bool) string {
	label := fmt.Sprintf("Player %d Lap: %d", p.Index+1, p.Laps)
	if withRank && p.Rank.String() != "" {
		label += " " + p.Rank.String()
	}
	return label
}

// TimerLabel is the race clock line.
func TimerLabel(snap race.Snapshot) string {
	return "Timer: " + snap.Timer
}

// drawLabel draws s on a white panel with its top-left corner at (x, y).
func drawLabel(dst *ebiten.Image, s string, x, y float64) {
	w := text.Advance(s, face) * hudScale
	vector.FillRect(dst, float32(x-2), float32(y-2), float32(w+4), float32(hudLine*hudScale+4), ColorHUDBack, false)

	op := &text.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(ColorHUDText)
	text.Draw(dst, s, face, op)
}

// drawHUD draws each player's label in its viewport, the race timer centered
// at the top and a divider between split-screen halves.
func drawHUD(screen *ebiten.Image, snap race.Snapshot, viewports []image.Rectangle) {
	multi := len(viewports) > 1
	for i, p := range snap.Players {
		if i >= len(viewports) {
			break
		}
		vp := viewports[i]
		drawLabel(screen, PlayerLabel(p, multi), float64(vp.Min.X)+hudPadding, float64(vp.Min.Y)+hudPadding)
	}

	timer := TimerLabel(snap)
	sw := float64(screen.Bounds().Dx())
	tw := text.Advance(timer, face) * hudScale
	drawLabel(screen, timer, (sw-tw)/2, float64(screen.Bounds().Dy())-hudPadding-hudLine*hudScale)

	if multi {
		for _, vp := range viewports[1:] {
			x := float32(vp.Min.X)
			vector.StrokeLine(screen, x, float32(vp.Min.Y), x, float32(vp.Max.Y), 2, ColorDivider, false)
		}
	}
}
