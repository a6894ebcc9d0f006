package main

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"os"

	"github.com/spf13/pflag"
	"gocv.io/x/gocv"

	"split-racer/internal/collision"
	"split-racer/internal/logging"
	"split-racer/internal/track"
)

// Overlay colors
var (
	ColorPadded   = color.RGBA{255, 255, 0, 255} // Keep-out box around each segment
	ColorRegion   = color.RGBA{0, 255, 255, 255}
	ColorFinish   = color.RGBA{255, 0, 255, 255}
	ColorObstacle = color.RGBA{255, 0, 0, 255}
)

func toPixel(x, z, scale float64) image.Point {
	px, py := track.MapPixel(x, z, scale)
	return image.Pt(int(px), int(py))
}

func boxRect(b track.Box, scale float64) image.Rectangle {
	return image.Rectangle{Min: toPixel(b.MinX, b.MinZ, scale), Max: toPixel(b.MaxX, b.MaxZ, scale)}
}

func main() {
	out := pflag.String("out", "output_placement.png", "output image path")
	scale := pflag.Float64("scale", 4, "pixels per world unit")
	seed := pflag.Uint64("seed", 1, "placement seed")
	pflag.Parse()

	log := logging.New(os.Stderr, "info", true)

	// 1. Top-down map as a Mat
	img := track.BuildMesh(track.Layout()).Rasterize(*scale)
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		log.Fatal().Err(err).Msg("Converting map")
	}
	defer mat.Close()

	// 2. Regions and their keep-out padding
	placement := track.DefaultPlacement()
	regions := track.Regions()
	for i, r := range regions {
		gocv.Rectangle(&mat, boxRect(r.Box(placement.Padding), *scale), ColorPadded, 1)
		gocv.Rectangle(&mat, boxRect(r.Box(0), *scale), ColorRegion, 1)
		gocv.PutText(&mat, fmt.Sprint(i), toPixel(r.CenterX, r.CenterZ, *scale),
			gocv.FontHersheyPlain, 1, ColorRegion, 1)
	}
	gocv.Rectangle(&mat, boxRect(track.FinishLine, *scale), ColorFinish, 2)

	// 3. Obstacles for this seed, with their collision footprints
	rng := rand.New(rand.NewPCG(*seed, *seed>>1|1))
	sites := track.PlaceObstacles(rng, regions, placement)
	field := collision.NewField(sites, regions)
	for _, o := range field.Obstacles() {
		gocv.Circle(&mat, toPixel(o.X, o.Z, *scale), 2, ColorObstacle, -1)
		gocv.Rectangle(&mat, boxRect(o.Footprint(), *scale), ColorObstacle, 1)
	}

	// 4. Save
	if ok := gocv.IMWrite(*out, mat); !ok {
		log.Fatal().Str("path", *out).Msg("Writing overlay")
	}
	log.Info().Str("path", *out).Int("obstacles", len(sites)).Uint64("seed", *seed).Msg("Placement overlay written")
}
