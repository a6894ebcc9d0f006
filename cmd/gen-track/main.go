package main

import (
	"image/png"
	"os"

	"github.com/spf13/pflag"

	"split-racer/internal/logging"
	"split-racer/internal/track"
)

func main() {
	out := pflag.String("out", "assets/track_map.png", "output PNG path")
	scale := pflag.Float64("scale", 4, "pixels per world unit")
	pflag.Parse()

	log := logging.New(os.Stderr, "info", true)

	// 1. Build the ground from the fixed layout
	mesh := track.BuildMesh(track.Layout())

	// 2. Paint it top-down
	img := mesh.Rasterize(*scale)

	// 3. Write
	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("Creating map")
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatal().Err(err).Msg("Encoding map")
	}
	log.Info().Str("path", *out).Int("quads", len(mesh.Quads)).Int("size", img.Bounds().Dx()).Msg("Track map written")
}
