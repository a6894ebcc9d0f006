// Package render draws a race session with Ebitengine: one chase-camera view
// per player, the HUD, and each player's engine sounds.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"split-racer/internal/player"
	"split-racer/internal/race"
	"split-racer/internal/scene"
	"split-racer/internal/sound"
	"split-racer/internal/track"
)

var ErrBinding = errors.New("render: unknown key name")

var (
	ColorSky    = color.RGBA{135, 206, 250, 255}
	ColorLivery = color.RGBA{255, 255, 255, 255} // Tint over a livery texture
	ColorCar    = color.RGBA{200, 30, 30, 255}   // Without a livery
	ColorTree   = color.RGBA{34, 139, 34, 255}
)

// tint picks the color a model is drawn with.
func tint(tex *ebiten.Image, fallback color.RGBA) color.RGBA {
	if tex != nil {
		return ColorLivery
	}
	return fallback
}

// Options configures a Game.
type Options struct {
	Width, Height int
	TPS           int

	Bindings   []player.Bindings // One per player
	Channels   []*sound.Channel  // One per player; missing means silent
	Cars       []*scene.Model    // The models the session drives, in player order
	TreeLivery image.Image       // May be nil
	Debug      bool              // Overlay frame rate and per-player state
	Logger     zerolog.Logger
}

// Game is the ebiten.Game for one race.
type Game struct {
	session  *race.Session
	opts     Options
	dt       time.Duration
	logger   zerolog.Logger
	keys     []map[string]ebiten.Key // Key name to key, per player
	channels []*sound.Channel

	ground    track.Mesh
	trees     []*scene.Model
	textures  map[*scene.Model]*ebiten.Image
	treeTex   *ebiten.Image
	minimap   *ebiten.Image
	viewports []image.Rectangle

	snap    race.Snapshot
	started bool
}

// ParseKey resolves a key name such as "W" or "ArrowUp".
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBinding, name)
	}
	return k, nil
}

// NewGame prepares everything Draw needs that does not change during a race.
func NewGame(s *race.Session, opts Options) (*Game, error) {
	n := len(s.Players())
	if len(opts.Bindings) < n {
		return nil, fmt.Errorf("render: %d players but %d key bindings", n, len(opts.Bindings))
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}

	g := &Game{
		session:   s,
		opts:      opts,
		dt:        time.Second / time.Duration(opts.TPS),
		logger:    opts.Logger,
		ground:    track.BuildMesh(s.Layout()),
		textures:  make(map[*scene.Model]*ebiten.Image),
		viewports: s.Viewports(),
		snap:      s.Snapshot(),
	}

	for i := 0; i < n; i++ {
		keys := make(map[string]ebiten.Key, player.ActionCount)
		for action, name := range opts.Bindings[i] {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("player %d %s: %w", i+1, action, err)
			}
			keys[name] = k
		}
		g.keys = append(g.keys, keys)

		ch := sound.Silent()
		if i < len(opts.Channels) && opts.Channels[i] != nil {
			ch = opts.Channels[i]
		}
		g.channels = append(g.channels, ch)
	}

	for _, t := range s.Trees() {
		m, err := scene.New("tree", scene.TreeMesh(), opts.TreeLivery)
		if err != nil {
			return nil, err
		}
		m.SetPosition(mgl64.Vec3{t.Site.X, 0, t.Site.Z})
		m.Scale(t.Scale)
		g.trees = append(g.trees, m)
	}
	if opts.TreeLivery != nil {
		g.treeTex = ebiten.NewImageFromImage(opts.TreeLivery)
	}
	g.minimap = newMinimap(g.ground)
	return g, nil
}

func (g *Game) pressed(i int) func(string) bool {
	return func(name string) bool {
		k, ok := g.keys[i][name]
		return ok && ebiten.IsKeyPressed(k)
	}
}

// Update advances the race by one tick.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !g.started {
		for _, ch := range g.channels {
			ch.PlayStart()
		}
		g.started = true
	}

	inputs := make([]player.Input, len(g.keys))
	for i := range g.keys {
		inputs[i] = g.opts.Bindings[i].Sample(g.pressed(i))
	}
	g.session.Step(inputs, g.dt)
	g.snap = g.session.Snapshot()

	for i, p := range g.snap.Players {
		if p.Cue != g.channels[i].Current() {
			g.logger.Trace().Int("player", i+1).Stringer("cue", p.Cue).Msg("cue changed")
		}
		g.channels[i].Set(p.Cue)
	}
	return nil
}

func (g *Game) texture(m *scene.Model) *ebiten.Image {
	if m.Freed() || m.Livery() == nil {
		return nil
	}
	if tex, ok := g.textures[m]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(m.Livery())
	g.textures[m] = tex
	return tex
}

// Draw renders every viewport from the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorSky)

	for i, p := range g.snap.Players {
		if i >= len(g.viewports) {
			break
		}
		vp := g.viewports[i]
		dst := screen.SubImage(vp).(*ebiten.Image)
		pose := p.Camera

		drawGround(dst, pose, vp, g.ground)

		var ds []Drawable
		for _, t := range g.trees {
			ds = append(ds, modelDrawables(dst, pose, vp, t, g.treeTex, tint(g.treeTex, ColorTree))...)
		}
		for _, car := range g.opts.Cars {
			if car.Freed() {
				continue
			}
			tex := g.texture(car)
			ds = append(ds, modelDrawables(dst, pose, vp, car, tex, tint(tex, ColorCar))...)
		}
		PainterOrder(ds)
		for _, d := range ds {
			if d.Depth > 0 {
				d.Draw()
			}
		}
	}

	drawHUD(screen, g.snap, g.viewports)
	positions := make([]mgl64.Vec3, len(g.snap.Players))
	for i, p := range g.snap.Players {
		positions[i] = p.Position
	}
	drawMinimap(screen, g.minimap, positions)
	if g.opts.Debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	msg := fmt.Sprintf("TPS: %.1f FPS: %.1f\nTick: %d\n", ebiten.ActualTPS(), ebiten.ActualFPS(), g.snap.Tick)
	for _, p := range g.snap.Players {
		msg += fmt.Sprintf("P%d speed %.3f yaw %.0f %s %s on-track %t finish %.1f\n",
			p.Index+1, p.Speed, p.Yaw, p.Block, p.Cue, p.OnTrack, p.ToFinish)
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, 50)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.opts.Width, g.opts.Height
}

// Close stops every player's sounds and frees the textures Game made.
func (g *Game) Close() error {
	var errs []error
	for _, ch := range g.channels {
		errs = append(errs, ch.Close())
	}
	for m, tex := range g.textures {
		tex.Deallocate()
		delete(g.textures, m)
	}
	if g.minimap != nil {
		g.minimap.Deallocate()
		g.minimap = nil
	}
	return errors.Join(errs...)
}
