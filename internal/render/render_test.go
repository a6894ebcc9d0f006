package render

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"split-racer/internal/camera"
	"split-racer/internal/player"
	"split-racer/internal/race"
	"split-racer/internal/track"
)

func chasePose() camera.Pose {
	return camera.NewFollow(1).Update(mgl64.Vec3{}, mgl64.Vec3{0, 0.5, 0}, 0)
}

func TestProjectTargetLandsMidViewport(t *testing.T) {
	pose := chasePose()
	vp := image.Rect(100, 0, 200, 100)
	target := mgl64.Vec3{0, 0.5, 0}
	tri := []Corner{
		{World: target},
		{World: target.Add(mgl64.Vec3{0.001, 0, 0})},
		{World: target.Add(mgl64.Vec3{0, 0.001, 0})},
	}
	pts := Project(pose, vp, tri)
	require.Len(t, pts, 3)
	assert.InDelta(t, 150, pts[0].X, 1e-6)
	assert.InDelta(t, 50, pts[0].Y, 1e-6)
	// +X is to the right, +Y is up the screen
	assert.Greater(t, pts[1].X, pts[0].X)
	assert.Less(t, pts[2].Y, pts[0].Y)
}

func TestProjectBehindCamera(t *testing.T) {
	pose := chasePose()
	quad := []Corner{
		{World: mgl64.Vec3{-1, 0, 20}},
		{World: mgl64.Vec3{1, 0, 20}},
		{World: mgl64.Vec3{1, 0, 25}},
		{World: mgl64.Vec3{-1, 0, 25}},
	}
	assert.Nil(t, Project(pose, image.Rect(0, 0, 100, 100), quad))
}

func TestProjectClipsStraddlingPolygon(t *testing.T) {
	pose := chasePose()
	quad := []Corner{
		{World: mgl64.Vec3{-5, 0, -20}, U: 0, V: 0},
		{World: mgl64.Vec3{5, 0, -20}, U: 10, V: 0},
		{World: mgl64.Vec3{5, 0, 30}, U: 10, V: 10},
		{World: mgl64.Vec3{-5, 0, 30}, U: 0, V: 10},
	}
	pts := Project(pose, image.Rect(0, 0, 100, 100), quad)
	require.GreaterOrEqual(t, len(pts), 3)
	for _, p := range pts {
		assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
		assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
		assert.GreaterOrEqual(t, p.U, 0.0)
		assert.LessOrEqual(t, p.U, 10.0)
		assert.GreaterOrEqual(t, p.V, 0.0)
		assert.LessOrEqual(t, p.V, 10.0)
	}
}

func TestClipNear(t *testing.T) {
	in := []clipCorner{
		{c: mgl64.Vec4{0, 0, 0, 1}},
		{c: mgl64.Vec4{0, 0, 0, -1}, u: 2},
		{c: mgl64.Vec4{0, 0, 0, 1}, u: 4},
	}
	out := clipNear(in, 0.5)
	require.Len(t, out, 4)
	for _, c := range out {
		assert.GreaterOrEqual(t, c.c.W(), 0.5-1e-12)
	}
	assert.Empty(t, clipNear(nil, 0.5))
}

func TestPainterOrder(t *testing.T) {
	var order []int
	ds := []Drawable{
		{Depth: 5, Draw: func() { order = append(order, 5) }},
		{Depth: 20, Draw: func() { order = append(order, 20) }},
		{Depth: 1, Draw: func() { order = append(order, 1) }},
	}
	PainterOrder(ds)
	for _, d := range ds {
		d.Draw()
	}
	assert.Equal(t, []int{20, 5, 1}, order)
}

func TestFaceUV(t *testing.T) {
	assert.Equal(t, [][2]float64{{0, 8}, {4, 8}, {2, 0}}, faceUV(3, 4, 8))
	assert.Equal(t, [][2]float64{{0, 8}, {4, 8}, {4, 0}, {0, 0}}, faceUV(4, 4, 8))
	assert.Len(t, faceUV(5, 4, 8), 5)
}

func TestPlayerLabel(t *testing.T) {
	p := race.PlayerView{Index: 1, Laps: 3, Rank: player.RankFirst}
	assert.Equal(t, "Player 2 Lap: 3 1st", PlayerLabel(p, true))
	assert.Equal(t, "Player 2 Lap: 3", PlayerLabel(p, false))
	assert.Equal(t, "Player 1 Lap: 0", PlayerLabel(race.PlayerView{}, true))
	assert.Equal(t, "Timer: 1:01:234", TimerLabel(race.Snapshot{Timer: race.FormatTimer(61234)}))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("W")
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyW, k)

	k, err = ParseKey("ArrowUp")
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyArrowUp, k)

	_, err = ParseKey("Hyper")
	assert.ErrorIs(t, err, ErrBinding)
}

func TestDefaultBindingsParse(t *testing.T) {
	for i := 0; i < 2; i++ {
		for _, name := range player.DefaultBindings(i) {
			_, err := ParseKey(name)
			assert.NoError(t, err, name)
		}
	}
}

func TestGroundLayersStack(t *testing.T) {
	assert.Less(t, groundY(0), groundY(1))
	assert.Less(t, groundY(1), groundY(2))
}

func TestMinimapPoint(t *testing.T) {
	origin := minimapOrigin(image.Rect(0, 0, 1280, 720))
	assert.Equal(t, image.Pt(1110, 10), origin)

	x, y := MinimapPoint(mgl64.Vec3{0, 0, 0}, origin)
	assert.InDelta(t, 1190, x, 1e-9)
	assert.InDelta(t, 90, y, 1e-9)

	x, y = MinimapPoint(mgl64.Vec3{-track.FloorHalfSize, 3, -track.FloorHalfSize}, origin)
	assert.InDelta(t, 1110, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	// -Z is up the map
	_, ahead := MinimapPoint(mgl64.Vec3{0, 0, -20}, origin)
	assert.Less(t, ahead, y+80)
}

func TestMinimapCoversFloor(t *testing.T) {
	img := track.BuildMesh(track.Layout()).Rasterize(minimapScale())
	assert.Equal(t, int(minimapSize), img.Bounds().Dx())
	assert.Equal(t, int(minimapSize), img.Bounds().Dy())

	// The start grid sits on painted ground
	px, py := track.MapPixel(0, 0, minimapScale())
	assert.NotZero(t, img.RGBAAt(int(px), int(py)).A)
}
