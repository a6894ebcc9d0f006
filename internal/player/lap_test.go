package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

var (
	onLine  = mgl64.Vec3{0, 0, -6.25}
	offLine = mgl64.Vec3{0, 0, -20}
)

func TestStartCrossingDoesNotCount(t *testing.T) {
	m := &fakeModel{}
	c := newController(t, m, nil)

	m.pos = onLine
	assert.False(t, c.UpdateLap(1000))
	assert.Equal(t, 0, c.Progress().Laps)
}

func TestLapCountsOncePerCrossing(t *testing.T) {
	m := &fakeModel{pos: offLine}
	c := newController(t, m, nil)

	assert.False(t, c.UpdateLap(31000))
	m.pos = onLine
	assert.True(t, c.UpdateLap(31016))
	assert.Equal(t, 1, c.Progress().Laps)
	assert.Equal(t, int64(31016), c.Progress().LastLapMS)

	// Parked on the line: no more laps, even after the re-arm window
	for ms := int64(31032); ms < 100000; ms += 1000 {
		assert.False(t, c.UpdateLap(ms))
	}
	assert.Equal(t, 1, c.Progress().Laps)
}

func TestLapNeedsRearmWindow(t *testing.T) {
	m := &fakeModel{pos: offLine}
	c := newController(t, m, nil)

	c.UpdateLap(30001)
	m.pos = onLine
	assert.True(t, c.UpdateLap(30002))

	// Leave and come back quickly: not a lap
	m.pos = offLine
	c.UpdateLap(40000)
	m.pos = onLine
	assert.False(t, c.UpdateLap(45000))
	assert.Equal(t, 1, c.Progress().Laps)

	// Leave again and return after the window: second lap
	m.pos = offLine
	c.UpdateLap(60003)
	m.pos = onLine
	assert.True(t, c.UpdateLap(60010))
	assert.Equal(t, 2, c.Progress().Laps)
	assert.True(t, c.Progress().Counted)
}

func TestRearmWindowIsStrict(t *testing.T) {
	m := &fakeModel{pos: offLine}
	c := newController(t, m, nil)

	c.UpdateLap(30000)
	m.pos = onLine
	assert.False(t, c.UpdateLap(30000))
	m.pos = offLine
	c.UpdateLap(30001)
	m.pos = onLine
	assert.True(t, c.UpdateLap(30001))
}

func TestFinishBoxEdges(t *testing.T) {
	m := &fakeModel{pos: offLine}
	c := newController(t, m, nil)
	c.UpdateLap(40000)

	for _, p := range []mgl64.Vec3{{5, 0, -6.25}, {-5, 0, -6.25}, {0, 0, -6}, {0, 0, -6.5}} {
		m.pos = p
		assert.False(t, c.UpdateLap(40001), "edge %v", p)
	}
}

func TestCheckRank(t *testing.T) {
	tests := []struct {
		name         string
		laps         [2]int
		lastLap      [2]int64
		wantA, wantB string
	}{
		{"more laps wins", [2]int{3, 2}, [2]int64{5000, 1000}, "1st", "2nd"},
		{"fewer laps loses", [2]int{1, 2}, [2]int64{1000, 5000}, "2nd", "1st"},
		{"earlier lap wins tie", [2]int{2, 2}, [2]int64{1000, 2000}, "1st", "2nd"},
		{"later lap loses tie", [2]int{2, 2}, [2]int64{3000, 2000}, "2nd", "1st"},
		{"full tie", [2]int{2, 2}, [2]int64{1000, 1000}, "Tie", "Tie"},
		{"no laps yet", [2]int{0, 0}, [2]int64{0, 0}, "Tie", "Tie"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newController(t, &fakeModel{}, nil)
			b := newController(t, &fakeModel{}, nil)
			a.progress.Laps, b.progress.Laps = tt.laps[0], tt.laps[1]
			a.progress.LastLapMS, b.progress.LastLapMS = tt.lastLap[0], tt.lastLap[1]

			CheckRank(a, b)
			assert.Equal(t, tt.wantA, a.Progress().Rank.String())
			assert.Equal(t, tt.wantB, b.Progress().Rank.String())

			// Symmetric
			CheckRank(b, a)
			assert.Equal(t, tt.wantA, a.Progress().Rank.String())
			assert.Equal(t, tt.wantB, b.Progress().Rank.String())
		})
	}
}

func TestRankString(t *testing.T) {
	assert.Equal(t, "", RankNone.String())
	assert.Equal(t, "1st", RankFirst.String())
	assert.Equal(t, "2nd", RankSecond.String())
	assert.Equal(t, "Tie", RankTie.String())
}
