package player

import "split-racer/internal/track"

// LapRearmMS is how long after a counted lap the finish line starts counting
// again.
const LapRearmMS = 30000

// Progress is a player's standing in the race.
type Progress struct {
	Laps      int
	Counted   bool  // The current lap has been counted; the line is disarmed
	LastLapMS int64 // Race time the last lap was counted at
	Rank      Rank

	leftLine bool // Car has been outside the finish box since the last count
}

func newProgress() Progress {
	// The grid sits just behind the line, so the first crossing after the
	// start must not count.
	return Progress{Counted: true}
}

// UpdateLap counts a lap when the car is in the finish box and the line is
// armed. The line re-arms once LapRearmMS has passed since the last count and
// the car has left the box. Reports whether a lap was counted.
func (c *Controller) UpdateLap(raceMS int64) bool {
	p := c.Ground()
	inside := track.FinishLine.ContainsOpen(p.X, p.Z)
	if !inside {
		c.progress.leftLine = true
	}

	if c.progress.Counted && c.progress.leftLine && raceMS-c.progress.LastLapMS > LapRearmMS {
		c.progress.Counted = false
	}

	if inside && !c.progress.Counted {
		c.progress.Laps++
		c.progress.Counted = true
		c.progress.LastLapMS = raceMS
		c.progress.leftLine = false
		return true
	}
	return false
}

// Rank is a player's place relative to the other player.
type Rank int

const (
	RankNone Rank = iota
	RankFirst
	RankSecond
	RankTie
)

func (r Rank) String() string {
	switch r {
	case RankFirst:
		return "1st"
	case RankSecond:
		return "2nd"
	case RankTie:
		return "Tie"
	}
	return ""
}

// Compare orders two standings: more laps is ahead, and with equal laps the
// one that completed its last lap earlier is ahead. It returns -1 when a is
// ahead, 1 when b is ahead and 0 for a tie.
func Compare(a, b Progress) int {
	switch {
	case a.Laps > b.Laps:
		return -1
	case a.Laps < b.Laps:
		return 1
	case a.LastLapMS < b.LastLapMS:
		return -1
	case a.LastLapMS > b.LastLapMS:
		return 1
	}
	return 0
}

// CheckRank sets the ranks of two players from their standings.
func CheckRank(a, b *Controller) {
	switch Compare(a.progress, b.progress) {
	case -1:
		a.progress.Rank, b.progress.Rank = RankFirst, RankSecond
	case 1:
		a.progress.Rank, b.progress.Rank = RankSecond, RankFirst
	default:
		a.progress.Rank, b.progress.Rank = RankTie, RankTie
	}
}
