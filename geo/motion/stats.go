package motion

import (
	"fmt"

	"github.com/rotblauer/trajd/types/trajectory"
)

// Compute derives the movement statistics of t.
// Records are assumed time-ordered, as the segmenter leaves them.
func Compute(t trajectory.Identified, src trajectory.Source) trajectory.Stats {
	first, last := src.Get(t.First()), src.Get(t.Last())
	elapsed := last.Time.Sub(first.Time)
	if elapsed < 0 {
		panic(fmt.Sprintf("motion: trajectory %d ends %v before it starts", t.ID, -elapsed))
	}
	distance := PathKm(t.LineString(src))
	return trajectory.Stats{
		ID:         t.ID,
		User:       first.UserID,
		Photos:     t.Len(),
		Start:      first.Time,
		DistanceKm: distance,
		Elapsed:    elapsed,
		SpeedKmh:   AverageSpeedKmh(distance, elapsed),
	}
}

// ComputeAll is Compute for each trajectory, in order.
func ComputeAll(list []trajectory.Identified, src trajectory.Source) []trajectory.Stats {
	out := make([]trajectory.Stats, len(list))
	for i, t := range list {
		out[i] = Compute(t, src)
	}
	return out
}
