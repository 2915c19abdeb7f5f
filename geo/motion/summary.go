package motion

import (
	"github.com/montanaflynn/stats"
	"github.com/rotblauer/trajd/common"
	"github.com/rotblauer/trajd/types/trajectory"
)

// MinHighlightDistanceKm excludes trajectories that never really moved.
const MinHighlightDistanceKm = 1e-4

// Highlight names a notable trajectory.
type Highlight struct {
	Name  string
	Stats trajectory.Stats
}

// Highlights picks the trajectories with the most photos, the longest time,
// the longest distance and the highest speed.
// Single-photo and stationary trajectories are not eligible.
// Ties go to the earlier trajectory.
func Highlights(list []trajectory.Stats) []Highlight {
	eligible := make([]trajectory.Stats, 0, len(list))
	for _, s := range list {
		if s.Photos > 1 && s.DistanceKm > MinHighlightDistanceKm {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	pick := func(name string, value func(trajectory.Stats) float64) Highlight {
		best := eligible[0]
		for _, s := range eligible[1:] {
			if value(s) > value(best) {
				best = s
			}
		}
		return Highlight{Name: name, Stats: best}
	}
	return []Highlight{
		pick("most_photos", func(s trajectory.Stats) float64 { return float64(s.Photos) }),
		pick("longest_time", func(s trajectory.Stats) float64 { return s.ElapsedMinutes() }),
		pick("longest_distance", func(s trajectory.Stats) float64 { return s.DistanceKm }),
		pick("highest_speed", func(s trajectory.Stats) float64 { return s.SpeedKmh }),
	}
}

// Distribution describes one column of the stats table.
type Distribution struct {
	Mean   float64
	Median float64
	P90    float64
	Max    float64
}

type Summary struct {
	Trajectories int
	Photos       int
	DistanceKm   Distribution
	Minutes      Distribution
	SpeedKmh     Distribution
}

// Summarize describes a stats table. An empty table has a zero summary.
func Summarize(list []trajectory.Stats) Summary {
	sum := Summary{Trajectories: len(list)}
	if len(list) == 0 {
		return sum
	}
	distances := make(stats.Float64Data, 0, len(list))
	minutes := make(stats.Float64Data, 0, len(list))
	speeds := make(stats.Float64Data, 0, len(list))
	for _, s := range list {
		sum.Photos += s.Photos
		distances = append(distances, s.DistanceKm)
		minutes = append(minutes, s.ElapsedMinutes())
		speeds = append(speeds, s.SpeedKmh)
	}
	sum.DistanceKm = distribution(distances)
	sum.Minutes = distribution(minutes)
	sum.SpeedKmh = distribution(speeds)
	return sum
}

func distribution(data stats.Float64Data) Distribution {
	statsMustFloat := func(fn func() (float64, error)) float64 {
		out, err := fn()
		if err != nil {
			return 0
		}
		return common.DecimalToFixed(out, 3)
	}
	return Distribution{
		Mean:   statsMustFloat(data.Mean),
		Median: statsMustFloat(data.Median),
		P90: statsMustFloat(func() (float64, error) {
			return stats.Percentile(data, 90)
		}),
		Max: statsMustFloat(data.Max),
	}
}
