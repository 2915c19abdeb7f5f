package trajectory

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/rotblauer/trajd/conceptual"
	"github.com/rotblauer/trajd/types/record"
)

// Source is read access to a record arena.
type Source interface {
	Len() int
	Get(id conceptual.RecordID) record.Record
}

// Trajectory is one user's run of time-ordered records with no internal gap
// at or above the configured threshold. It is never empty once built.
type Trajectory struct {
	User    conceptual.UserID
	Records []conceptual.RecordID
}

func (t Trajectory) Len() int {
	return len(t.Records)
}

func (t Trajectory) First() conceptual.RecordID {
	return t.Records[0]
}

func (t Trajectory) Last() conceptual.RecordID {
	return t.Records[len(t.Records)-1]
}

// LineString returns the trajectory's points in order.
func (t Trajectory) LineString(src Source) orb.LineString {
	ls := make(orb.LineString, 0, len(t.Records))
	for _, id := range t.Records {
		ls = append(ls, src.Get(id).Point)
	}
	return ls
}

// Identified is a trajectory bound to its surrogate id.
// Both output tables are written from the same []Identified,
// so every id in one has rows in the other.
type Identified struct {
	ID conceptual.TrajectoryID
	Trajectory
}

// Number assigns surrogate ids by position.
func Number(list []Trajectory) []Identified {
	out := make([]Identified, len(list))
	for i, t := range list {
		out[i] = Identified{ID: conceptual.TrajectoryID(i), Trajectory: t}
	}
	return out
}

// Stats are the derived movement statistics of one trajectory.
type Stats struct {
	ID         conceptual.TrajectoryID
	User       conceptual.UserID
	Photos     int
	Start      time.Time
	DistanceKm float64
	Elapsed    time.Duration
	SpeedKmh   float64
}

// ElapsedMinutes is the Total_Time(min) column value.
func (s Stats) ElapsedMinutes() float64 {
	return s.Elapsed.Seconds() / 60
}

