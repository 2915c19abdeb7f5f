// Package segment splits a record history into trajectories.
//
// Records are partitioned by user, each user's records are ordered by time,
// and a trajectory boundary is placed wherever two consecutive records are
// at least the configured gap apart. Users are visited in ascending id order,
// never map order, so identical input always yields identical output.
package segment

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/rotblauer/trajd/conceptual"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/types/record"
	"github.com/rotblauer/trajd/types/trajectory"
)

// State accumulates one user's time-ordered records into trajectories.
type State struct {
	User     conceptual.UserID
	Interval time.Duration
	Records  []conceptual.RecordID // the open trajectory
	TimeLast time.Time
	done     []trajectory.Trajectory
}

func NewState(user conceptual.UserID, interval time.Duration) *State {
	return &State{
		User:     user,
		Interval: interval,
		Records:  make([]conceptual.RecordID, 0),
		done:     make([]trajectory.Trajectory, 0),
	}
}

// Add appends a record to the open trajectory, first closing it if the record is discontinuous.
// Records must arrive in non-decreasing time order and belong to the state's user;
// anything else is a caller bug and panics.
func (s *State) Add(r record.Record) {
	if r.UserID != s.User {
		panic(fmt.Sprintf("segment: %s added to state for user %q", r, s.User))
	}
	if s.IsDiscontinuous(r) {
		s.Flush()
	}
	s.Records = append(s.Records, r.ID)
}

// IsDiscontinuous reports whether r starts a new trajectory.
func (s *State) IsDiscontinuous(r record.Record) bool {
	current := r.Time
	if len(s.Records) == 0 {
		s.TimeLast = current
		return false
	}
	span := current.Sub(s.TimeLast)
	if span < 0 {
		panic(fmt.Sprintf("segment: %s is %v before the previous record of user %q", r, -span, s.User))
	}
	s.TimeLast = current
	return span >= s.Interval
}

// Flush closes the open trajectory, if any.
func (s *State) Flush() {
	if len(s.Records) > 0 {
		s.done = append(s.done, trajectory.Trajectory{User: s.User, Records: s.Records})
	}
	s.Records = make([]conceptual.RecordID, 0)
}

// Trajectories flushes and returns every trajectory built so far, in order.
func (s *State) Trajectories() []trajectory.Trajectory {
	s.Flush()
	return s.done
}

// Partition groups record ids by user. Each group keeps source order.
// Every record lands in exactly one group.
func Partition(src trajectory.Source) map[conceptual.UserID][]conceptual.RecordID {
	groups := make(map[conceptual.UserID][]conceptual.RecordID)
	for i := 0; i < src.Len(); i++ {
		id := conceptual.RecordID(i)
		u := src.Get(id).UserID
		groups[u] = append(groups[u], id)
	}
	return groups
}

// SortedUsers returns the partition's users in ascending lexicographic order.
func SortedUsers(groups map[conceptual.UserID][]conceptual.RecordID) []conceptual.UserID {
	users := make([]conceptual.UserID, 0, len(groups))
	for u := range groups {
		users = append(users, u)
	}
	slices.Sort(users)
	return users
}

// SortByTime orders ids by record time, in place.
// Equal times keep their relative order.
func SortByTime(src trajectory.Source, ids []conceptual.RecordID) {
	slices.SortStableFunc(ids, func(a, b conceptual.RecordID) int {
		return src.Get(a).Time.Compare(src.Get(b).Time)
	})
}

// Build segments every record in src into trajectories.
// The result is ordered by user id, then by each trajectory's first record time.
func Build(src trajectory.Source, gap time.Duration) ([]trajectory.Trajectory, error) {
	if gap <= 0 {
		return nil, fmt.Errorf("%w: time gap must be positive, got %v", params.ErrInvalidConfig, gap)
	}
	groups := Partition(src)
	users := SortedUsers(groups)

	out := make([]trajectory.Trajectory, 0, len(users))
	for _, u := range users {
		ids := groups[u]
		SortByTime(src, ids)
		s := NewState(u, gap)
		for _, id := range ids {
			s.Add(src.Get(id))
		}
		out = append(out, s.Trajectories()...)
	}
	slog.Info("Built trajectories", "trajectories", len(out), "users", len(users), "gap", gap)
	return out, nil
}
