package conceptual

import "strconv"

// UserID identifies the owner of a record, e.g. a Flickr NSID.
type UserID string

func (u UserID) String() string {
	return string(u)
}

// RecordID is the position of a record in its store.
// It is assigned once at load, in source order, and never reused within a run.
type RecordID int

func (r RecordID) String() string {
	return strconv.Itoa(int(r))
}

// TrajectoryID is the surrogate key joining the photos and stats tables.
// It is the 0-based position of a trajectory in the final, filtered list.
type TrajectoryID int

func (t TrajectoryID) String() string {
	return strconv.Itoa(int(t))
}
