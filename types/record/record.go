// Package record defines the media capture events trajectories are made of.
package record

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/rotblauer/trajd/conceptual"
)

// Kind is the media marker of a record.
type Kind int

const (
	KindPhoto Kind = 0
	KindVideo Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindPhoto:
		return "photo"
	case KindVideo:
		return "video"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Valid() bool {
	return k == KindPhoto || k == KindVideo
}

// Record is one photo or video capture.
// Records are immutable once loaded; the store owns them for the run.
type Record struct {
	// ID is the record's position in its store. It is not part of the content.
	ID conceptual.RecordID `hash:"ignore"`

	// PhotoID is the source's opaque identifier. It is not enforced unique.
	PhotoID string
	UserID  conceptual.UserID

	// Time is a naive timestamp, held in UTC.
	Time time.Time `hash:"string"`

	// Point is [longitude, latitude] in plain degrees.
	Point orb.Point

	Accuracy int
	URL      string
	Kind     Kind
}

func (r Record) Lng() float64 {
	return r.Point.Lon()
}

func (r Record) Lat() float64 {
	return r.Point.Lat()
}

func (r Record) String() string {
	return fmt.Sprintf("record %d (photo=%s user=%s time=%s lng=%v lat=%v)",
		r.ID, r.PhotoID, r.UserID, FormatTime(r.Time), r.Lng(), r.Lat())
}
