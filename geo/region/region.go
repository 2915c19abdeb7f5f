// Package region keeps the trajectories that touch a region of interest.
package region

import (
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/types/trajectory"
)

// StrictlyInside reports whether pt lies in the open rectangle of box.
// Points on an edge are outside.
func StrictlyInside(box params.BoundingBox, pt orb.Point) bool {
	return box.MinLng < pt.Lon() && pt.Lon() < box.MaxLng &&
		box.MinLat < pt.Lat() && pt.Lat() < box.MaxLat
}

// AnyPointInside is the inclusion policy: one record strictly inside the box
// keeps the whole trajectory, however far the rest of it wanders.
func AnyPointInside(box params.BoundingBox, t trajectory.Trajectory, src trajectory.Source) bool {
	// No point can be inside when the closed bounds are disjoint.
	if !box.Bound().Intersects(t.LineString(src).Bound()) {
		return false
	}
	for _, id := range t.Records {
		if StrictlyInside(box, src.Get(id).Point) {
			return true
		}
	}
	return false
}

// Report counts why trajectories were dropped.
type Report struct {
	In            int
	Kept          int
	DroppedSize   int
	DroppedRegion int
}

// Filter returns the trajectories with at least minSize records and at least
// one record strictly inside box, in their original order.
// The size test runs first. Surviving trajectories are returned as-is.
func Filter(box params.BoundingBox, minSize int, list []trajectory.Trajectory, src trajectory.Source) ([]trajectory.Trajectory, Report, error) {
	report := Report{In: len(list)}
	if err := box.Validate(); err != nil {
		return nil, report, err
	}
	if minSize < 1 {
		return nil, report, fmt.Errorf("%w: min size must be >= 1, got %d", params.ErrInvalidConfig, minSize)
	}
	out := make([]trajectory.Trajectory, 0, len(list))
	for _, t := range list {
		if t.Len() < minSize {
			report.DroppedSize++
			slog.Debug("Dropped trajectory, too few records", "user", t.User, "records", t.Len(), "min", minSize)
			continue
		}
		if !AnyPointInside(box, t, src) {
			report.DroppedRegion++
			slog.Debug("Dropped trajectory, outside region", "user", t.User, "records", t.Len(), "box", box)
			continue
		}
		out = append(out, t)
	}
	report.Kept = len(out)
	slog.Info("Filtered trajectories", "in", report.In, "kept", report.Kept,
		"dropped.size", report.DroppedSize, "dropped.region", report.DroppedRegion)
	return out, report, nil
}
