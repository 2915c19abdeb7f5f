// Package table writes and reads the trajectory photos and stats tables.
//
// Both tables are written from one []trajectory.Identified, so every
// Trajectory_ID in the stats table has rows in the photos table and vice versa.
package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rotblauer/trajd/geo/motion"
	"github.com/rotblauer/trajd/types/trajectory"
)

// ErrEmptyTrajectory means a trajectory without records reached the writer.
var ErrEmptyTrajectory = errors.New("empty trajectory")

// Check verifies the list can be written: ids are their positions and no trajectory is empty.
func Check(list []trajectory.Identified) error {
	for i, t := range list {
		if t.Len() == 0 {
			return fmt.Errorf("%w: trajectory %d", ErrEmptyTrajectory, t.ID)
		}
		if int(t.ID) != i {
			return fmt.Errorf("trajectory id %d at position %d", t.ID, i)
		}
	}
	return nil
}

// WritePhotos writes one row per (trajectory, record) pair, records in trajectory order.
// It returns the number of data rows written.
func WritePhotos(w io.Writer, list []trajectory.Identified, src trajectory.Source) (int, error) {
	if err := Check(list); err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(PhotosHeader, headerSep) + "\n"); err != nil {
		return 0, err
	}
	n := 0
	for _, t := range list {
		for _, id := range t.Records {
			if _, err := bw.WriteString(photoRow(t, src.Get(id)) + "\n"); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, bw.Flush()
}

// WriteStats computes and writes one stats row per trajectory.
// It returns the computed stats.
func WriteStats(w io.Writer, list []trajectory.Identified, src trajectory.Source, opts *Options) ([]trajectory.Stats, error) {
	if err := Check(list); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(StatsHeader, headerSep) + "\n"); err != nil {
		return nil, err
	}
	out := make([]trajectory.Stats, 0, len(list))
	for _, t := range list {
		s := motion.Compute(t, src)
		if _, err := bw.WriteString(opts.statsRow(s) + "\n"); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, bw.Flush()
}
