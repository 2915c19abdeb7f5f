package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rotblauer/trajd/conceptual"
	"github.com/rotblauer/trajd/types/record"
	"github.com/rotblauer/trajd/types/trajectory"
)

// ReadStats parses a stats table written by WriteStats.
// Elapsed time is recovered from minutes, so it may differ from the original
// duration by float rounding.
func ReadStats(r io.Reader) ([]trajectory.Stats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(StatsHeader)
	out := make([]trajectory.Stats, 0)
	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		s, err := parseStatsRow(row)
		if err != nil {
			return nil, fmt.Errorf("stats table line %d: %w", line, err)
		}
		out = append(out, s)
	}
}

func parseStatsRow(row []string) (trajectory.Stats, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return trajectory.Stats{}, err
	}
	photos, err := strconv.Atoi(row[2])
	if err != nil {
		return trajectory.Stats{}, err
	}
	start, err := record.ParseTime(row[3])
	if err != nil {
		return trajectory.Stats{}, err
	}
	floats := make([]float64, 3)
	for i := range floats {
		if floats[i], err = strconv.ParseFloat(row[4+i], 64); err != nil {
			return trajectory.Stats{}, err
		}
	}
	return trajectory.Stats{
		ID:         conceptual.TrajectoryID(id),
		User:       conceptual.UserID(row[1]),
		Photos:     photos,
		Start:      start,
		DistanceKm: floats[0],
		Elapsed:    time.Duration(floats[1] * float64(time.Minute)),
		SpeedKmh:   floats[2],
	}, nil
}
