package table

import (
	"strconv"
	"strings"

	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/types/record"
	"github.com/rotblauer/trajd/types/trajectory"
	"github.com/shopspring/decimal"
)

var PhotosHeader = []string{
	"Trajectory_ID", "Photo_ID", "User_ID", "Timestamp", "Longitude",
	"Latitude", "Accuracy", "Marker", "URL",
}

var StatsHeader = []string{
	"Trajectory_ID", "User_ID", "#Photo", "Start_Time",
	"Travel_Distance(km)", "Total_Time(min)", "Average_Speed(km/h)",
}

// headerSep is the separator used in header lines only.
// Readers should skip leading spaces.
const headerSep = ", "

const sep = ","

type Options struct {
	// Precision rounds the stats table's float columns to this many
	// decimal places. params.UnsetPrecision leaves them unrounded.
	Precision int
}

func DefaultOptions() *Options {
	return &Options{Precision: params.UnsetPrecision}
}

// formatFloat writes the shortest decimal that round-trips f, never in exponent form.
func formatFloat(f float64) string {
	return decimal.NewFromFloat(f).String()
}

func (o *Options) formatStat(f float64) string {
	if o == nil || o.Precision < 0 {
		return formatFloat(f)
	}
	return decimal.NewFromFloat(f).StringFixed(int32(o.Precision))
}

func photoRow(id trajectory.Identified, r record.Record) string {
	return strings.Join([]string{
		id.ID.String(),
		r.PhotoID,
		r.UserID.String(),
		record.FormatTime(r.Time),
		formatFloat(r.Lng()),
		formatFloat(r.Lat()),
		strconv.Itoa(r.Accuracy),
		strconv.Itoa(int(r.Kind)),
		r.URL,
	}, sep)
}

func (o *Options) statsRow(s trajectory.Stats) string {
	return strings.Join([]string{
		s.ID.String(),
		s.User.String(),
		strconv.Itoa(s.Photos),
		record.FormatTime(s.Start),
		o.formatStat(s.DistanceKm),
		o.formatStat(s.ElapsedMinutes()),
		o.formatStat(s.SpeedKmh),
	}, sep)
}
