package record

import (
	"fmt"
	"time"
)

// TimeLayout is the record timestamp layout.
// A fractional second part (e.g. "2011-05-09 19:19:58.0") is accepted when parsing.
const TimeLayout = time.DateTime

// ParseTime parses YYYY-MM-DD HH:MM:SS[.ffffff] as a naive UTC time.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}

// FormatTime is the inverse of ParseTime.
// Microseconds are written only when non-zero: "2010-01-09 09:39:19" or "2010-01-09 09:39:19.500000".
func FormatTime(t time.Time) string {
	s := t.Format(TimeLayout)
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}
