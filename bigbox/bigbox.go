// Package bigbox cuts a raw YFCC100M-style photo dump down to the record
// format, keeping rows inside a bounding box and a date-taken window.
//
// Raw dumps are dirty: rows that are short or unparsable are skipped and
// counted, never fatal.
package bigbox

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotblauer/trajd/geo/region"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/stream"
	"github.com/rotblauer/trajd/types/record"
)

// Dump columns, 0-based, tab-separated.
const (
	ColPhotoID   = 0
	ColUserID    = 1
	ColDateTaken = 3
	ColLongitude = 10
	ColLatitude  = 11
	ColAccuracy  = 12
	ColPageURL   = 13
	ColMarker    = 22
)

// recordColumns maps record fields, in record.Fields order, to dump columns.
var recordColumns = []int{
	ColPhotoID, ColUserID, ColDateTaken, ColLongitude,
	ColLatitude, ColAccuracy, ColPageURL, ColMarker,
}

// Verdict is the fate of one dump line.
type Verdict int

const (
	Kept Verdict = iota
	Short
	Malformed
	OutsideBox
	OutsideTime
)

type selection struct {
	line    int
	fields  []string
	verdict Verdict
}

// Report counts the fate of every non-blank line.
type Report struct {
	Lines       int
	Kept        int
	Short       int
	Malformed   int
	OutsideBox  int
	OutsideTime int
	Duplicates  int
}

// Select decides whether one dump line becomes a record row.
// It returns the record fields, trimmed, in record.Fields order.
func Select(cfg *params.BigBoxConfig, text string) ([]string, Verdict) {
	cols := strings.Split(text, "\t")
	if len(cols) <= ColMarker {
		return nil, Short
	}
	fields := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		fields[i] = strings.TrimSpace(cols[c])
	}
	rec, err := record.ParseFields(fields)
	if err != nil {
		return nil, Malformed
	}
	if !region.StrictlyInside(cfg.Box, rec.Point) {
		return nil, OutsideBox
	}
	if rec.Time.Before(cfg.TimeMin) || rec.Time.After(cfg.TimeMax) {
		return nil, OutsideTime
	}
	return fields, Kept
}

// Filter streams the dump in r to w as a record source with a header row.
func Filter(ctx context.Context, r io.Reader, w io.Writer, cfg *params.BigBoxConfig) (Report, error) {
	report := Report{}
	if cfg == nil {
		cfg = params.DefaultBigBoxConfig()
	}
	if err := cfg.Validate(); err != nil {
		return report, err
	}

	lines, scanErrs := stream.ScanLines(ctx, r)
	nonBlank := stream.Filter(ctx, func(l stream.Line) bool {
		return strings.TrimSpace(l.Text) != ""
	}, lines)
	selections := stream.Transform(ctx, func(l stream.Line) selection {
		fields, v := Select(cfg, l.Text)
		return selection{line: l.N, fields: fields, verdict: v}
	}, nonBlank)

	seen := func(string) bool { return false }
	if cfg.DedupeWindow > 0 {
		cache, err := lru.New[string, struct{}](cfg.DedupeWindow)
		if err != nil {
			return report, err
		}
		seen = func(photoID string) bool {
			found, _ := cache.ContainsOrAdd(photoID, struct{}{})
			return found
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(record.Header, ", ") + "\n"); err != nil {
		return report, err
	}
	var writeErr error
	for sel := range selections {
		report.Lines++
		switch sel.verdict {
		case Short:
			report.Short++
			slog.Debug("Skipped short line", "line", sel.line)
		case Malformed:
			report.Malformed++
			slog.Debug("Skipped malformed line", "line", sel.line)
		case OutsideBox:
			report.OutsideBox++
		case OutsideTime:
			report.OutsideTime++
		case Kept:
			if seen(sel.fields[0]) {
				report.Duplicates++
				slog.Debug("Skipped duplicate photo", "line", sel.line, "photo", sel.fields[0])
				continue
			}
			report.Kept++
			if writeErr == nil {
				_, writeErr = bw.WriteString(strings.Join(sel.fields, ",") + "\n")
			}
		}
	}
	if writeErr == nil {
		writeErr = bw.Flush()
	}
	err := errors.Join(writeErr, <-scanErrs, ctx.Err())
	slog.Info("Bigbox filtered", "lines", humanize.Comma(int64(report.Lines)),
		"kept", humanize.Comma(int64(report.Kept)),
		"outside.box", report.OutsideBox, "outside.time", report.OutsideTime,
		"short", report.Short, "malformed", report.Malformed, "duplicates", report.Duplicates)
	return report, err
}
