package table

import (
	"bufio"
	"io"
	"strings"

	"github.com/rotblauer/trajd/geo/motion"
)

var HighlightsHeader = append([]string{"Highlight"}, StatsHeader...)

// WriteHighlights writes one stats row per highlight, prefixed by the highlight name.
func WriteHighlights(w io.Writer, list []motion.Highlight, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(HighlightsHeader, headerSep) + "\n"); err != nil {
		return err
	}
	for _, h := range list {
		if _, err := bw.WriteString(h.Name + sep + opts.statsRow(h.Stats) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
