package stream

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/trajd/common"
	"github.com/rotblauer/trajd/params"
)

// Line is one scanned line and its 1-based number.
type Line struct {
	N    int
	Text string
}

// ScanLines emits the lines of r. The errs channel receives the scan error,
// if any, after lines is closed; then it is closed too.
// Progress is logged every params.DefaultScanLogInterval.
func ScanLines(ctx context.Context, r io.Reader) (lines <-chan Line, errs <-chan error) {
	out := make(chan Line, params.DefaultBufferSize)
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		met := newTickScanMeter(params.DefaultScanLogInterval)
		defer met.stop()

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		n := 0
		func() {
			defer close(out)
			for scanner.Scan() {
				n++
				text := scanner.Text()
				met.mark(len(text) + 1)
				select {
				case <-ctx.Done():
					return
				case out <- Line{N: n, Text: text}:
				}
			}
		}()
		met.log()
		if err := scanner.Err(); err != nil {
			errCh <- err
		}
	}()
	return out, errCh
}

type tickScanMeter struct {
	interval   time.Duration
	started    time.Time
	ticker     *time.Ticker
	done       chan struct{}
	countMeter metrics.Meter
	sizeMeter  metrics.Meter
}

func newTickScanMeter(interval time.Duration) *tickScanMeter {
	// Enable metrics package.
	// Won't work without this global setting.
	metrics.Enabled = true

	m := &tickScanMeter{
		interval:   interval,
		started:    time.Now(),
		done:       make(chan struct{}),
		countMeter: metrics.NewMeter(),
		sizeMeter:  metrics.NewMeter(),
	}
	m.ticker = time.NewTicker(interval)
	go m.run()
	return m
}

func (m *tickScanMeter) mark(size int) {
	m.countMeter.Mark(1)
	m.sizeMeter.Mark(int64(size))
}

func (m *tickScanMeter) run() {
	for {
		select {
		case <-m.done:
			return
		case <-m.ticker.C:
			m.log()
		}
	}
}

func (m *tickScanMeter) log() {
	countSnap := m.countMeter.Snapshot()
	sizeSnap := m.sizeMeter.Snapshot()
	slog.Info("Read lines", "n", humanize.Comma(countSnap.Count()),
		"lps", common.DecimalToFixed(countSnap.Rate1(), 0),
		"bps", humanize.Bytes(uint64(sizeSnap.Rate1())),
		"total.bytes", humanize.Bytes(uint64(sizeSnap.Count())),
		"running", time.Since(m.started).Round(time.Second))
}

func (m *tickScanMeter) stop() {
	m.ticker.Stop()
	close(m.done)
	m.countMeter.Stop()
	m.sizeMeter.Stop()
}
