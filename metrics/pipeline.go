// Package metrics counts what a pipeline run loaded, built, dropped and wrote,
// and times each stage.
package metrics

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	gethmetrics "github.com/ethereum/go-ethereum/metrics"
)

const (
	RecordsLoaded        = "records.loaded"
	RecordsDuplicates    = "records.duplicates"
	TrajectoriesBuilt    = "trajectories.built"
	TrajectoriesDropSize = "trajectories.dropped.size"
	TrajectoriesDropBox  = "trajectories.dropped.region"
	TrajectoriesKept     = "trajectories.kept"
	RowsPhotos           = "rows.photos"
	RowsStats            = "rows.stats"
	stagePrefix          = "stage."
)

// Counters lists every pipeline counter in reporting order.
var Counters = []string{
	RecordsLoaded,
	RecordsDuplicates,
	TrajectoriesBuilt,
	TrajectoriesDropSize,
	TrajectoriesDropBox,
	TrajectoriesKept,
	RowsPhotos,
	RowsStats,
}

// Pipeline is a per-run registry. Runs never share counters.
type Pipeline struct {
	reg gethmetrics.Registry
}

func NewPipeline() *Pipeline {
	// Won't work without this global setting.
	gethmetrics.Enabled = true
	p := &Pipeline{reg: gethmetrics.NewRegistry()}
	for _, name := range Counters {
		gethmetrics.GetOrRegisterCounter(name, p.reg)
	}
	return p
}

func (p *Pipeline) counter(name string) gethmetrics.Counter {
	return gethmetrics.GetOrRegisterCounter(name, p.reg)
}

// Add increments the named counter by n.
func (p *Pipeline) Add(name string, n int) {
	p.counter(name).Inc(int64(n))
}

func (p *Pipeline) Count(name string) int64 {
	return p.counter(name).Snapshot().Count()
}

// Counts returns a copy of all counters.
func (p *Pipeline) Counts() map[string]int64 {
	out := make(map[string]int64, len(Counters))
	for _, name := range Counters {
		out[name] = p.Count(name)
	}
	return out
}

// Stage starts the timer for a named stage. Call the returned func when the stage ends.
func (p *Pipeline) Stage(name string) (done func()) {
	t := gethmetrics.GetOrRegisterTimer(stagePrefix+name, p.reg)
	start := time.Now()
	return func() {
		t.UpdateSince(start)
	}
}

// Timings returns the accumulated duration of each stage that ran.
func (p *Pipeline) Timings() map[string]time.Duration {
	out := map[string]time.Duration{}
	p.reg.Each(func(name string, i interface{}) {
		t, ok := i.(gethmetrics.Timer)
		if !ok || !strings.HasPrefix(name, stagePrefix) {
			return
		}
		out[strings.TrimPrefix(name, stagePrefix)] = time.Duration(t.Snapshot().Sum())
	})
	return out
}

// Log emits one summary line for the run.
func (p *Pipeline) Log() {
	args := []any{}
	for _, name := range Counters {
		args = append(args, name, humanize.Comma(p.Count(name)))
	}
	timings := p.Timings()
	stages := make([]string, 0, len(timings))
	for name := range timings {
		stages = append(stages, name)
	}
	slices.Sort(stages)
	for _, name := range stages {
		args = append(args, stagePrefix+name, timings[name].Round(time.Millisecond))
	}
	slog.Info("Pipeline", args...)
}
