package metrics

import (
	"testing"
	"time"
)

func TestPipelineCounts(t *testing.T) {
	p := NewPipeline()
	p.Add(RecordsLoaded, 13)
	p.Add(TrajectoriesBuilt, 6)
	p.Add(TrajectoriesBuilt, 1)

	counts := p.Counts()
	if len(counts) != len(Counters) {
		t.Errorf("counts = %v", counts)
	}
	if counts[RecordsLoaded] != 13 || counts[TrajectoriesBuilt] != 7 || counts[RowsStats] != 0 {
		t.Errorf("counts = %v", counts)
	}

	// Runs never share counters.
	if NewPipeline().Count(RecordsLoaded) != 0 {
		t.Error("fresh pipeline is not zeroed")
	}
}

func TestPipelineStages(t *testing.T) {
	p := NewPipeline()
	done := p.Stage("load")
	time.Sleep(2 * time.Millisecond)
	done()
	p.Stage("write")()

	timings := p.Timings()
	if len(timings) != 2 {
		t.Fatalf("timings = %v", timings)
	}
	if timings["load"] < 2*time.Millisecond {
		t.Errorf("load = %v", timings["load"])
	}
	if _, ok := timings["write"]; !ok {
		t.Error("missing write stage")
	}
	p.Log()
}
