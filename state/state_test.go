package state

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotblauer/trajd/params"
)

func openTemp(t *testing.T) *State {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger", "runs.db"), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetList(t *testing.T) {
	s := openTemp(t)

	if _, err := s.Get("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("get on empty ledger: %v", err)
	}
	if runs, err := s.List(); err != nil || len(runs) != 0 {
		t.Errorf("list on empty ledger: %v %v", runs, err)
	}

	t0 := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	older := &RunRecord{ID: "a", Started: t0, Input: "in.csv", Counts: map[string]int64{"rows.stats": 4},
		Config: RunConfig{Trajectory: *params.DefaultTrajectoryConfig(), Precision: params.UnsetPrecision}}
	newer := &RunRecord{ID: "b", Started: t0.Add(time.Hour), Input: "in.csv"}
	for _, r := range []*RunRecord{older, newer} {
		if err := s.Put(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Put(&RunRecord{}); err == nil {
		t.Error("empty id should fail")
	}

	got, err := s.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Counts["rows.stats"] != 4 || !got.Started.Equal(t0) || got.Config.Trajectory != older.Config.Trajectory {
		t.Errorf("got %+v", got)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "b" || runs[1].ID != "a" {
		t.Errorf("list order: %v", runs)
	}
}

func TestReopenReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(&RunRecord{ID: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	ro, err := Open(path, true)
	if err != nil {
		t.Fatal(err)
	}
	defer ro.Close()
	if _, err := ro.Get("x"); err != nil {
		t.Error(err)
	}
	if err := ro.Put(&RunRecord{ID: "y"}); err == nil {
		t.Error("put on read-only ledger should fail")
	}
}

func TestCheckDeterminism(t *testing.T) {
	s := openTemp(t)
	base := &RunRecord{ID: "1", InputHash: 10, ConfigHash: 20, OutputHash: 30}
	if err := s.Put(base); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		rec  *RunRecord
		fail bool
	}{
		{"same output", &RunRecord{ID: "2", InputHash: 10, ConfigHash: 20, OutputHash: 30}, false},
		{"other input", &RunRecord{ID: "3", InputHash: 11, ConfigHash: 20, OutputHash: 99}, false},
		{"other config", &RunRecord{ID: "4", InputHash: 10, ConfigHash: 21, OutputHash: 99}, false},
		{"diverged", &RunRecord{ID: "5", InputHash: 10, ConfigHash: 20, OutputHash: 31}, true},
		{"itself", &RunRecord{ID: "1", InputHash: 10, ConfigHash: 20, OutputHash: 31}, false},
	}
	for _, c := range cases {
		err := s.CheckDeterminism(c.rec)
		if c.fail != errors.Is(err, ErrNondeterministic) {
			t.Errorf("%s: err = %v", c.name, err)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := RunConfig{Trajectory: *params.DefaultTrajectoryConfig(), Precision: 3}
	b := a
	ha, err := Fingerprint(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := Fingerprint(b)
	if ha != hb {
		t.Error("equal configs hash differently")
	}
	b.Trajectory.MinPhotosPerTrajectory = 2
	hb, _ = Fingerprint(b)
	if ha == hb {
		t.Error("different configs hash the same")
	}
}
