// Package state keeps a ledger of pipeline runs in a bbolt database.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/trajd/params"
	"go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

var (
	ErrNoRun            = errors.New("no such run")
	ErrNondeterministic = errors.New("same input and config produced different output")
)

// RunConfig is everything that shapes the output of a run.
type RunConfig struct {
	Trajectory params.TrajectoryConfig
	Precision  int
	Dedupe     bool
}

type RunRecord struct {
	ID        string
	Started   time.Time
	Elapsed   time.Duration
	Input     string
	InputSize int64
	Config    RunConfig

	ConfigHash uint64
	InputHash  uint64
	OutputHash uint64

	Counts map[string]int64
}

// Fingerprint hashes any value the way records are hashed for deduplication.
func Fingerprint(v any) (uint64, error) {
	return hashstructure.Hash(v, hashstructure.FormatV2, nil)
}

type State struct {
	DB *bbolt.DB
}

// Open opens or creates the ledger at path.
// A second writer waits for the file lock until the timeout expires.
func Open(path string, readOnly bool) (*State, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	if !readOnly {
		if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
			return nil, err
		}
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		ReadOnly: readOnly,
		Timeout:  time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open run ledger %s: %w", path, err)
	}
	return &State{DB: db}, nil
}

func (s *State) Close() error {
	return s.DB.Close()
}

func (s *State) Put(rec *RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("put run: empty id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(runsBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(rec.ID), data)
	})
}

func (s *State) Get(id string) (*RunRecord, error) {
	rec := &RunRecord{}
	err := s.DB.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(runsBucket)
		if bucket == nil {
			return ErrNoRun
		}
		data := bucket.Get([]byte(id))
		if data == nil {
			return ErrNoRun
		}
		return json.NewDecoder(bytes.NewReader(data)).Decode(rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all runs, newest first.
func (s *State) List() ([]*RunRecord, error) {
	var out []*RunRecord
	err := s.DB.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(runsBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			rec := &RunRecord{}
			if err := json.Unmarshal(v, rec); err != nil {
				return fmt.Errorf("run %s: %w", k, err)
			}
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b *RunRecord) int {
		return b.Started.Compare(a.Started)
	})
	return out, nil
}

// CheckDeterminism compares rec against every other recorded run
// with the same input and config.
func (s *State) CheckDeterminism(rec *RunRecord) error {
	runs, err := s.List()
	if err != nil {
		return err
	}
	for _, other := range runs {
		if other.ID == rec.ID {
			continue
		}
		if other.InputHash != rec.InputHash || other.ConfigHash != rec.ConfigHash {
			continue
		}
		if other.OutputHash != rec.OutputHash {
			return fmt.Errorf("%w: run %s output %x, run %s output %x",
				ErrNondeterministic, rec.ID, rec.OutputHash, other.ID, other.OutputHash)
		}
	}
	return nil
}
