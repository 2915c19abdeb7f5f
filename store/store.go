// Package store is the record arena for one run.
// Records are loaded once, in source order, and addressed by their position.
package store

import (
	"fmt"
	"slices"

	"github.com/rotblauer/trajd/conceptual"
	"github.com/rotblauer/trajd/types/record"
)

type Store struct {
	records    []record.Record
	duplicates int
}

func New() *Store {
	return &Store{records: make([]record.Record, 0)}
}

// Add appends a record, assigning and returning its ID.
func (s *Store) Add(r record.Record) conceptual.RecordID {
	r.ID = conceptual.RecordID(len(s.records))
	s.records = append(s.records, r)
	return r.ID
}

func (s *Store) Len() int {
	return len(s.records)
}

// Get returns the record by ID. It panics on an ID the store never issued.
func (s *Store) Get(id conceptual.RecordID) record.Record {
	if id < 0 || int(id) >= len(s.records) {
		panic(fmt.Sprintf("store: record id %d out of range [0,%d)", id, len(s.records)))
	}
	return s.records[id]
}

// Records returns a copy of all records in store order.
func (s *Store) Records() []record.Record {
	return slices.Clone(s.records)
}

// Users returns the distinct user ids, ascending.
func (s *Store) Users() []conceptual.UserID {
	seen := make(map[conceptual.UserID]struct{})
	out := make([]conceptual.UserID, 0)
	for _, r := range s.records {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		out = append(out, r.UserID)
	}
	slices.Sort(out)
	return out
}

// Duplicates is the number of rows dropped as duplicates at load.
func (s *Store) Duplicates() int {
	return s.duplicates
}
