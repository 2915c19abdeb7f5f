package store

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/trajd/catz"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/types/record"
)

// ErrMalformed is matched by every load parse failure.
var ErrMalformed = errors.New("malformed input")

// ParseError locates a malformed row. Line is 1-based, counting the header.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %s=%q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

type Format string

const (
	FormatDelimited Format = "csv"
	FormatNDJSON    Format = "ndjson"
)

type LoadOptions struct {
	Format Format

	// Delimiter separates delimited fields. Zero means comma.
	Delimiter rune

	// Dedupe drops rows identical in content to one seen within DedupeCacheSize rows.
	Dedupe          bool
	DedupeCacheSize int
}

func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{
		Format:          FormatDelimited,
		Delimiter:       ',',
		DedupeCacheSize: params.DefaultDedupeCacheSize,
	}
}

// LoadFile loads records from path. Names ending in .gz are decompressed; a leading ~ is expanded.
func LoadFile(path string, opts *LoadOptions) (*Store, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	rc, err := catz.OpenReader(expanded)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	s, err := Load(rc, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Load reads every record from r. Any malformed row fails the whole load.
func Load(r io.Reader, opts *LoadOptions) (*Store, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}
	s := New()
	keep := func(record.Record) bool { return true }
	if opts.Dedupe {
		keep = newDedupeLRUFunc(opts.DedupeCacheSize)
	}
	add := func(line int, rec record.Record) {
		if !keep(rec) {
			s.duplicates++
			slog.Debug("Dropped duplicate record", "line", line, "photo", rec.PhotoID, "user", rec.UserID)
			return
		}
		s.Add(rec)
	}

	var err error
	switch opts.Format {
	case FormatNDJSON:
		err = loadNDJSON(r, add)
	case FormatDelimited, "":
		err = loadDelimited(r, opts.Delimiter, add)
	default:
		err = fmt.Errorf("unknown format %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded records", "records", humanize.Comma(int64(s.Len())),
		"users", humanize.Comma(int64(len(s.Users()))),
		"duplicates", s.duplicates)
	return s, nil
}

func loadDelimited(r io.Reader, delim rune, add func(int, record.Record)) error {
	if delim == 0 {
		delim = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return err
		}
		line, _ := cr.FieldPos(0)
		if header {
			header = false
			continue
		}
		rec, err := record.ParseFields(fields)
		if err != nil {
			return toParseError(line, err)
		}
		add(line, rec)
	}
}

func loadNDJSON(r io.Reader, add func(int, record.Record)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		rec, err := record.DecodeJSON(data)
		if err != nil {
			return toParseError(line, err)
		}
		add(line, rec)
	}
	return scanner.Err()
}

func toParseError(line int, err error) error {
	var fe *record.FieldError
	if errors.As(err, &fe) {
		return &ParseError{Line: line, Field: fe.Field, Value: fe.Value, Err: fe.Err}
	}
	return &ParseError{Line: line, Err: err}
}

// newDedupeLRUFunc returns a predicate that is false for records whose content
// hash is already in the cache.
func newDedupeLRUFunc(size int) func(record.Record) bool {
	if size <= 0 {
		size = params.DefaultDedupeCacheSize
	}
	dedupeCache := lru.New(size)
	return func(rec record.Record) bool {
		hash, err := hashstructure.Hash(rec, hashstructure.FormatV2, nil)
		if err != nil {
			return true
		}
		key := fmt.Sprintf("%d", hash)
		if _, ok := dedupeCache.Get(key); ok {
			return false
		}
		dedupeCache.Add(key, true)
		return true
	}
}
