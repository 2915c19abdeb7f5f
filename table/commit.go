package table

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rotblauer/trajd/catz"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/types/trajectory"
)

// Result describes a committed pair of tables.
type Result struct {
	PhotosPath string
	StatsPath  string
	PhotoRows  int
	Stats      []trajectory.Stats
}

// pending is an output written to a temporary sibling of its target.
type pending struct {
	target string
	tmp    string
}

func createPending(target string) (*pending, io.WriteCloser, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return nil, nil, err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, nil, err
	}
	p := &pending{target: target, tmp: f.Name()}
	if !catz.IsGZ(target) {
		return p, f, nil
	}
	gzw, err := catz.WrapGZFile(f, params.DefaultGZipCompressionLevel)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(p.tmp)
		return nil, nil, err
	}
	return p, gzw, nil
}

func (p *pending) discard() {
	_ = os.Remove(p.tmp)
}

// Commit writes the photos and stats tables to their paths.
// Both are written to temporary files first and renamed into place only when
// both are complete. A failed commit leaves no new output behind and puts
// any previous tables back.
// Paths ending in .gz are gzip-compressed.
func Commit(photosPath, statsPath string, list []trajectory.Identified, src trajectory.Source, opts *Options) (res *Result, err error) {
	if photosPath == statsPath {
		return nil, fmt.Errorf("photos and stats tables share a path: %s", photosPath)
	}
	if err := Check(list); err != nil {
		return nil, err
	}
	res = &Result{PhotosPath: photosPath, StatsPath: statsPath}

	photos, pw, err := createPending(photosPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			photos.discard()
		}
	}()
	res.PhotoRows, err = WritePhotos(pw, list, src)
	if cerr := pw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write photos table: %w", err)
	}

	stats, sw, err := createPending(statsPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			stats.discard()
		}
	}()
	res.Stats, err = WriteStats(sw, list, src, opts)
	if cerr := sw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write stats table: %w", err)
	}

	// Existing tables are moved aside until both new ones are in place.
	old, err := setAside(photos.target, stats.target)
	if err != nil {
		return nil, err
	}
	if err = os.Rename(photos.tmp, photos.target); err == nil {
		err = os.Rename(stats.tmp, stats.target)
	}
	if err != nil {
		return nil, errors.Join(err, old.restore(photos.target, stats.target))
	}
	old.drop()

	slog.Info("Committed tables",
		"photos", photosPath, "photo.rows", humanize.Comma(int64(res.PhotoRows)),
		"stats", statsPath, "stats.rows", humanize.Comma(int64(len(res.Stats))),
		"size", humanize.Bytes(uint64(fileSize(photosPath)+fileSize(statsPath))))
	return res, nil
}

// aside maps a target path to the backup holding its previous content.
type aside map[string]string

func setAside(targets ...string) (aside, error) {
	a := aside{}
	for i, target := range targets {
		backup, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".old-*")
		if err != nil {
			return nil, errors.Join(err, a.restore(targets[:i]...))
		}
		_ = backup.Close()
		err = os.Rename(target, backup.Name())
		if errors.Is(err, os.ErrNotExist) {
			_ = os.Remove(backup.Name())
			continue
		}
		if err != nil {
			_ = os.Remove(backup.Name())
			return nil, errors.Join(err, a.restore(targets[:i]...))
		}
		a[target] = backup.Name()
	}
	return a, nil
}

// restore puts every set-aside target back and removes targets that had none.
func (a aside) restore(targets ...string) error {
	var errs []error
	for _, target := range targets {
		if backup, ok := a[target]; ok {
			errs = append(errs, os.Rename(backup, target))
			continue
		}
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a aside) drop() {
	for _, backup := range a {
		_ = os.Remove(backup)
	}
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
