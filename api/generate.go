package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotblauer/trajd/geo/motion"
	"github.com/rotblauer/trajd/geo/region"
	"github.com/rotblauer/trajd/geo/segment"
	"github.com/rotblauer/trajd/metrics"
	"github.com/rotblauer/trajd/metrics/influxdb"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/publish"
	"github.com/rotblauer/trajd/state"
	"github.com/rotblauer/trajd/store"
	"github.com/rotblauer/trajd/table"
	"github.com/rotblauer/trajd/types/trajectory"
)

// Generate describes one batch run from a record source to the two tables.
type Generate struct {
	Input      string
	PhotosPath string
	StatsPath  string

	Load       *store.LoadOptions
	Trajectory *params.TrajectoryConfig
	Table      *table.Options

	// StatePath, when set, records the run in a ledger and checks it
	// against earlier runs of the same input and config.
	StatePath string

	// Influx and S3 are optional exports of the committed run.
	Influx *params.InfluxConfig
	S3     *params.S3Config
}

type GenerateResult struct {
	RunID      string
	Tables     *table.Result
	Summary    motion.Summary
	Highlights []motion.Highlight
	Metrics    *metrics.Pipeline
	Run        *state.RunRecord
	S3Keys     []string
}

func (g *Generate) validate() error {
	if g.Trajectory == nil {
		return fmt.Errorf("%w: missing trajectory config", params.ErrInvalidConfig)
	}
	if err := g.Trajectory.Validate(); err != nil {
		return err
	}
	if g.Input == "" || g.PhotosPath == "" || g.StatsPath == "" {
		return fmt.Errorf("%w: input, photos and stats paths are required", params.ErrInvalidConfig)
	}
	if g.PhotosPath == g.StatsPath {
		return fmt.Errorf("%w: photos and stats tables share a path", params.ErrInvalidConfig)
	}
	return nil
}

// Run executes load, build, filter, stats and commit in that order.
// Configuration is checked before any input is read.
// Either both tables are committed or neither is.
// Export failures are returned after the commit and leave the tables in place.
func (g *Generate) Run(ctx context.Context) (*GenerateResult, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if g.Load == nil {
		g.Load = store.DefaultLoadOptions()
	}
	if g.Table == nil {
		g.Table = table.DefaultOptions()
	}

	res := &GenerateResult{
		RunID:   uuid.NewString(),
		Metrics: metrics.NewPipeline(),
	}
	started := time.Now()
	logger := slog.With("run", res.RunID)
	logger.Info("Generate", "input", g.Input,
		"bbox", g.Trajectory.Box, "min.photos", g.Trajectory.MinPhotosPerTrajectory,
		"time.gap", g.Trajectory.TimeGap)

	done := res.Metrics.Stage("load")
	st, err := store.LoadFile(g.Input, g.Load)
	done()
	if err != nil {
		return nil, err
	}
	res.Metrics.Add(metrics.RecordsLoaded, st.Len())
	res.Metrics.Add(metrics.RecordsDuplicates, st.Duplicates())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = res.Metrics.Stage("build")
	built, err := segment.Build(st, g.Trajectory.TimeGap)
	done()
	if err != nil {
		return nil, err
	}
	res.Metrics.Add(metrics.TrajectoriesBuilt, len(built))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = res.Metrics.Stage("filter")
	kept, report, err := region.Filter(g.Trajectory.Box, g.Trajectory.MinPhotosPerTrajectory, built, st)
	done()
	if err != nil {
		return nil, err
	}
	res.Metrics.Add(metrics.TrajectoriesDropSize, report.DroppedSize)
	res.Metrics.Add(metrics.TrajectoriesDropBox, report.DroppedRegion)
	res.Metrics.Add(metrics.TrajectoriesKept, report.Kept)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	numbered := trajectory.Number(kept)
	done = res.Metrics.Stage("commit")
	res.Tables, err = table.Commit(g.PhotosPath, g.StatsPath, numbered, st, g.Table)
	done()
	if err != nil {
		return nil, err
	}
	res.Metrics.Add(metrics.RowsPhotos, res.Tables.PhotoRows)
	res.Metrics.Add(metrics.RowsStats, len(res.Tables.Stats))

	res.Summary = motion.Summarize(res.Tables.Stats)
	res.Highlights = motion.Highlights(res.Tables.Stats)
	res.Metrics.Log()

	// Everything below runs after the commit and never touches the tables.
	var errs []error
	if g.StatePath != "" {
		res.Run, err = g.record(res, st, numbered, started)
		if err != nil {
			logger.Error("Run ledger", "error", err)
			errs = append(errs, err)
		}
	}
	if g.Influx.Enabled() {
		if err := influxdb.ExportStats(g.Influx, res.RunID, res.Tables.Stats); err != nil {
			logger.Error("InfluxDB export failed", "error", err)
			errs = append(errs, err)
		}
	}
	if g.S3.Enabled() {
		res.S3Keys, err = publish.Upload(ctx, g.S3, res.RunID, res.Tables.PhotosPath, res.Tables.StatsPath)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return res, errors.Join(errs...)
}

// record writes the run to the ledger, then checks it against earlier runs.
func (g *Generate) record(res *GenerateResult, st *store.Store, numbered []trajectory.Identified, started time.Time) (*state.RunRecord, error) {
	rec := &state.RunRecord{
		ID:      res.RunID,
		Started: started.UTC(),
		Elapsed: time.Since(started),
		Input:   g.Input,
		Config: state.RunConfig{
			Trajectory: *g.Trajectory,
			Precision:  g.Table.Precision,
			Dedupe:     g.Load.Dedupe,
		},
		Counts: res.Metrics.Counts(),
	}
	if fi, err := os.Stat(g.Input); err == nil {
		rec.InputSize = fi.Size()
	}
	var err error
	if rec.ConfigHash, err = state.Fingerprint(rec.Config); err != nil {
		return nil, err
	}
	if rec.InputHash, err = state.Fingerprint(st.Records()); err != nil {
		return nil, err
	}
	if rec.OutputHash, err = state.Fingerprint(struct {
		Trajectories []trajectory.Identified
		Stats        []trajectory.Stats
	}{numbered, res.Tables.Stats}); err != nil {
		return nil, err
	}

	db, err := state.Open(g.StatePath, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := db.Put(rec); err != nil {
		return nil, err
	}
	return rec, db.CheckDeterminism(rec)
}
