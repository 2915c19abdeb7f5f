package influxdb

import (
	"errors"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/types/trajectory"
)

var ErrNotConfigured = errors.New("influxdb not configured")

// StatsPoint is the point written for one trajectory, timestamped at its first photo.
func StatsPoint(runID string, s trajectory.Stats) *write.Point {
	return influxdb2.NewPointWithMeasurement("trajectory").
		SetTime(s.Start).
		AddTag("run", runID).
		AddTag("user", s.User.String()).
		AddField("trajectory_id", int(s.ID)).
		AddField("photos", s.Photos).
		AddField("distance_km", s.DistanceKm).
		AddField("elapsed_min", s.ElapsedMinutes()).
		AddField("speed_kmh", s.SpeedKmh)
}

// ExportStats posts trajectory stats to an InfluxDB Write API.
// The Write API will buffer and flush.
// The last error encountered is returned.
func ExportStats(cfg *params.InfluxConfig, runID string, stats []trajectory.Stats) error {
	if !cfg.Enabled() {
		return ErrNotConfigured
	}
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)
	writeAPI := client.WriteAPI(cfg.Org, cfg.Bucket)

	// Errors must be called before performing any writes for errors to be collected.
	// The chan is unbuffered and must be drained or the writer will block.
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	for _, s := range stats {
		writeAPI.WritePoint(StatsPoint(runID, s))
	}
	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
