/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"path/filepath"
	"unicode/utf8"

	"github.com/rotblauer/trajd/api"
	"github.com/rotblauer/trajd/common"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/store"
	"github.com/rotblauer/trajd/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate INPUT",
	Short: "Build trajectories from a photo record source and write the tables",
	Long: `Loads every record of INPUT, splits each user's photos into trajectories
wherever consecutive photos are --time-gap hours or more apart, drops trajectories
with fewer than --min-photos photos or with no photo strictly inside --bbox,
and writes the photos and stats tables.

Both tables are written completely or not at all.
INPUT and the table paths may end in .gz.

Examples:

  trajd generate photos.csv --time-gap 8 --bbox 144.597363,-38.072257,145.360413,-37.591764
  trajd generate photos.ndjson.gz --format ndjson --out-dir ./out --state ~/.trajd/runs.db
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		g, err := generateFromFlags(args[0])
		if err != nil {
			log.Fatalln(err)
		}

		ctx, cancel := common.CancelOnInterrupt(context.Background())
		defer cancel()

		res, err := g.Run(ctx)
		if res != nil {
			slog.Info("Summary",
				"trajectories", res.Summary.Trajectories,
				"photos", res.Summary.Photos,
				"distance.km.mean", res.Summary.DistanceKm.Mean,
				"distance.km.max", res.Summary.DistanceKm.Max,
				"minutes.median", res.Summary.Minutes.Median,
				"speed.kmh.p90", res.Summary.SpeedKmh.P90)
			for _, h := range res.Highlights {
				slog.Info("Highlight", "name", h.Name, "trajectory", h.Stats.ID, "user", h.Stats.User)
			}
		}
		if err != nil {
			log.Fatalln(err)
		}
	},
}

func generateFromFlags(input string) (*api.Generate, error) {
	input, err := expandPath(input)
	if err != nil {
		return nil, err
	}

	box, err := params.ParseBoundingBox(viper.GetString("bbox"))
	if err != nil {
		return nil, err
	}
	gap, err := params.TimeGapFromHours(viper.GetFloat64("time-gap"))
	if err != nil {
		return nil, err
	}
	trajConfig := &params.TrajectoryConfig{
		Box:                    box,
		MinPhotosPerTrajectory: viper.GetInt("min-photos"),
		TimeGap:                gap,
	}

	loadOpts := store.DefaultLoadOptions()
	loadOpts.Format = store.Format(viper.GetString("format"))
	switch loadOpts.Format {
	case store.FormatDelimited, store.FormatNDJSON:
	default:
		return nil, fmt.Errorf("%w: unknown format %q", params.ErrInvalidConfig, loadOpts.Format)
	}
	delim := viper.GetString("delimiter")
	if delim == `\t` {
		delim = "\t"
	}
	if utf8.RuneCountInString(delim) != 1 {
		return nil, fmt.Errorf("%w: delimiter must be a single character, got %q", params.ErrInvalidConfig, delim)
	}
	loadOpts.Delimiter, _ = utf8.DecodeRuneInString(delim)
	loadOpts.Dedupe = viper.GetBool("dedupe")

	outDir, err := expandPath(viper.GetString("out-dir"))
	if err != nil {
		return nil, err
	}
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	outPath := func(name string) (string, error) {
		p, err := expandPath(name)
		if err != nil || filepath.IsAbs(p) {
			return p, err
		}
		return filepath.Join(outDir, p), nil
	}
	photos, err := outPath(viper.GetString("photos"))
	if err != nil {
		return nil, err
	}
	stats, err := outPath(viper.GetString("stats"))
	if err != nil {
		return nil, err
	}
	statePath, err := expandPath(viper.GetString("state"))
	if err != nil {
		return nil, err
	}

	g := &api.Generate{
		Input:      input,
		PhotosPath: photos,
		StatsPath:  stats,
		Load:       loadOpts,
		Trajectory: trajConfig,
		Table:      &table.Options{Precision: viper.GetInt("precision")},
		StatePath:  statePath,
	}
	if viper.GetBool("influx") {
		g.Influx = params.DefaultInfluxConfig()
		if !g.Influx.Enabled() {
			return nil, fmt.Errorf("%w: --influx requires INFLUXDB_URL", params.ErrInvalidConfig)
		}
	}
	if viper.GetBool("s3") {
		g.S3 = params.DefaultS3Config()
		if !g.S3.Enabled() {
			return nil, fmt.Errorf("%w: --s3 requires AWS_BUCKETNAME", params.ErrInvalidConfig)
		}
	}
	return g, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	defaults := params.DefaultTrajectoryConfig()
	flags := generateCmd.Flags()
	flags.String("bbox", defaults.Box.Flag(), "Region of interest: minLng,minLat,maxLng,maxLat")
	flags.Int("min-photos", defaults.MinPhotosPerTrajectory, "Minimum photos per trajectory")
	flags.Float64("time-gap", params.DefaultTimeGapHours, "Gap in hours that splits a trajectory; equal gaps split")
	flags.String("format", string(store.FormatDelimited), "Input format: csv or ndjson")
	flags.String("delimiter", ",", `Field delimiter for csv input; use \t for tabs`)
	flags.Bool("dedupe", false, "Drop records identical to one already loaded")
	flags.Int("precision", params.UnsetPrecision, "Decimal places for stats columns; -1 keeps full precision")
	flags.String("out-dir", "", "Output directory (default is the input's directory)")
	flags.String("photos", params.PhotosTableFileName, "Photos table file name or path")
	flags.String("stats", params.StatsTableFileName, "Stats table file name or path")
	flags.String("state", "", "Record the run in this ledger database, e.g. "+params.DefaultRunsDBPath())
	flags.Bool("influx", false, "Export stats to InfluxDB (INFLUXDB_URL, INFLUXDB_TOKEN, INFLUXDB_ORG, INFLUXDB_BUCKET)")
	flags.Bool("s3", false, "Upload the tables to S3 (AWS_BUCKETNAME and the usual AWS_ environment)")
}
