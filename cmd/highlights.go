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
	"log"
	"os"
	"path"

	"github.com/rotblauer/trajd/catz"
	"github.com/rotblauer/trajd/common"
	"github.com/rotblauer/trajd/geo/motion"
	"github.com/rotblauer/trajd/publish"
	"github.com/rotblauer/trajd/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// highlightsCmd represents the highlights command
var highlightsCmd = &cobra.Command{
	Use:   "highlights STATS_TABLE",
	Short: "Print the most notable trajectories of a stats table",
	Long: `Reads a stats table written by generate and prints the trajectory with
the most photos, the longest time, the longest distance and the highest speed.
Single-photo and stationary trajectories are not eligible.

STATS_TABLE may be a local path or an s3://bucket/key URL.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := common.CancelOnInterrupt(context.Background())
		defer cancel()

		name, cleanup, err := localStatsTable(ctx, args[0])
		if err != nil {
			log.Fatalln(err)
		}
		defer cleanup()

		r, err := catz.OpenReader(name)
		if err != nil {
			log.Fatalln(err)
		}
		defer r.Close()
		stats, err := table.ReadStats(r)
		if err != nil {
			log.Fatalln(err)
		}
		opts := &table.Options{Precision: viper.GetInt("precision")}
		if err := table.WriteHighlights(os.Stdout, motion.Highlights(stats), opts); err != nil {
			log.Fatalln(err)
		}
	},
}

// localStatsTable downloads s3:// URLs to a temporary file.
func localStatsTable(ctx context.Context, arg string) (name string, cleanup func(), err error) {
	bucket, key, ok := publish.ParseURL(arg)
	if !ok {
		name, err = expandPath(arg)
		return name, func() {}, err
	}
	// Keep the base name so a .gz key is still read as gzip.
	f, err := os.CreateTemp("", "trajd-*-"+path.Base(key))
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { _ = os.Remove(f.Name()) }
	_, err = publish.Download(ctx, f, bucket, key)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return f.Name(), cleanup, nil
}

func init() {
	rootCmd.AddCommand(highlightsCmd)
	highlightsCmd.Flags().Int("precision", 3, "Decimal places for stats columns; -1 keeps full precision")
}
