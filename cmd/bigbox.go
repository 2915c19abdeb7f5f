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
	"io"
	"log"
	"os"

	"github.com/rotblauer/trajd/bigbox"
	"github.com/rotblauer/trajd/catz"
	"github.com/rotblauer/trajd/common"
	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/types/record"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bigboxCmd represents the bigbox command
var bigboxCmd = &cobra.Command{
	Use:   "bigbox INPUT OUTPUT",
	Short: "Cut a raw YFCC100M-style dump down to a record source",
	Long: `Reads a tab-separated photo dump (INPUT, or - for stdin) and writes
the rows strictly inside --bbox whose date taken lies within
[--time-min, --time-max] to OUTPUT as a comma-separated record source
that generate can read.

Short or unparsable rows are skipped and counted.

Examples:

  zcat yfcc100m_dataset.gz | trajd bigbox - victoria.csv
  trajd bigbox yfcc100m_dataset.gz victoria.csv.gz --time-min "2010-01-01 00:00:00"
`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := bigboxFromFlags()
		if err != nil {
			log.Fatalln(err)
		}

		var in io.ReadCloser = os.Stdin
		if args[0] != "-" {
			p, err := expandPath(args[0])
			if err != nil {
				log.Fatalln(err)
			}
			if in, err = catz.OpenReader(p); err != nil {
				log.Fatalln(err)
			}
		}
		defer in.Close()

		outPath, err := expandPath(args[1])
		if err != nil {
			log.Fatalln(err)
		}
		var out io.WriteCloser
		if catz.IsGZ(outPath) {
			out, err = catz.NewGZFileWriter(outPath, catz.DefaultGZFileWriterConfig())
		} else {
			out, err = os.Create(outPath)
		}
		if err != nil {
			log.Fatalln(err)
		}

		ctx, cancel := common.CancelOnInterrupt(context.Background())
		defer cancel()

		_, err = bigbox.Filter(ctx, in, out, cfg)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Fatalln(err)
		}
	},
}

func bigboxFromFlags() (*params.BigBoxConfig, error) {
	box, err := params.ParseBoundingBox(viper.GetString("bbox"))
	if err != nil {
		return nil, err
	}
	tMin, err := record.ParseTime(viper.GetString("time-min"))
	if err != nil {
		return nil, err
	}
	tMax, err := record.ParseTime(viper.GetString("time-max"))
	if err != nil {
		return nil, err
	}
	cfg := &params.BigBoxConfig{
		Box:          box,
		TimeMin:      tMin,
		TimeMax:      tMax,
		DedupeWindow: viper.GetInt("dedupe-window"),
	}
	return cfg, cfg.Validate()
}

func init() {
	rootCmd.AddCommand(bigboxCmd)

	defaults := params.DefaultBigBoxConfig()
	flags := bigboxCmd.Flags()
	flags.String("bbox", defaults.Box.Flag(), "Keep rows strictly inside minLng,minLat,maxLng,maxLat")
	flags.String("time-min", record.FormatTime(defaults.TimeMin), "Earliest date taken, inclusive")
	flags.String("time-max", record.FormatTime(defaults.TimeMax), "Latest date taken, inclusive")
	flags.Int("dedupe-window", 0, "Skip rows repeating a photo id seen within this many distinct ids; 0 disables")
}
