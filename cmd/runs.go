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
	"encoding/json"
	"log"
	"os"

	"github.com/rotblauer/trajd/params"
	"github.com/rotblauer/trajd/state"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs [RUN_ID]",
	Short: "List recorded generate runs, newest first, as JSON lines",
	Long: `Reads the run ledger written by generate --state.
With a RUN_ID, prints only that run.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := expandPath(viper.GetString("state"))
		if err != nil {
			log.Fatalln(err)
		}
		db, err := state.Open(p, true)
		if err != nil {
			log.Fatalln(err)
		}
		defer db.Close()

		enc := json.NewEncoder(os.Stdout)
		if len(args) == 1 {
			rec, err := db.Get(args[0])
			if err != nil {
				log.Fatalln(err)
			}
			if err := enc.Encode(rec); err != nil {
				log.Fatalln(err)
			}
			return
		}
		runs, err := db.List()
		if err != nil {
			log.Fatalln(err)
		}
		for _, rec := range runs {
			if err := enc.Encode(rec); err != nil {
				log.Fatalln(err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().String("state", params.DefaultRunsDBPath(), "Run ledger database")
}
