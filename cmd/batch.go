/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xoviat/g85/lib"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the merge jobs of a manifest.",
	Long: `Run every job of a YAML manifest. Jobs are independent and run
concurrently; the maps within one job are merged in order.

	Manifest:
		jobs:
		  - name: lot42
		    mode: sequence          # pair, control or sequence
		    inputs: [pass1.g85, pass2.g85]
		    output: lot42.g85
		    export: true
		    first_is_control: false
	`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := lib.LoadManifest(args[0])
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}

		results, err := lib.RunJobs(context.Background(), manifest.Jobs, viper.GetInt("jobs"), merger())
		if err != nil {
			return err
		}

		for i, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d dies, %d defects -> %s\n",
				manifest.Jobs[i].Name, len(r.Map.Dies), r.Map.Count(lib.Defect), manifest.Jobs[i].Output)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("jobs", "j", 4, "jobs to run at once")
	viper.BindPFlag("jobs", batchCmd.Flags().Lookup("jobs"))
}
