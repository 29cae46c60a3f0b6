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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xoviat/g85/lib"
)

var (
	firstControl bool
)

// sequenceCmd represents the sequence command
var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Merge several maps in order.",
	Long: `Start from the first map and mark the defects of each following map on
it, realigning every map against the merge so far. Archives (zip, tar, ...)
contribute their G85 files in name order.

	Example:
		- g85 sequence pass1.g85 pass2.g85 pass3.g85 -o merged.g85
		- g85 sequence control.g85 scans.zip --first-control -z
	`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maps, err := lib.LoadMaps(args)
		if err != nil {
			return fmt.Errorf("failed to read maps: %w", err)
		}

		r, err := merger().MergeSequence(maps, exportIDs(cmd), firstControl)
		if err != nil {
			return fmt.Errorf("failed to merge: %w", err)
		}

		reportResult(r)
		return writeMap(cmd.OutOrStdout(), output, r.Map)
	},
}

func init() {
	rootCmd.AddCommand(sequenceCmd)

	sequenceCmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	sequenceCmd.Flags().BoolP("export", "z", false, "mark lot and substrate ids with Z for upload")
	sequenceCmd.Flags().BoolVarP(&firstControl, "first-control", "c", false, "take lot, product and substrate from the second map")
}
