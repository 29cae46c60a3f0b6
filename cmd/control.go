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

// controlCmd represents the control command
var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Overlay a scan map's defects onto a control map.",
	Long: `Align a defect scan onto a control map and mark the scan's defects (EF)
on the control grid. The grid size and bins come from the control map, the
lot, product and substrate from the scan. Defects never land on null or
fail-code dies of the control map.

		Arguments are:
			- control: the map with the authoritative grid
			- scan: the map supplying defects
	`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		maps, err := lib.LoadMaps(args)
		if err != nil {
			return fmt.Errorf("failed to read maps: %w", err)
		}
		if len(maps) != 2 {
			return fmt.Errorf("%s takes 2 maps, got %d", cmd.Name(), len(maps))
		}

		r, err := merger().MergeControlAndScan(maps[0], maps[1], exportIDs(cmd))
		if err != nil {
			return fmt.Errorf("failed to merge: %w", err)
		}

		reportResult(r)
		return writeMap(cmd.OutOrStdout(), output, r.Map)
	},
}

func init() {
	rootCmd.AddCommand(controlCmd)

	controlCmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	controlCmd.Flags().BoolP("export", "z", false, "mark lot and substrate ids with Z for upload")
}
