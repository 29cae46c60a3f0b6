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
	output string
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge two maps, keeping the first map's dies.",
	Long: `Align the second map onto the first and merge them. Dies of the first
map win unless they are null (FF) or fail-code (FC) dies, which take the
second map's status.

		Arguments are:
			- base: the map whose header and dies take precedence
			- other: the map merged onto it
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

		r, err := merger().MergeTwo(maps[0], maps[1])
		if err != nil {
			return fmt.Errorf("failed to merge: %w", err)
		}

		reportResult(r)
		return writeMap(cmd.OutOrStdout(), output, r.Map)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
}
