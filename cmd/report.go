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
	"strings"

	"github.com/spf13/cobra"
	"github.com/xoviat/g85/lib"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write bin statistics of maps to a spreadsheet.",
	Long: `Write a spreadsheet with one row per map giving the count and share of
the grid of every die status.

		Arguments are:
			- output file: the xlsx file to write
			- maps: G85 files or archives of them
	`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst := args[0]
		if !strings.HasSuffix(dst, "xlsx") {
			return fmt.Errorf("report file name must be an xlsx file")
		}

		named, err := lib.LoadNamed(args[1:])
		if err != nil {
			return fmt.Errorf("failed to read maps: %w", err)
		}

		entries := []lib.ReportEntry{}
		for _, nm := range named {
			entries = append(entries, lib.ReportEntry{Name: nm.Name, Map: nm.Map})
		}

		if err := lib.WriteReport(dst, entries); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
