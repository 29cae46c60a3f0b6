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
	"os"

	"github.com/spf13/cobra"
	"github.com/xoviat/g85/lib"
)

// defectsCmd represents the defects command
var defectsCmd = &cobra.Command{
	Use:   "defects",
	Short: "List the defect and reference dies of a map as CSV.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := lib.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		if output == "" || output == "-" {
			return lib.WriteDefects(cmd.OutOrStdout(), m)
		}

		fp, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer fp.Close()

		return lib.WriteDefects(fp, m)
	},
}

func init() {
	rootCmd.AddCommand(defectsCmd)

	defectsCmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
}
