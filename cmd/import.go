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

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import maps into the library.",
	Long: `Import G85 maps into the library.

		- A G85 map file (.g85, .xml, .map).
		- An archive of G85 map files (.zip, .tar, .tar.gz, ...).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open or create library: %w", err)
		}
		defer library.Close()

		srcs := []string{}
		for _, arg := range args {
			src, err := lib.Normalize(arg)
			if err != nil {
				return fmt.Errorf("failed to normalize path: %w", err)
			}
			srcs = append(srcs, src)
		}

		named, err := lib.LoadNamed(srcs)
		if err != nil {
			return fmt.Errorf("failed to read maps: %w", err)
		}

		for _, nm := range named {
			entry, err := library.Add(nm.Name, nm.Map)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", nm.Name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "importing map: %s %s (%s)\n", entry.ID, nm.Name, entry.LotId)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
