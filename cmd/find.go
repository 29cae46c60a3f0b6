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
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search the library.",
	Long:  `Search stored maps by lot id, product id, substrate number or file name.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open or create library: %w", err)
		}
		defer library.Close()

		entries, err := library.Find(args[0])
		if err != nil {
			return fmt.Errorf("failed to search library: %w", err)
		}

		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s %-16s #%-4s %dx%d  %d defects  %s\n",
				entry.ID, entry.LotId, entry.ProductId, entry.SubstrateNumber,
				entry.Rows, entry.Columns, entry.Defects, entry.Name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
