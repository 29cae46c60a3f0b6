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

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"
	"github.com/xoviat/g85/lib"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a map from the library.",
	Long: `Write a stored map as G85. Without an id, pick one interactively.

	Example:
		- g85 export                       : pick a map, write to stdout
		- g85 export <id> <file.g85>       : write a map to a file
		- g85 export <id> <file.g85> -z    : write with upload lot and substrate ids
	`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open or create library: %w", err)
		}
		defer library.Close()

		id := ""
		if len(args) > 0 {
			id = args[0]
		} else {
			id, err = pickEntry(library)
			if err != nil {
				return err
			}
		}

		m, err := library.Get(id)
		if err != nil {
			return fmt.Errorf("failed to load map: %w", err)
		}

		if exportIDs(cmd) {
			m = m.WithExportIDs()
		}

		dst := ""
		if len(args) > 1 {
			dst = args[1]
		}

		return writeMap(cmd.OutOrStdout(), dst, m)
	},
}

/*
	ask for a library id, suggesting stored maps
*/
func pickEntry(library *lib.Library) (string, error) {
	entries, err := library.Entries()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("library is empty")
	}

	suggestions := []prompt.Suggest{}
	for _, entry := range entries {
		suggestions = append(suggestions, prompt.Suggest{
			Text:        entry.ID,
			Description: fmt.Sprintf("%s %s #%s %s", entry.LotId, entry.ProductId, entry.SubstrateNumber, entry.Name),
		})
	}

	fmt.Println("Enter map id:")
	id := prompt.Input("> ", func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
	})

	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("no map selected")
	}

	return id, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolP("export", "z", false, "mark lot and substrate ids with Z for upload")
}
