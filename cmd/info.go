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
	"sort"

	"github.com/spf13/cobra"
	"github.com/xoviat/g85/lib"
	"go.uber.org/zap"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe a G85 map.",
	Long: `Print the lot, product and substrate of a map, its grid size, the
number of dies of each status and the alignment fiducials found in it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lib.Normalize(args[0])
		if err != nil {
			return err
		}

		m, err := lib.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", src, err)
		}

		if !lib.RevisionSupported(m.Attributes.FormatRevision) {
			logger.Warn("format revision is newer than supported",
				zap.String("revision", m.Attributes.FormatRevision),
				zap.String("supported", lib.SupportedRevision),
			)
		}

		out := cmd.OutOrStdout()
		rows, cols := m.Dims()
		fmt.Fprintf(out, "LotId:           %s\n", m.Header["LotId"])
		fmt.Fprintf(out, "ProductId:       %s\n", m.Header["ProductId"])
		fmt.Fprintf(out, "SubstrateNumber: %s\n", m.Attributes.SubstrateNumber)
		fmt.Fprintf(out, "FormatRevision:  %s\n", m.Attributes.FormatRevision)
		fmt.Fprintf(out, "Grid:            %d rows x %d columns\n", rows, cols)
		if rd := m.ReferenceDevice; rd != nil {
			fmt.Fprintf(out, "ReferenceDevice: %s,%s\n", rd.X, rd.Y)
		}

		counts := m.BinCounts()
		codes := make([]string, 0, len(counts))
		for code := range counts {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		fmt.Fprintln(out, "Dies:")
		for _, code := range codes {
			fmt.Fprintf(out, "  %s %6d  %5.1f%%\n", code, counts[code], lib.Percent(m, counts[code]))
		}

		fmt.Fprintln(out, "Fiducials:")
		for _, s := range lib.DefaultAligner.Strategies {
			if c, ok := s.Fiducial(m); ok {
				fmt.Fprintf(out, "  %-22s %d,%d\n", s.Name(), c.X, c.Y)
			} else {
				fmt.Fprintf(out, "  %-22s none\n", s.Name())
			}
		}
		fmt.Fprintf(out, "Test die areas:  %d\n", len(lib.TestDieAreas(m)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
