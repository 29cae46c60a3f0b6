package lib

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

const ReportSheet = "bins"

/*
	fill colors used for each status in reports
*/
var StatusColors = map[string]string{
	Pass:      "#4CAF50",
	Defect:    "#F44336",
	Reference: "#2196F3",
	Null:      "#E0E0E0",
	FailCode:  "#FF9800",
}

const otherColor = "#9E9E9E"

// ReportEntry is one map in a bin report.
type ReportEntry struct {
	Name string
	Map  *WaferMap
}

/*
	status codes present in any entry, known codes first
*/
func reportCodes(entries []ReportEntry) []string {
	known := []string{Pass, Defect, Reference, Null, FailCode}

	seen := map[string]bool{}
	extra := []string{}
	for _, entry := range entries {
		for code := range entry.Map.BinCounts() {
			if seen[code] {
				continue
			}
			seen[code] = true
			if _, ok := StatusColors[code]; !ok {
				extra = append(extra, code)
			}
		}
	}
	sort.Strings(extra)

	codes := []string{}
	for _, code := range known {
		if seen[code] {
			codes = append(codes, code)
		}
	}

	return append(codes, extra...)
}

// Percent is the share of the declared grid holding count dies.
func Percent(m *WaferMap, count int) float64 {
	rows, cols := m.Dims()
	if rows*cols == 0 {
		return 0
	}

	return float64(count) * 100 / float64(rows*cols)
}

// WriteReport writes a spreadsheet with one row per map: lot, substrate, the
// count and grid percentage of every status, and the total die count.
func WriteReport(dst string, entries []ReportEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no maps to report")
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(ReportSheet); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	codes := reportCodes(entries)
	header := []interface{}{"Map", "LotId", "SubstrateNumber"}
	for _, code := range codes {
		header = append(header, code, code+" %")
	}
	header = append(header, "Total")

	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(header))
	f.SetCellStyle(ReportSheet, "A1", last+"1", headerStyle)

	for i, code := range codes {
		color, ok := StatusColors[code]
		if !ok {
			color = otherColor
		}

		style, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return err
		}

		cell, _ := excelize.CoordinatesToCellName(4+2*i, 1)
		f.SetCellStyle(ReportSheet, cell, cell, style)
	}

	for i, entry := range entries {
		counts := entry.Map.BinCounts()

		row := []interface{}{
			entry.Name,
			entry.Map.Header["LotId"],
			entry.Map.Attributes.SubstrateNumber,
		}
		total := 0
		for _, code := range codes {
			row = append(row, counts[code], fmt.Sprintf("%.1f", Percent(entry.Map, counts[code])))
			total += counts[code]
		}
		row = append(row, total)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			return err
		}
	}

	f.SetColWidth(ReportSheet, "A", "A", 30)
	f.SetColWidth(ReportSheet, "B", "C", 18)

	return f.SaveAs(dst)
}
