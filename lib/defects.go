package lib

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
)

// SortedDefects returns the defect coordinates of m in row-major order.
func SortedDefects(m *WaferMap) []Coord {
	coords := make([]Coord, 0, len(m.Defects))
	for c := range m.Defects {
		coords = append(coords, c)
	}

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})

	return coords
}

// WriteDefects writes one CSV line per defect or reference die of m.
func WriteDefects(w io.Writer, m *WaferMap) error {
	writer := csv.NewWriter(w)
	writer.Write([]string{"X", "Y", "Type", "Info"})
	for _, c := range SortedDefects(m) {
		defect := m.Defects[c]
		writer.Write([]string{
			strconv.Itoa(c.X),
			strconv.Itoa(c.Y),
			defect.Type,
			defect.AdditionalInfo,
		})
	}

	writer.Flush()
	return writer.Error()
}
