package lib

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Offset translates a coordinate of one map onto another.
type Offset struct {
	DX int
	DY int
}

func (o Offset) String() string {
	return fmt.Sprintf("(%d,%d)", o.DX, o.DY)
}

// Strategy locates one fiducial position in a map. Two maps are aligned by
// subtracting their fiducials; a strategy only applies when both maps have one.
type Strategy interface {
	Name() string
	Fiducial(m *WaferMap) (Coord, bool)
}

// Aligner tries its strategies in order until one applies to both maps.
type Aligner struct {
	Strategies []Strategy
}

var (
	// DefaultAligner: reference dies, then test die areas, then the bottom row.
	DefaultAligner = Aligner{Strategies: []Strategy{
		ReferenceCentroid{},
		LowestTestDieArea{},
		BottomRowCenter{},
	}}

	// TestDieAligner is used when realigning against an accumulated merge.
	TestDieAligner = Aligner{Strategies: []Strategy{
		LowestTestDieArea{},
		BottomRowCenter{},
	}}
)

// Align returns the offset that moves coordinates of b onto a, and the name
// of the strategy that produced it.
func (al Aligner) Align(a, b *WaferMap) (Offset, string, error) {
	tried := []string{}
	for _, s := range al.Strategies {
		fa, ok := s.Fiducial(a)
		if !ok {
			tried = append(tried, s.Name())
			continue
		}

		fb, ok := s.Fiducial(b)
		if !ok {
			tried = append(tried, s.Name())
			continue
		}

		return Offset{DX: fa.X - fb.X, DY: fa.Y - fb.Y}, s.Name(), nil
	}

	return Offset{}, "", &AlignmentError{
		Reason: "no fiducial found in both maps (tried " + strings.Join(tried, ", ") + ")",
	}
}

/*
	rounds halves up, matching how die centers have always been computed
*/
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ReferenceCentroid uses the mean position of the FA dies.
type ReferenceCentroid struct{}

func (ReferenceCentroid) Name() string { return "reference-centroid" }

func (ReferenceCentroid) Fiducial(m *WaferMap) (Coord, bool) {
	xs := []float64{}
	ys := []float64{}
	for c, status := range m.Dies {
		if status == Reference {
			xs = append(xs, float64(c.X))
			ys = append(ys, float64(c.Y))
		}
	}

	if len(xs) == 0 {
		return Coord{}, false
	}

	return Coord{X: round(stat.Mean(xs, nil)), Y: round(stat.Mean(ys, nil))}, true
}

// TestDieArea is a rectangle of null or fail-code dies fenced by pass dies.
type TestDieArea struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (a TestDieArea) Center() Coord {
	return Coord{X: a.X + a.Width/2, Y: a.Y + a.Height/2}
}

func isTestDie(m *WaferMap, c Coord) bool {
	status, ok := m.Dies[c]
	return ok && IsPlaceholder(status)
}

func isPass(m *WaferMap, c Coord) bool {
	status, ok := m.Dies[c]
	return ok && status == Pass
}

// TestDieAreas scans m row by row. From every null or fail-code die it grows
// a rectangle right along the row, then down while the whole span stays
// null or fail-code, and keeps it when each border that is not the grid
// edge consists only of pass dies.
func TestDieAreas(m *WaferMap) []TestDieArea {
	rows, cols := m.Dims()
	areas := []TestDieArea{}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if !isTestDie(m, Coord{X: x, Y: y}) {
				continue
			}

			width := 0
			for i := x; i < cols && isTestDie(m, Coord{X: i, Y: y}); i++ {
				width++
			}

			height := 0
			for j := y; j < rows; j++ {
				full := true
				for i := x; i < x+width; i++ {
					if !isTestDie(m, Coord{X: i, Y: j}) {
						full = false
						break
					}
				}
				if !full {
					break
				}
				height++
			}

			area := TestDieArea{X: x, Y: y, Width: width, Height: height}
			if fenced(m, area, rows, cols) {
				areas = append(areas, area)
			}
		}
	}

	return areas
}

func fenced(m *WaferMap, a TestDieArea, rows, cols int) bool {
	if a.Y > 0 {
		for i := a.X; i < a.X+a.Width; i++ {
			if !isPass(m, Coord{X: i, Y: a.Y - 1}) {
				return false
			}
		}
	}

	if a.Y+a.Height < rows {
		for i := a.X; i < a.X+a.Width; i++ {
			if !isPass(m, Coord{X: i, Y: a.Y + a.Height}) {
				return false
			}
		}
	}

	if a.X > 0 {
		for j := a.Y; j < a.Y+a.Height; j++ {
			if !isPass(m, Coord{X: a.X - 1, Y: j}) {
				return false
			}
		}
	}

	if a.X+a.Width < cols {
		for j := a.Y; j < a.Y+a.Height; j++ {
			if !isPass(m, Coord{X: a.X + a.Width, Y: j}) {
				return false
			}
		}
	}

	return true
}

// Lowest returns the area whose center is nearest the bottom of the grid.
// The first area found wins ties.
func Lowest(areas []TestDieArea) (TestDieArea, bool) {
	if len(areas) == 0 {
		return TestDieArea{}, false
	}

	lowest := areas[0]
	for _, a := range areas[1:] {
		if a.Center().Y > lowest.Center().Y {
			lowest = a
		}
	}

	return lowest, true
}

// LowestTestDieArea uses the center of the lowest test die area.
type LowestTestDieArea struct{}

func (LowestTestDieArea) Name() string { return "lowest-test-die-area" }

func (LowestTestDieArea) Fiducial(m *WaferMap) (Coord, bool) {
	a, ok := Lowest(TestDieAreas(m))
	if !ok {
		return Coord{}, false
	}

	return a.Center(), true
}

// BottomRowCenter uses the middle of the lowest row holding a real die.
type BottomRowCenter struct{}

func (BottomRowCenter) Name() string { return "bottom-row-center" }

func (BottomRowCenter) Fiducial(m *WaferMap) (Coord, bool) {
	rows, cols := m.Dims()
	for y := rows - 1; y >= 0; y-- {
		xs := []float64{}
		for x := 0; x < cols; x++ {
			status, ok := m.Dies[Coord{X: x, Y: y}]
			if ok && !IsPlaceholder(status) {
				xs = append(xs, float64(x))
			}
		}

		if len(xs) > 0 {
			return Coord{X: round(stat.Mean(xs, nil)), Y: y}, true
		}
	}

	return Coord{}, false
}
