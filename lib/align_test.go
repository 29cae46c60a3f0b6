package lib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignReferenceDies(t *testing.T) {
	a := fill(10, 10, Pass)
	a.Set(Coord{X: 5, Y: 5}, Reference, "")
	b := fill(10, 10, Pass)
	b.Set(Coord{X: 7, Y: 9}, Reference, "")

	offset, strategy, err := DefaultAligner.Align(a, b)
	require.NoError(t, err)

	assert.Equal(t, Offset{DX: -2, DY: -4}, offset)
	assert.Equal(t, "reference-centroid", strategy)
	assert.Equal(t, Coord{X: 5, Y: 5}, Coord{X: 7, Y: 9}.Add(offset))
}

func TestReferenceCentroidRoundsHalfUp(t *testing.T) {
	m := fill(4, 4, Pass)
	m.Set(Coord{X: 1, Y: 1}, Reference, "")
	m.Set(Coord{X: 2, Y: 1}, Reference, "")
	m.Set(Coord{X: 2, Y: 2}, Reference, "")

	c, ok := ReferenceCentroid{}.Fiducial(m)
	require.True(t, ok)

	// mean (1.67, 1.33)
	assert.Equal(t, Coord{X: 2, Y: 1}, c)
}

func TestTestDieAreas(t *testing.T) {
	m := keepout(8, 8, 3, 5, 2, 1)
	m.Set(Coord{X: 0, Y: 0}, Null, "")

	areas := TestDieAreas(m)

	assert.Equal(t, []TestDieArea{
		{X: 0, Y: 0, Width: 1, Height: 1},
		{X: 3, Y: 5, Width: 2, Height: 1},
	}, areas)

	lowest, ok := Lowest(areas)
	require.True(t, ok)
	assert.Equal(t, Coord{X: 4, Y: 5}, lowest.Center())
}

func TestTestDieAreaNeedsPassBorder(t *testing.T) {
	m := keepout(8, 8, 3, 3, 2, 2)
	m.Set(Coord{X: 5, Y: 4}, Defect, "")

	assert.Empty(t, TestDieAreas(m))
}

func TestTestDieAreaFailCode(t *testing.T) {
	m := keepout(8, 8, 2, 2, 3, 2)
	m.Set(Coord{X: 3, Y: 3}, FailCode, "")

	areas := TestDieAreas(m)

	require.Len(t, areas, 1)
	assert.Equal(t, TestDieArea{X: 2, Y: 2, Width: 3, Height: 2}, areas[0])
	assert.Equal(t, Coord{X: 3, Y: 3}, areas[0].Center())
}

func TestAbsentDiesAreNotTestDies(t *testing.T) {
	m := fill(6, 6, Pass)
	delete(m.Dies, Coord{X: 2, Y: 2})

	assert.Empty(t, TestDieAreas(m))
}

func TestLowestFirstWinsTies(t *testing.T) {
	areas := []TestDieArea{
		{X: 1, Y: 4, Width: 2, Height: 1},
		{X: 6, Y: 4, Width: 2, Height: 1},
		{X: 3, Y: 1, Width: 1, Height: 1},
	}

	lowest, ok := Lowest(areas)
	require.True(t, ok)
	assert.Equal(t, areas[0], lowest)

	_, ok = Lowest(nil)
	assert.False(t, ok)
}

func TestAlignTestDieAreas(t *testing.T) {
	a := keepout(8, 8, 3, 5, 2, 1)
	b := keepout(10, 10, 4, 6, 2, 1)

	offset, strategy, err := DefaultAligner.Align(a, b)
	require.NoError(t, err)

	assert.Equal(t, Offset{DX: -1, DY: -1}, offset)
	assert.Equal(t, "lowest-test-die-area", strategy)
}

func TestAlignBottomRow(t *testing.T) {
	a := fill(4, 4, Pass)
	b := fill(4, 4, Pass)
	for x := 0; x < 4; x++ {
		b.Set(Coord{X: x, Y: 3}, Null, "")
	}

	offset, strategy, err := DefaultAligner.Align(a, b)
	require.NoError(t, err)

	assert.Equal(t, "bottom-row-center", strategy)
	assert.Equal(t, Offset{DX: 0, DY: 1}, offset)
}

func TestBottomRowCenterSkipsPlaceholders(t *testing.T) {
	m := fill(3, 5, Null)
	m.Set(Coord{X: 1, Y: 1}, Pass, "")
	m.Set(Coord{X: 2, Y: 1}, Defect, "")
	m.Set(Coord{X: 3, Y: 2}, FailCode, "")

	c, ok := BottomRowCenter{}.Fiducial(m)
	require.True(t, ok)

	assert.Equal(t, Coord{X: 2, Y: 1}, c)
}

func TestAlignFails(t *testing.T) {
	a := fill(4, 4, Pass)
	b := fill(4, 4, Null)

	_, _, err := DefaultAligner.Align(a, b)
	require.Error(t, err)

	var aerr *AlignmentError
	require.True(t, errors.As(err, &aerr))
	assert.Contains(t, aerr.Error(), "reference-centroid")
	assert.Contains(t, aerr.Error(), "bottom-row-center")
}
