package sheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridFindAllScanOrder(t *testing.T) {
	grid := NewGrid([][]string{
		{"Title", "Status", "done"},
		{"a", "done"},
		{"done", "", "x", "done"},
	})

	matches, err := grid.FindAll("done")
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{
		{Row: 1, Col: 3},
		{Row: 2, Col: 2},
		{Row: 3, Col: 1},
		{Row: 3, Col: 4},
	}, matches)
}

func TestGridFindReturnsFirstMatch(t *testing.T) {
	grid := NewGrid([][]string{
		{"", "Title"},
		{"Title"},
	})

	coord, ok, err := grid.Find("Title")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Row: 1, Col: 2}, coord)

	_, ok, err = grid.Find("Rights")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGridMatchesExactly(t *testing.T) {
	grid := NewGrid([][]string{{"Done", " done", "done "}})

	matches, err := grid.FindAll("done")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGridMatchesAcrossUnicodeForms(t *testing.T) {
	composed := "Caf\u00e9"
	decomposed := "Cafe\u0301"
	grid := NewGrid([][]string{{decomposed}})

	coord, ok, err := grid.Find(composed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Row: 1, Col: 1}, coord)
}

func TestGridCellOutsidePopulatedArea(t *testing.T) {
	grid := NewGrid([][]string{{"a", "b"}, {"c"}})

	value, err := grid.Cell(2, 2)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	value, err = grid.Cell(9, 1)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	value, err = grid.Cell(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", value)
}

func TestGridCellRejectsNonPositiveCoordinates(t *testing.T) {
	grid := NewGrid(nil)
	_, err := grid.Cell(0, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))
}

func TestNewGridCopiesInput(t *testing.T) {
	rows := [][]string{{"a"}}
	grid := NewGrid(rows)
	rows[0][0] = "changed"

	value, err := grid.Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", value)
}
