package sheet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheetName string, cells map[string]string) string {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	if sheetName != "Sheet1" {
		require.NoError(t, book.SetSheetName("Sheet1", sheetName))
	}
	for axis, value := range cells {
		require.NoError(t, book.SetCellValue(sheetName, axis, value))
	}
	path := filepath.Join(t.TempDir(), "videos.xlsx")
	require.NoError(t, book.SaveAs(path))
	return path
}

func TestOpenXLSXReadsNamedWorksheet(t *testing.T) {
	path := writeWorkbook(t, "Videos", map[string]string{
		"A1": "Title",
		"C1": "Render Status",
		"A2": "Big Game",
		"C2": "done",
	})

	grid, err := OpenXLSX(path, "Videos")
	require.NoError(t, err)

	matches, err := grid.FindAll("done")
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{{Row: 2, Col: 3}}, matches)

	value, err := grid.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Big Game", value)
}

func TestOpenXLSXDefaultsToFirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", map[string]string{"B2": "done"})

	grid, err := Open(path, "")
	require.NoError(t, err)

	coord, ok, err := grid.Find("done")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Row: 2, Col: 2}, coord)
}

func TestOpenXLSXUnknownWorksheet(t *testing.T) {
	path := writeWorkbook(t, "Videos", map[string]string{"A1": "Title"})

	_, err := OpenXLSX(path, "Archive")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWorksheetNotFound))
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "videos.ods"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}
