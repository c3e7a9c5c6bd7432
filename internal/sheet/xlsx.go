package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrWorksheetNotFound is returned when the requested worksheet is absent from a workbook.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// OpenXLSX reads one worksheet of an XLSX workbook into a Grid. An empty
// worksheet name selects the first sheet.
func OpenXLSX(path, worksheet string) (*Grid, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	name, err := resolveWorksheet(book.GetSheetList(), worksheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rows, err := book.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", name, err)
	}
	return NewGrid(rows), nil
}

func resolveWorksheet(available []string, want string) (string, error) {
	want = strings.TrimSpace(want)
	if len(available) == 0 {
		return "", fmt.Errorf("workbook has no sheets: %w", ErrWorksheetNotFound)
	}
	if want == "" {
		return available[0], nil
	}
	for _, name := range available {
		if name == want {
			return name, nil
		}
	}
	return "", fmt.Errorf("%q (have %s): %w", want, strings.Join(available, ", "), ErrWorksheetNotFound)
}
