package sheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Open loads the spreadsheet export at path, choosing the reader by extension.
// worksheet only applies to workbook formats.
func Open(path, worksheet string) (*Grid, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return OpenCSV(path)
	case ".xlsx", ".xlsm":
		return OpenXLSX(path, worksheet)
	default:
		return nil, fmt.Errorf("open sheet %s: unsupported extension %q", path, ext)
	}
}
