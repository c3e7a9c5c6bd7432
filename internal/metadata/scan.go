package metadata

import (
	"fmt"

	"xmlcreator/internal/sheet"
)

// ScanDone returns every cell whose value equals marker, in sheet scan order.
// Matches outside the render-status column are kept here; Extract discards them.
func ScanDone(src sheet.Source, marker string) ([]sheet.Coordinate, error) {
	coords, err := src.FindAll(marker)
	if err != nil {
		return nil, fmt.Errorf("scan for %q: %w", marker, err)
	}
	return coords, nil
}
