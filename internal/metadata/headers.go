package metadata

import (
	"errors"
	"fmt"

	"xmlcreator/internal/sheet"
)

var (
	// ErrHeaderNotFound means a bound header text does not appear in the sheet.
	ErrHeaderNotFound = errors.New("header not found")
	// ErrMissingBinding means a field has no header text configured.
	ErrMissingBinding = errors.New("missing header binding")
)

// HeaderIndex records where each field's header cell sits. It is built once
// per run and never modified.
type HeaderIndex struct {
	cells map[Field]sheet.Coordinate
}

// BuildHeaderIndex finds the header cell for every field. Any field whose
// header cannot be located fails the whole index.
func BuildHeaderIndex(src sheet.Source, bindings Bindings) (HeaderIndex, error) {
	if err := bindings.Validate(); err != nil {
		return HeaderIndex{}, err
	}
	cells := make(map[Field]sheet.Coordinate, len(bindings.Headers))
	for _, field := range Fields() {
		text := bindings.Headers[field]
		coord, ok, err := src.Find(text)
		if err != nil {
			return HeaderIndex{}, fmt.Errorf("find header %q for %s: %w", text, field, err)
		}
		if !ok {
			return HeaderIndex{}, fmt.Errorf("field %s: %q: %w", field, text, ErrHeaderNotFound)
		}
		cells[field] = coord
	}
	return HeaderIndex{cells: cells}, nil
}

// Header returns the header coordinate for field.
func (h HeaderIndex) Header(field Field) (sheet.Coordinate, bool) {
	coord, ok := h.cells[field]
	return coord, ok
}

// Column returns the column holding field, or 0 when unknown.
func (h HeaderIndex) Column(field Field) int {
	return h.cells[field].Col
}
