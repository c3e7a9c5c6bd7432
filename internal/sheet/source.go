package sheet

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidCoordinate is returned for reads outside the 1-based address space.
var ErrInvalidCoordinate = errors.New("invalid cell coordinate")

// Coordinate addresses a single cell. Row and Col are 1-based.
type Coordinate struct {
	Row int
	Col int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("R%dC%d", c.Row, c.Col)
}

// Valid reports whether both components are positive.
func (c Coordinate) Valid() bool {
	return c.Row > 0 && c.Col > 0
}

// Source is the read capability the pipeline needs from a spreadsheet.
type Source interface {
	// Cell returns the value at (row, col). Cells beyond the populated area read as "".
	Cell(row, col int) (string, error)
	// Find returns the first coordinate whose value equals value, in scan order.
	Find(value string) (Coordinate, bool, error)
	// FindAll returns every coordinate whose value equals value, in scan order
	// (top to bottom, left to right within a row).
	FindAll(value string) ([]Coordinate, error)
}

// Grid is an in-memory Source. Rows may have different lengths.
type Grid struct {
	rows [][]string
}

var _ Source = (*Grid)(nil)

// NewGrid copies rows into a Grid. rows[0] is spreadsheet row 1.
func NewGrid(rows [][]string) *Grid {
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return &Grid{rows: copied}
}

// Rows reports the number of populated rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

func (g *Grid) Cell(row, col int) (string, error) {
	coord := Coordinate{Row: row, Col: col}
	if !coord.Valid() {
		return "", fmt.Errorf("read %s: %w", coord, ErrInvalidCoordinate)
	}
	if g == nil || row > len(g.rows) {
		return "", nil
	}
	cells := g.rows[row-1]
	if col > len(cells) {
		return "", nil
	}
	return cells[col-1], nil
}

func (g *Grid) Find(value string) (Coordinate, bool, error) {
	var found Coordinate
	ok := false
	g.scan(value, func(c Coordinate) bool {
		found, ok = c, true
		return false
	})
	return found, ok, nil
}

func (g *Grid) FindAll(value string) ([]Coordinate, error) {
	var matches []Coordinate
	g.scan(value, func(c Coordinate) bool {
		matches = append(matches, c)
		return true
	})
	return matches, nil
}

func (g *Grid) scan(value string, visit func(Coordinate) bool) {
	if g == nil {
		return
	}
	want := normalize(value)
	for r, cells := range g.rows {
		for c, cell := range cells {
			if normalize(cell) != want {
				continue
			}
			if !visit(Coordinate{Row: r + 1, Col: c + 1}) {
				return
			}
		}
	}
}

// normalize folds composed and decomposed spellings of the same text together.
// No trimming or case folding: matches stay exact otherwise.
func normalize(value string) string {
	if isASCII(value) {
		return value
	}
	return norm.NFC.String(value)
}

func isASCII(value string) bool {
	return strings.IndexFunc(value, func(r rune) bool { return r > 0x7f }) < 0
}
