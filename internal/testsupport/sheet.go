package testsupport

import (
	"bytes"
	"encoding/csv"

	"xmlcreator/internal/sheet"
)

// Row is one video row in a SheetBuilder.
type Row struct {
	Title       string
	Description string
	Filename    string
	Keywords    string
	Rights      string
	Status      string
}

// DoneRow returns a complete row marked done.
func DoneRow(title, filename string) Row {
	return Row{
		Title:       title,
		Description: title + " description",
		Filename:    filename,
		Keywords:    "news, local",
		Rights:      "Web",
		Status:      DoneMarker,
	}
}

// SheetBuilder assembles an in-memory sheet with a header row followed by
// video rows. Columns follow the default header order unless Columns is set.
type SheetBuilder struct {
	// Preamble rows are placed above the header row.
	Preamble [][]string
	Headers  []string
	rows     [][]string
}

// NewSheet returns a builder with the default headers.
func NewSheet() *SheetBuilder {
	return &SheetBuilder{
		Headers: []string{
			HeaderTitle,
			HeaderDescription,
			HeaderFilename,
			HeaderKeywords,
			HeaderRights,
			HeaderRenderStatus,
		},
	}
}

// Add appends video rows.
func (b *SheetBuilder) Add(rows ...Row) *SheetBuilder {
	for _, r := range rows {
		b.rows = append(b.rows, []string{r.Title, r.Description, r.Filename, r.Keywords, r.Rights, r.Status})
	}
	return b
}

// AddRaw appends a row verbatim.
func (b *SheetBuilder) AddRaw(cells ...string) *SheetBuilder {
	b.rows = append(b.rows, append([]string(nil), cells...))
	return b
}

// Matrix returns every row including the preamble and header.
func (b *SheetBuilder) Matrix() [][]string {
	out := make([][]string, 0, len(b.Preamble)+1+len(b.rows))
	out = append(out, b.Preamble...)
	out = append(out, b.Headers)
	out = append(out, b.rows...)
	return out
}

// Grid returns the sheet as an in-memory source.
func (b *SheetBuilder) Grid() *sheet.Grid {
	return sheet.NewGrid(b.Matrix())
}

// CSV renders the sheet as CSV text.
func (b *SheetBuilder) CSV() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.WriteAll(b.Matrix())
	return buf.String()
}
