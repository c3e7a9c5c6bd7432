package metadata

import (
	"fmt"
	"strings"
)

// Field names a semantic spreadsheet column.
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldFilename     Field = "filename"
	FieldKeywords     Field = "keywords"
	FieldRights       Field = "rights"
	FieldRenderStatus Field = "renderStatus"
)

// Fields lists every field the header index must resolve, in a stable order.
func Fields() []Field {
	return []Field{
		FieldTitle,
		FieldDescription,
		FieldFilename,
		FieldKeywords,
		FieldRights,
		FieldRenderStatus,
	}
}

// Bindings maps each field to the header text that labels its column, plus the
// value that marks a row as done.
type Bindings struct {
	Headers    map[Field]string
	DoneMarker string
}

// Validate reports the first field without a header binding, or a blank marker.
func (b Bindings) Validate() error {
	for _, field := range Fields() {
		if strings.TrimSpace(b.Headers[field]) == "" {
			return fmt.Errorf("field %q: %w", field, ErrMissingBinding)
		}
	}
	if strings.TrimSpace(b.DoneMarker) == "" {
		return fmt.Errorf("done marker: %w", ErrMissingBinding)
	}
	return nil
}
