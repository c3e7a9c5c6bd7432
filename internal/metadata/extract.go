package metadata

import (
	"fmt"

	"xmlcreator/internal/rights"
	"xmlcreator/internal/sheet"
)

// Extractor reads the metadata of rows marked done.
type Extractor struct {
	Index    HeaderIndex
	Registry rights.Registry
	Source   sheet.Source
}

// Extract reads the row of a done-marker cell. It returns the record and
// SkipNone when the row is complete, or a zero Record and the reason it was
// skipped. Errors are reserved for failed reads.
func (e Extractor) Extract(done sheet.Coordinate) (Record, Skip, error) {
	if done.Col != e.Index.Column(FieldRenderStatus) {
		return Record{}, SkipWrongColumn, nil
	}

	values := make(map[Field]string, 5)
	for _, field := range []Field{FieldTitle, FieldDescription, FieldFilename, FieldKeywords, FieldRights} {
		value, err := e.Source.Cell(done.Row, e.Index.Column(field))
		if err != nil {
			return Record{}, SkipNone, fmt.Errorf("read %s at row %d: %w", field, done.Row, err)
		}
		values[field] = value
	}

	switch {
	case values[FieldTitle] == "":
		return Record{}, SkipMissingTitle, nil
	case values[FieldDescription] == "":
		return Record{}, SkipMissingDescription, nil
	case values[FieldFilename] == "":
		return Record{}, SkipMissingFilename, nil
	}

	keywords := SplitKeywords(values[FieldKeywords])
	if len(keywords) == 0 {
		return Record{}, SkipMissingKeywords, nil
	}

	resolved, ok := rights.Resolve(values[FieldRights], e.Registry)
	if !ok {
		return Record{}, SkipNoRights, nil
	}

	return Record{
		Title:       values[FieldTitle],
		Description: values[FieldDescription],
		Filename:    values[FieldFilename],
		Keywords:    keywords,
		Rights:      resolved,
	}, SkipNone, nil
}
