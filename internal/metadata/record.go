package metadata

import "strings"

// Record is the validated metadata of one finished video.
type Record struct {
	Title       string
	Description string
	Filename    string
	Keywords    []string
	Rights      []string
}

// Skip explains why a marked row produced no record.
type Skip int

const (
	SkipNone Skip = iota
	SkipWrongColumn
	SkipMissingTitle
	SkipMissingDescription
	SkipMissingFilename
	SkipMissingKeywords
	SkipNoRights
)

func (s Skip) String() string {
	switch s {
	case SkipNone:
		return "none"
	case SkipWrongColumn:
		return "wrong_column"
	case SkipMissingTitle:
		return "missing_title"
	case SkipMissingDescription:
		return "missing_description"
	case SkipMissingFilename:
		return "missing_filename"
	case SkipMissingKeywords:
		return "missing_keywords"
	case SkipNoRights:
		return "no_rights"
	default:
		return "unknown"
	}
}

// SplitKeywords splits a keyword cell on commas, trimming each keyword and
// dropping blanks.
func SplitKeywords(raw string) []string {
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}
