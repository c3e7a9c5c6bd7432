package metadata_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlcreator/internal/metadata"
	"xmlcreator/internal/rights"
	"xmlcreator/internal/sheet"
)

func testBindings() metadata.Bindings {
	return metadata.Bindings{
		Headers: map[metadata.Field]string{
			metadata.FieldTitle:        "Title",
			metadata.FieldDescription:  "Description",
			metadata.FieldFilename:     "File Name",
			metadata.FieldKeywords:     "Keywords",
			metadata.FieldRights:       "Rights",
			metadata.FieldRenderStatus: "Render Status",
		},
		DoneMarker: "done",
	}
}

var header = []string{"Title", "Description", "File Name", "Keywords", "Rights", "Render Status"}

func newExtractor(t *testing.T, rows ...[]string) (metadata.Extractor, *sheet.Grid) {
	t.Helper()
	grid := sheet.NewGrid(append([][]string{header}, rows...))
	index, err := metadata.BuildHeaderIndex(grid, testBindings())
	require.NoError(t, err)
	return metadata.Extractor{
		Index:    index,
		Registry: rights.NewRegistry("news", "sports", "weather"),
		Source:   grid,
	}, grid
}

func TestBuildHeaderIndex(t *testing.T) {
	grid := sheet.NewGrid([][]string{
		{"", "notes"},
		{"Render Status", "Title", "Description", "File Name", "Keywords", "Rights"},
	})

	index, err := metadata.BuildHeaderIndex(grid, testBindings())
	require.NoError(t, err)

	assert.Equal(t, 1, index.Column(metadata.FieldRenderStatus))
	assert.Equal(t, 6, index.Column(metadata.FieldRights))
	coord, ok := index.Header(metadata.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, sheet.Coordinate{Row: 2, Col: 2}, coord)
}

func TestBuildHeaderIndexMissingHeaderIsFatal(t *testing.T) {
	grid := sheet.NewGrid([][]string{{"Title", "Description", "File Name", "Keywords", "Render Status"}})

	_, err := metadata.BuildHeaderIndex(grid, testBindings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrHeaderNotFound))
	assert.Contains(t, err.Error(), "rights")
}

func TestBuildHeaderIndexMissingBinding(t *testing.T) {
	bindings := testBindings()
	delete(bindings.Headers, metadata.FieldKeywords)

	_, err := metadata.BuildHeaderIndex(sheet.NewGrid([][]string{header}), bindings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrMissingBinding))
}

func TestScanDone(t *testing.T) {
	grid := sheet.NewGrid([][]string{
		header,
		{"A", "a", "a.mp4", "k", "news", "done"},
		{"done", "b", "b.mp4", "k", "news", "pending"},
		{"C", "c", "c.mp4", "k", "news", "done"},
	})

	coords, err := metadata.ScanDone(grid, "done")
	require.NoError(t, err)
	assert.Equal(t, []sheet.Coordinate{
		{Row: 2, Col: 6},
		{Row: 3, Col: 1},
		{Row: 4, Col: 6},
	}, coords)
}

func TestExtractCompleteRow(t *testing.T) {
	extractor, _ := newExtractor(t,
		[]string{"Big Game", "Highlights", "bg.mp4", "sports, highlights", "news, sports", "done"},
	)

	record, skip, err := extractor.Extract(sheet.Coordinate{Row: 2, Col: 6})
	require.NoError(t, err)
	assert.Equal(t, metadata.SkipNone, skip)
	assert.Equal(t, metadata.Record{
		Title:       "Big Game",
		Description: "Highlights",
		Filename:    "bg.mp4",
		Keywords:    []string{"sports", "highlights"},
		Rights:      []string{"news", "sports"},
	}, record)
}

func TestExtractSkips(t *testing.T) {
	cases := []struct {
		name string
		row  []string
		at   sheet.Coordinate
		want metadata.Skip
	}{
		{name: "marker in other column", row: []string{"done", "d", "f.mp4", "k", "news", "done"}, at: sheet.Coordinate{Row: 2, Col: 1}, want: metadata.SkipWrongColumn},
		{name: "no title", row: []string{"", "d", "f.mp4", "k", "news", "done"}, want: metadata.SkipMissingTitle},
		{name: "no description", row: []string{"t", "", "f.mp4", "k", "news", "done"}, want: metadata.SkipMissingDescription},
		{name: "no filename", row: []string{"t", "d", "", "k", "news", "done"}, want: metadata.SkipMissingFilename},
		{name: "no keywords", row: []string{"t", "d", "f.mp4", "", "news", "done"}, want: metadata.SkipMissingKeywords},
		{name: "only commas in keywords", row: []string{"t", "d", "f.mp4", " , ", "news", "done"}, want: metadata.SkipMissingKeywords},
		{name: "unknown rights", row: []string{"t", "d", "f.mp4", "k", "unknown", "done"}, want: metadata.SkipNoRights},
		{name: "blank rights", row: []string{"t", "d", "f.mp4", "k", "", "done"}, want: metadata.SkipNoRights},
		{name: "short row", row: []string{"t", "d", "f.mp4"}, want: metadata.SkipMissingKeywords},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			extractor, _ := newExtractor(t, tc.row)
			at := tc.at
			if at == (sheet.Coordinate{}) {
				at = sheet.Coordinate{Row: 2, Col: 6}
			}
			record, skip, err := extractor.Extract(at)
			require.NoError(t, err)
			assert.Equal(t, tc.want, skip)
			assert.Equal(t, metadata.Record{}, record)
		})
	}
}

func TestExtractMultilineRights(t *testing.T) {
	extractor, _ := newExtractor(t,
		[]string{"t", "d", "f.mp4", "k", "news\nunknown\nweather", "done"},
	)

	record, skip, err := extractor.Extract(sheet.Coordinate{Row: 2, Col: 6})
	require.NoError(t, err)
	require.Equal(t, metadata.SkipNone, skip)
	assert.Equal(t, []string{"news", "weather"}, record.Rights)
}

func TestSkipString(t *testing.T) {
	assert.Equal(t, "wrong_column", metadata.SkipWrongColumn.String())
	assert.Equal(t, "no_rights", metadata.SkipNoRights.String())
	assert.Equal(t, "unknown", metadata.Skip(99).String())
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"sports", "highlights"}, metadata.SplitKeywords(" sports ,highlights,"))
	assert.Nil(t, metadata.SplitKeywords(""))
	assert.Nil(t, metadata.SplitKeywords(" , "))
}
