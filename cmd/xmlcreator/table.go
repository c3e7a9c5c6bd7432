package main

import (
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"xmlcreator/internal/pipeline"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderSummaryTable lists produced descriptors with their delivery state.
// Uploads run in order, so the first Delivered entries are the delivered ones
// and, when the run failed, the next one is the upload that failed.
func renderSummaryTable(summary pipeline.Summary, runErr error) string {
	rows := make([][]string, 0, len(summary.Produced))
	for i, path := range summary.Produced {
		state := "delivered"
		switch {
		case i < summary.Delivered:
		case i == summary.Delivered && runErr != nil:
			state = "failed"
		default:
			state = "not sent"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), filepath.Base(path), state})
	}
	return renderTable(
		[]string{"#", "Descriptor", "Delivery"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	)
}
