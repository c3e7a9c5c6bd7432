// Package sheet exposes the tabular data source the pipeline reads from.
//
// A Source answers two questions: what value sits at a 1-based (row, column)
// coordinate, and where does a given value appear. Grid is the in-memory
// implementation every loader produces; CSV and XLSX exports of the production
// spreadsheet are read once into a Grid so the rest of the run performs no
// further I/O against the source file.
package sheet
