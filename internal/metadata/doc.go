// Package metadata turns spreadsheet rows marked done into validated video
// metadata records.
//
// The flow is: BuildHeaderIndex locates the header cell of every semantic
// field, ScanDone finds the cells holding the done marker, and an Extractor
// reads the sibling cells of each marked row. A row yields a Record only when
// every required field is present and at least one right resolves against the
// registry; otherwise Extract reports the Skip reason and no record.
package metadata
