// Package preflight provides readiness checks for the filesystem paths a run
// depends on.
//
// The CLI calls RunAll after loading configuration and before any sheet row
// is processed. A failed check aborts the run so no partial descriptor set is
// produced against an unwritable output directory.
package preflight
