// Package ledger keeps a SQLite history of pipeline runs: which descriptors
// each run produced and whether each one reached the delivery server.
//
// The ledger is an audit trail only. Deciding whether a descriptor needs to be
// produced stays with the descriptor package, which checks the output
// directory on disk.
package ledger
