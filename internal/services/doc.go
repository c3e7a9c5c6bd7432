// Package services defines shared helpers consumed by the pipeline stages and
// the external integrations (delivery, notifications, ledger).
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper so the CLI can tell a
//     configuration problem from a delivery failure.
package services
