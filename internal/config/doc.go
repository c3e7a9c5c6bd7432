// Package config loads, normalizes, and validates xmlcreator configuration.
//
// Three inputs feed a run: the spreadsheet configuration (settings, sheet
// location, header bindings, done marker), the rights registry, and the
// delivery server configuration. Each may be written as YAML or TOML; the
// decoder is chosen by file extension. Relative paths are resolved against the
// directory of the file that names them, and tilde shortcuts are expanded, so
// downstream packages only ever see absolute paths.
package config
