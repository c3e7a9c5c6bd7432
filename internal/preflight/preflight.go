package preflight

import (
	"fmt"
	"strings"

	"xmlcreator/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Output directory", cfg.Settings.OutputDir),
		CheckFileReadable("Spreadsheet", cfg.Spreadsheet.Name),
		CheckFileReadable("Rights registry", cfg.Settings.RightsFile),
	}
	if dir := strings.TrimSpace(cfg.Settings.LogDir); dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", dir))
	}
	return results
}

// Failures returns the failed results.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Error folds failed results into a single error, or nil when all passed.
func Error(results []Result) error {
	failed := Failures(results)
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, r := range failed {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
}
