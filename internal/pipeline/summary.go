package pipeline

import (
	"sort"
	"time"

	"xmlcreator/internal/metadata"
)

// Summary describes what a run did.
type Summary struct {
	RunID string
	// Done counts every cell that matched the done marker.
	Done int
	// Records counts complete rows handed to the builder.
	Records int
	Skipped map[metadata.Skip]int
	// Produced lists descriptor paths written by this run, in sheet order.
	Produced []string
	Existing int
	// Rejected counts records whose filename cannot name a descriptor.
	Rejected  int
	Delivered int
	Status    string
	Duration  time.Duration
}

// SkippedTotal returns the number of skipped done cells, excluding matches
// outside the render-status column.
func (s Summary) SkippedTotal() int {
	total := 0
	for skip, n := range s.Skipped {
		if skip == metadata.SkipWrongColumn {
			continue
		}
		total += n
	}
	return total
}

// SkipReasons returns the recorded skip reasons in a stable order.
func (s Summary) SkipReasons() []metadata.Skip {
	reasons := make([]metadata.Skip, 0, len(s.Skipped))
	for skip := range s.Skipped {
		reasons = append(reasons, skip)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
