package planner

import (
	"context"
	"fmt"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// EntryFailure records one plan entry the driver rejected.
type EntryFailure struct {
	Entry interfaces.PlanEntry
	Err   error
}

func (f EntryFailure) Error() string {
	return fmt.Sprintf("planner: place %s after block %d: %v", f.Entry.Artifact.Kind, f.Entry.BlockIndex, f.Err)
}

func (f EntryFailure) Unwrap() error {
	return f.Err
}

// ApplyReport summarises one plan application.
type ApplyReport struct {
	Attempted int
	Placed    int
	Clamped   int
	Failures  []EntryFailure
}

// Apply executes the plan against the driver in plan order. A failing entry
// is recorded and skipped; the remaining entries still run so one bad
// placement cannot sink the whole publish. Anchors beyond the current body
// clamp to the last block, which appends the artifact at the end.
func (p *Planner) Apply(ctx context.Context, driver interfaces.DestinationDriver, plan interfaces.InsertionPlan) ApplyReport {
	report := ApplyReport{Attempted: len(plan)}

	for _, entry := range plan {
		if err := ctx.Err(); err != nil {
			report.Failures = append(report.Failures, EntryFailure{Entry: entry, Err: err})
			continue
		}

		count, err := driver.CountBlocks(ctx)
		if err != nil {
			report.Failures = append(report.Failures, EntryFailure{Entry: entry, Err: err})
			continue
		}

		anchor := entry.BlockIndex
		if anchor >= count {
			anchor = count - 1
			report.Clamped++
		}
		if anchor < -1 {
			anchor = -1
		}

		if err := driver.InsertAfter(ctx, anchor, entry.Artifact); err != nil {
			report.Failures = append(report.Failures, EntryFailure{Entry: entry, Err: err})
			p.logger.Warn("plan entry failed",
				"kind", string(entry.Artifact.Kind),
				"block_index", entry.BlockIndex,
				"error", err,
			)
			continue
		}
		report.Placed++
	}

	return report
}
