package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/danieljhkim/androidfix/internal/planner"
)

// Plan scans the project and computes the build file fixes it needs.
func (e *Engine) Plan(ctx context.Context, req *PlanRequest) (*PlanResult, error) {
	scan, err := e.Scan(ctx, &req.ScanRequest)
	if err != nil {
		return nil, err
	}

	targets := make([]planner.Target, 0, len(scan.Entries))
	for _, entry := range scan.Entries {
		targets = append(targets, planner.Target{
			Subproject: entry.Name,
			Dir:        entry.Dir,
			BuildFile:  entry.BuildFile,
			KTS:        entry.KTS,
			Text:       entry.text,
			Info:       entry.Info,
			Decision:   entry.Decision,
			Err:        entry.err,
		})
	}

	plan := planner.BuildFixPlan(targets, scan.Settings, e.hasher)
	e.logger.Info("Planned build file fixes",
		zap.Int("operations", len(plan.Operations)),
		zap.Int("conflicts", len(plan.Conflicts)),
		zap.Int("upToDate", len(plan.UpToDate)))

	return &PlanResult{Scan: scan, Plan: plan}, nil
}
