package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/androidfix/internal/planner"
)

// Apply patches every planned build file.
//
// Algorithm steps:
// 1. Scan and plan
// 2. Preflight checks (conflicts refuse the apply unless Force)
// 3. For each operation, verify the build file is unchanged since planning
// 4. Write the patched build file atomically (if not DryRun)
// 5. Return result
func (e *Engine) Apply(ctx context.Context, req *ApplyRequest) (*ApplyResult, error) {
	planned, err := e.Plan(ctx, &PlanRequest{ScanRequest: req.ScanRequest})
	if err != nil {
		return nil, err
	}
	plan := planned.Plan

	result := &ApplyResult{
		Plan:    plan,
		Applied: []planner.Operation{},
		Skipped: []string{},
	}
	for _, c := range plan.Conflicts {
		result.Skipped = append(result.Skipped, c.Subproject)
	}

	if plan.HasConflicts() && !req.Force {
		return result, fmt.Errorf("%w: %d conflicts detected", ErrConflict, len(plan.Conflicts))
	}

	if req.DryRun {
		return result, nil
	}

	for _, op := range plan.Operations {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := e.executeOperation(op); err != nil {
			return result, fmt.Errorf("failed to patch %s: %w", op.Subproject, err)
		}
		result.Applied = append(result.Applied, op)
		e.logger.Info("Patched build file",
			zap.String("subproject", op.Subproject),
			zap.String("path", op.BuildFile),
			zap.String("namespace", op.Edits.Namespace))
	}

	return result, nil
}

// executeOperation executes a single operation.
func (e *Engine) executeOperation(op planner.Operation) error {
	switch op.Type {
	case planner.OpPatchBuildFile:
		return e.executePatch(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// executePatch rewrites a build file, refusing if it drifted since planning.
func (e *Engine) executePatch(op planner.Operation) error {
	current, err := e.fs.ReadFile(op.BuildFile)
	if err != nil {
		return fmt.Errorf("failed to read build file: %w", err)
	}
	if e.hasher.Sum(current) != op.Hash {
		return fmt.Errorf("%w: %s changed since it was planned", ErrDrift, op.BuildFile)
	}

	info, err := e.fs.Stat(op.BuildFile)
	if err != nil {
		return fmt.Errorf("failed to stat build file: %w", err)
	}
	if err := e.fs.AtomicWrite(op.BuildFile, []byte(op.Content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write build file: %w", err)
	}
	return nil
}
