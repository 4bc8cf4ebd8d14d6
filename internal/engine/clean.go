package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/androidfix/internal/project"
)

// Clean removes the redirected root build directory, which holds the
// output of the app and every subproject.
func (e *Engine) Clean(ctx context.Context, req *CleanRequest) (*CleanResult, error) {
	root, err := e.findRoot(req.CWD)
	if err != nil {
		return nil, err
	}

	result := &CleanResult{Path: project.BuildRoot(root)}
	exists, err := e.fs.Exists(result.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to check build directory: %w", err)
	}
	result.Existed = exists
	if !exists || req.DryRun {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.fs.RemoveAll(result.Path); err != nil {
		return nil, fmt.Errorf("failed to remove build directory: %w", err)
	}
	result.Removed = true
	e.logger.Info("Removed build directory", zap.String("path", result.Path))

	return result, nil
}
