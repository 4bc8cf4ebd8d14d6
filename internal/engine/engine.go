// Package engine provides the core business logic for androidfix operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It coordinates project discovery, configuration,
// namespace resolution, planning and build file rewrites.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Scan: Resolves a namespace decision for every subproject
//   - Plan/Apply: Computes and writes build file fixes
//   - Clean: Removes the redirected build directory
package engine

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/danieljhkim/androidfix/internal/clock"
	"github.com/danieljhkim/androidfix/internal/config"
	"github.com/danieljhkim/androidfix/internal/fsops"
	"github.com/danieljhkim/androidfix/internal/hash"
	"github.com/danieljhkim/androidfix/internal/project"
)

// Engine orchestrates all androidfix operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	clock  clock.Clock
	logger *zap.Logger
}

// New creates a new Engine with the given dependencies. A nil logger
// discards all log output.
func New(fs fsops.FS, hasher hash.Hasher, clk clock.Clock, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fs:     fs,
		hasher: hasher,
		clock:  clk,
		logger: logger,
	}
}

// findRoot locates the Flutter project containing cwd.
func (e *Engine) findRoot(cwd string) (string, error) {
	root, err := project.FindRoot(e.fs, cwd)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFlutterProject, err)
	}
	return root, nil
}

// load discovers the project containing cwd and its configuration.
func (e *Engine) load(cwd, configPath string) (*project.Project, *config.Config, error) {
	root, err := e.findRoot(cwd)
	if err != nil {
		return nil, nil, err
	}

	path := config.Resolve(configPath, root)
	// A path named by flag or environment must exist.
	required := configPath != "" || os.Getenv(config.EnvConfig) != ""
	cfg, err := config.Load(e.fs, path, required)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if cfg.Path != "" {
		e.logger.Debug("Loaded config", zap.String("path", cfg.Path))
	}

	proj, err := project.Discover(e.fs, root, cfg.ExtraSubprojects)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover subprojects: %w", err)
	}
	e.logger.Debug("Discovered project",
		zap.String("root", proj.Root),
		zap.String("name", proj.Name),
		zap.Int("subprojects", len(proj.Subprojects)))

	return proj, cfg, nil
}
