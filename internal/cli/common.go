package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danieljhkim/androidfix/internal/clock"
	"github.com/danieljhkim/androidfix/internal/engine"
	"github.com/danieljhkim/androidfix/internal/fsops"
	"github.com/danieljhkim/androidfix/internal/hash"
)

// newLogger builds the zap logger. Logs go to stderr so they never mix with
// --json output.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, func(), error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	eng := engine.New(fsops.NewRealFS(), hash.NewSHA256Hasher(), &clock.RealClock{}, logger)
	return eng, func() { _ = logger.Sync() }, nil
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
