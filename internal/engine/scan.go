package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/danieljhkim/androidfix/internal/gradle"
	"github.com/danieljhkim/androidfix/internal/manifest"
	"github.com/danieljhkim/androidfix/internal/namespace"
	"github.com/danieljhkim/androidfix/internal/project"
)

// Scan resolves a namespace decision for every subproject of the project
// containing req.CWD. Subprojects are scanned in parallel, bounded by the
// configured worker count; entries keep discovery order.
//
// A subproject that cannot be read is reported with StatusError rather
// than failing the scan.
func (e *Engine) Scan(ctx context.Context, req *ScanRequest) (*ScanResult, error) {
	proj, cfg, err := e.load(req.CWD, req.ConfigPath)
	if err != nil {
		return nil, err
	}

	resolver := cfg.Resolver()
	entries := make([]ScanEntry, len(proj.Subprojects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, sp := range proj.Subprojects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = e.scanSubproject(sp, resolver)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	return &ScanResult{
		Root:       proj.Root,
		Project:    proj.Name,
		ConfigPath: cfg.Path,
		Settings: gradle.Edits{
			CompileSdk:  cfg.CompileSdk,
			JavaVersion: cfg.JavaVersion,
			JvmTarget:   cfg.JvmTarget,
		},
		GeneratedAt: e.clock.Now(),
		Entries:     entries,
	}, nil
}

// scanSubproject reads one subproject's manifest and build file and
// resolves its namespace.
func (e *Engine) scanSubproject(sp project.Subproject, resolver *namespace.Resolver) ScanEntry {
	entry := ScanEntry{Subproject: sp}

	text, found, err := manifest.Read(e.fs, sp.Dir)
	if err != nil {
		// An unreadable manifest falls through to the name-based rules.
		e.logger.Warn("Ignoring unreadable manifest",
			zap.String("subproject", sp.Name),
			zap.Error(err))
	}
	entry.ManifestFound = found
	entry.Decision = resolver.Decide(sp.Name, text)

	path, kts, buildText, info, err := gradle.ReadInfo(e.fs, sp.Dir)
	if err != nil {
		entry.Status = StatusError
		entry.Error = err.Error()
		entry.err = err
		e.logger.Debug("Subproject scan failed",
			zap.String("subproject", sp.Name),
			zap.Error(err))
		return entry
	}

	entry.BuildFile = path
	entry.KTS = kts
	entry.Info = info
	entry.text = buildText

	switch {
	case !info.HasAndroidBlock:
		entry.Status = StatusError
		entry.err = gradle.ErrNoAndroidBlock
		entry.Error = entry.err.Error()
	case info.Namespace == "":
		entry.Status = StatusNeedsNamespace
	default:
		entry.Status = StatusDeclared
	}

	e.logger.Debug("Scanned subproject",
		zap.String("subproject", sp.Name),
		zap.String("status", entry.Status),
		zap.String("namespace", entry.Decision.ResolvedNamespace),
		zap.String("source", string(entry.Decision.Source)))

	return entry
}
