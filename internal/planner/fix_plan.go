package planner

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/androidfix/internal/gradle"
	"github.com/danieljhkim/androidfix/internal/hash"
	"github.com/danieljhkim/androidfix/internal/namespace"
)

// Target is one scanned subproject as seen by the planner.
type Target struct {
	// Subproject is the Gradle project name
	Subproject string

	// Dir is the subproject directory
	Dir string

	// BuildFile is the located build file, empty if none was found
	BuildFile string

	// KTS selects Kotlin DSL syntax
	KTS bool

	// Text is the build file content at scan time
	Text string

	// Info is what the build file declares
	Info gradle.BuildInfo

	// Decision is the resolved namespace
	Decision namespace.Decision

	// Err is the scan error for this subproject, if any
	Err error
}

// BuildFixPlan generates a deterministic plan to bring every target in line
// with settings. settings.Namespace is ignored; each target's own decision
// supplies the namespace.
func BuildFixPlan(targets []Target, settings gradle.Edits, hasher hash.Hasher) *FixPlan {
	plan := NewFixPlan()

	for _, t := range targets {
		if t.Err != nil {
			plan.AddConflict(conflictFor(t, t.Err))
			continue
		}
		if !t.Info.HasAndroidBlock {
			plan.AddConflict(conflictFor(t, gradle.ErrNoAndroidBlock))
			continue
		}

		want := settings
		want.Namespace = t.Decision.ResolvedNamespace
		edits := gradle.Diff(t.Info, want)
		if edits.Empty() {
			plan.UpToDate = append(plan.UpToDate, t.Subproject)
			continue
		}

		content, err := gradle.Patch(t.Text, t.KTS, edits)
		if err != nil {
			plan.AddConflict(conflictFor(t, err))
			continue
		}

		plan.AddOperation(Operation{
			Type:       OpPatchBuildFile,
			Subproject: t.Subproject,
			BuildFile:  t.BuildFile,
			Hash:       hasher.Sum([]byte(t.Text)),
			Edits:      edits,
			Decision:   t.Decision,
			Content:    content,
		})
	}

	return plan
}

func conflictFor(t Target, err error) Conflict {
	c := Conflict{
		Subproject: t.Subproject,
		Path:       t.BuildFile,
	}
	if c.Path == "" {
		c.Path = t.Dir
	}
	switch {
	case errors.Is(err, gradle.ErrNoBuildFile):
		c.Reason = "No build.gradle or build.gradle.kts in subproject"
	case errors.Is(err, gradle.ErrNoAndroidBlock):
		c.Reason = "Build file has no android {} block"
	default:
		c.Reason = fmt.Sprintf("Failed to scan subproject: %v", err)
	}
	return c
}
