package planner

import (
	"github.com/danieljhkim/androidfix/internal/gradle"
	"github.com/danieljhkim/androidfix/internal/namespace"
)

// FixPlan represents a plan to patch subproject build files.
type FixPlan struct {
	// Operations is the ordered list of operations to execute
	Operations []Operation `json:"operations"`

	// Conflicts is a list of detected conflicts (empty if no conflicts)
	Conflicts []Conflict `json:"conflicts"`

	// UpToDate lists subprojects that need no edits
	UpToDate []string `json:"upToDate"`
}

// Operation represents a single build file rewrite.
type Operation struct {
	// Type is the operation type
	Type string `json:"type"`

	// Subproject is the Gradle project name
	Subproject string `json:"subproject"`

	// BuildFile is the absolute path of the build file to rewrite
	BuildFile string `json:"buildFile"`

	// Hash is the content hash the edit was planned against
	Hash string `json:"hash"`

	// Edits are the changes being made
	Edits gradle.Edits `json:"edits"`

	// Decision is the namespace decision for the subproject
	Decision namespace.Decision `json:"decision"`

	// Content is the patched build file text
	Content string `json:"-"`
}

// Conflict represents a subproject that cannot be patched.
type Conflict struct {
	// Subproject is the Gradle project name
	Subproject string `json:"subproject"`

	// Path is the subproject directory or build file
	Path string `json:"path"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason"`
}

// Operation type constants
const (
	OpPatchBuildFile = "patch_build_file"
)

// NewFixPlan creates a new empty FixPlan.
func NewFixPlan() *FixPlan {
	return &FixPlan{
		Operations: []Operation{},
		Conflicts:  []Conflict{},
		UpToDate:   []string{},
	}
}

// HasConflicts returns true if the plan has any conflicts.
func (p *FixPlan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddOperation adds an operation to the plan.
func (p *FixPlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddConflict adds a conflict to the plan.
func (p *FixPlan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// Conflicted reports whether subproject has a conflict in the plan.
func (p *FixPlan) Conflicted(subproject string) bool {
	for _, c := range p.Conflicts {
		if c.Subproject == subproject {
			return true
		}
	}
	return false
}
