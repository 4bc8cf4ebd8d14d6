package engine

import (
	"time"

	"github.com/danieljhkim/androidfix/internal/gradle"
	"github.com/danieljhkim/androidfix/internal/namespace"
	"github.com/danieljhkim/androidfix/internal/planner"
	"github.com/danieljhkim/androidfix/internal/project"
)

// Subproject status values reported by Scan.
const (
	StatusDeclared       = "declared"
	StatusNeedsNamespace = "needs-namespace"
	StatusError          = "error"
)

// ScanRequest represents a request to scan a Flutter project.
type ScanRequest struct {
	// CWD is the current working directory, anywhere inside the project
	CWD string

	// ConfigPath is an explicit config file; empty means the default lookup
	ConfigPath string
}

// ScanResult represents the namespace decisions for a project.
type ScanResult struct {
	// Root is the Flutter project root
	Root string `json:"root"`

	// Project is the app name from pubspec.yaml
	Project string `json:"project"`

	// ConfigPath is the loaded config file, empty when defaults were used
	ConfigPath string `json:"configPath,omitempty"`

	// Settings are the compile settings forced on every subproject
	Settings gradle.Edits `json:"settings"`

	// GeneratedAt is when the scan ran
	GeneratedAt time.Time `json:"generatedAt"`

	// Entries are in subproject name order
	Entries []ScanEntry `json:"entries"`
}

// ScanEntry is the scan outcome for one subproject.
type ScanEntry struct {
	project.Subproject

	// BuildFile is the located build file, empty if none
	BuildFile string `json:"buildFile,omitempty"`

	// KTS is true for build.gradle.kts
	KTS bool `json:"kts"`

	// Info is what the build file declares
	Info gradle.BuildInfo `json:"info"`

	// ManifestFound reports whether src/main/AndroidManifest.xml exists
	ManifestFound bool `json:"manifestFound"`

	// Decision is the namespace the subproject would be assigned
	Decision namespace.Decision `json:"decision"`

	// Status is one of the Status constants
	Status string `json:"status"`

	// Error describes a scan failure
	Error string `json:"error,omitempty"`

	err  error
	text string
}

// NeedsNamespace reports whether the build file lacks a namespace.
func (s ScanEntry) NeedsNamespace() bool {
	return s.Status == StatusNeedsNamespace
}

// PlanRequest represents a request to plan build file fixes.
type PlanRequest struct {
	ScanRequest
}

// PlanResult represents a computed fix plan.
type PlanResult struct {
	// Scan is the scan the plan was built from
	Scan *ScanResult `json:"scan"`

	// Plan is the generated plan
	Plan *planner.FixPlan `json:"plan"`
}

// ApplyRequest represents a request to apply build file fixes.
type ApplyRequest struct {
	ScanRequest

	// Force skips conflicting subprojects instead of refusing
	Force bool

	// DryRun performs planning only without making changes
	DryRun bool
}

// ApplyResult represents the result of applying build file fixes.
type ApplyResult struct {
	// Plan is the generated plan
	Plan *planner.FixPlan `json:"plan"`

	// Applied is the list of operations that were executed (empty if DryRun)
	Applied []planner.Operation `json:"applied"`

	// Skipped lists subprojects skipped because of conflicts
	Skipped []string `json:"skipped"`
}

// CleanRequest represents a request to remove the redirected build directory.
type CleanRequest struct {
	// CWD is the current working directory, anywhere inside the project
	CWD string

	// DryRun reports what would be removed without removing it
	DryRun bool
}

// CleanResult represents the result of a clean.
type CleanResult struct {
	// Path is the build directory
	Path string `json:"path"`

	// Existed reports whether the directory existed
	Existed bool `json:"existed"`

	// Removed reports whether the directory was removed
	Removed bool `json:"removed"`
}
