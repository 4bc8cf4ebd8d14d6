// Package planner handles the planning phase of build file fixes.
//
// The planner turns scanned subprojects into a deterministic FixPlan: one
// patch operation per build file that needs edits, in subproject order.
// It detects conflicts (missing build files, build files without an
// android block) and never touches the filesystem itself.
//
// Key responsibilities:
//   - Compute the edits each subproject still needs
//   - Render the patched build file text ahead of time
//   - Record the content hash the edit was planned against
package planner
