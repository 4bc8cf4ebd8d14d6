package engine

import "errors"

var (
	// ErrNotFlutterProject indicates no pubspec.yaml was found above the working directory.
	ErrNotFlutterProject = errors.New("not in a Flutter project")

	// ErrConflict indicates subprojects that cannot be patched were found during apply.
	ErrConflict = errors.New("conflict detected")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrDrift indicates a build file changed between planning and writing.
	ErrDrift = errors.New("drift detected")
)
