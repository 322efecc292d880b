package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when attempting to add a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrUnknownTarget is returned when a target references another target that does not exist.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrUnknownGlobalDependency is returned when a target references an undeclared global dependency.
	ErrUnknownGlobalDependency = zerr.New("unknown global dependency")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTargetNotFound is returned when a requested target is not found in the graph.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrInvalidSpec is returned when the project spec fails validation.
	ErrInvalidSpec = zerr.New("invalid spec")

	// ErrInvalidCacheMode is returned when an unrecognized cache mode string is parsed.
	ErrInvalidCacheMode = zerr.New("invalid cache mode")

	// ErrNoFilesMatched is returned when a source dependency pattern matches nothing on disk.
	ErrNoFilesMatched = zerr.New("no files matched pattern")

	// ErrCommandFailed is returned when a build or dependency command exits non-zero.
	ErrCommandFailed = zerr.New("command failed")

	// ErrMissingOutput is returned when a declared output path does not exist after a build.
	ErrMissingOutput = zerr.New("declared output missing after build")

	// ErrPathTraversal is returned when an archive entry would escape the extraction root.
	ErrPathTraversal = zerr.New("archive entry escapes destination")

	// ErrCorruptEntry is returned when a cache entry fails its integrity check.
	ErrCorruptEntry = zerr.New("corrupt cache entry")

	// ErrObjectNotFound is returned by object stores when a key does not exist.
	ErrObjectNotFound = zerr.New("object not found")

	// ErrNoTargetsSpecified is returned when a run is requested without any target names.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrBuildExecutionFailed is the aggregate error returned when one or more targets fail.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
