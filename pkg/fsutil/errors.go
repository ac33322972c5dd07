package fsutil

import "errors"

// Filesystem errors.
var (
	// ErrPathOutsideBase indicates a path resolves outside its base directory.
	ErrPathOutsideBase = errors.New("invalid path: file is outside base directory")

	// ErrEmptyOutputPath indicates an empty output path was provided.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")

	// ErrBasePath indicates an empty base path was provided.
	ErrBasePath = errors.New("base path cannot be empty")
)

const (
	dirPermUserGroupRX = 0o750
	filePermUserRW     = 0o600
)
