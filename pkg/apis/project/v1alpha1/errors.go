package v1alpha1

import "errors"

// ErrProjectNameEmpty is returned when no project name is given.
var ErrProjectNameEmpty = errors.New("project name must not be empty")

// ErrProjectNameInvalid is returned when a project name cannot be used as a directory.
var ErrProjectNameInvalid = errors.New("invalid project name")

// ErrTemplateSourceEmpty is returned when no template source is configured.
var ErrTemplateSourceEmpty = errors.New("template source must not be empty")

// ErrCacheDirEmpty is returned when caching is enabled without a cache directory.
var ErrCacheDirEmpty = errors.New("cache directory must be set when caching is enabled")

// ErrBranchEmpty is returned when the initial branch name is empty.
var ErrBranchEmpty = errors.New("git branch must not be empty")

// ErrCommitMessageEmpty is returned when the initial commit message is empty.
var ErrCommitMessageEmpty = errors.New("git commit message must not be empty")

// ErrPackageManagerEmpty is returned when no package manager binary is configured.
var ErrPackageManagerEmpty = errors.New("package manager binary must not be empty")
