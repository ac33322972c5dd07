package v1alpha1

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateProjectName checks that name can be used as the project directory.
// Nested paths such as "apps/my-app" are allowed.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrProjectNameEmpty
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrProjectNameInvalid, name)
	}

	switch strings.Trim(name, "/") {
	case "", ".", "..":
		return fmt.Errorf("%w: %q does not name a new directory", ErrProjectNameInvalid, name)
	}

	return nil
}

// Validate reports every missing required setting of the project.
func (p *Project) Validate() error {
	var errs []error

	spec := p.Spec

	if strings.TrimSpace(spec.Template.Source) == "" {
		errs = append(errs, ErrTemplateSourceEmpty)
	}

	if spec.Template.Cache && strings.TrimSpace(spec.Template.CacheDir) == "" {
		errs = append(errs, ErrCacheDirEmpty)
	}

	if strings.TrimSpace(spec.Git.Branch) == "" {
		errs = append(errs, ErrBranchEmpty)
	}

	if strings.TrimSpace(spec.Git.CommitMessage) == "" {
		errs = append(errs, ErrCommitMessageEmpty)
	}

	if strings.TrimSpace(spec.PackageManager.Binary) == "" {
		errs = append(errs, ErrPackageManagerEmpty)
	}

	return errors.Join(errs...)
}
