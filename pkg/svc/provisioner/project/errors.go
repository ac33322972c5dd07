package projectprovisioner

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/snapp/pkg/svc/template"
)

// ErrDestinationNotEmpty is returned when the target directory already has content.
var ErrDestinationNotEmpty = errors.New("destination directory is not empty, not proceeding")

// ErrMissingDependency is returned when a required binary is not installed.
var ErrMissingDependency = errors.New("missing dependency")

// destinationError reports ErrDestinationNotEmpty while keeping the fetcher's cause.
type destinationError struct {
	cause error
}

func (e *destinationError) Error() string {
	return ErrDestinationNotEmpty.Error()
}

func (e *destinationError) Unwrap() []error {
	return []error{ErrDestinationNotEmpty, e.cause}
}

// FetchError is returned when the project template could not be fetched.
type FetchError struct {
	Code template.Code
	Err  error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%v\nerror: %s", e.Err, e.Code)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// DependencyError is returned when a binary needed by later steps is missing.
type DependencyError struct {
	Binary string
	Err    error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	return fmt.Sprintf("please ensure %s is installed, then try again", e.Binary)
}

// Unwrap matches ErrMissingDependency as well as the lookup failure.
func (e *DependencyError) Unwrap() []error {
	return []error{ErrMissingDependency, e.Err}
}

// StepFailure is returned when a setup step fails.
type StepFailure struct {
	Label string
	Err   error
}

// Error implements the error interface.
func (e *StepFailure) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Label, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *StepFailure) Unwrap() error {
	return e.Err
}

// classifyFetchError maps a template fetch failure onto the provisioner's errors.
func classifyFetchError(err error) error {
	code, ok := template.CodeOf(err)
	if !ok {
		return &FetchError{Code: template.CodeCouldNotFetch, Err: err}
	}

	if code == template.CodeDestNotEmpty {
		return &destinationError{cause: err}
	}

	return &FetchError{Code: code, Err: err}
}
