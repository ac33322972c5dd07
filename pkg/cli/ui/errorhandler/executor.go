// Package errorhandler runs cobra commands and folds cobra's own error output
// into the returned error, so main prints exactly one error message.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Normalizer turns captured cobra stderr into a user-facing message.
type Normalizer interface {
	Normalize(raw string) string
}

// Executor coordinates Cobra execution, capturing stderr output and surfacing aggregated errors.
type Executor struct {
	normalizer Normalizer
}

// NewExecutor constructs an Executor using DefaultNormalizer.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// NewExecutorWithNormalizer constructs an Executor with a custom normalizer.
func NewExecutorWithNormalizer(normalizer Normalizer) *Executor {
	if normalizer == nil {
		normalizer = DefaultNormalizer{}
	}

	return &Executor{normalizer: normalizer}
}

// Execute runs cmd with a background context.
func (e *Executor) Execute(cmd *cobra.Command) error {
	return e.ExecuteContext(context.Background(), cmd)
}

// ExecuteContext runs cmd with ctx while intercepting Cobra's error stream.
// It returns nil on success, or a *CommandError holding the normalized stderr
// and the original error.
func (e *Executor) ExecuteContext(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		// Output written to stderr by a successful command is passed through.
		if errBuf.Len() > 0 {
			_, _ = originalErrWriter.Write(errBuf.Bytes())
		}

		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		cause:   err,
	}
}

// CommandError represents a Cobra execution failure augmented with normalized stderr output.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer trims cobra's stderr and removes its "Error: " prefix.
type DefaultNormalizer struct{}

// Normalize trims whitespace, removes the redundant "Error:" prefix and keeps
// multi-line usage hints.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
