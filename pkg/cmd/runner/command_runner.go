// Package runner executes external processes for the provisioning steps.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Runner errors.
var (
	// ErrCommandFailed indicates a process ran but exited with a non-zero status.
	ErrCommandFailed = errors.New("command failed")

	// ErrBinaryNotFound indicates the executable could not be resolved.
	ErrBinaryNotFound = errors.New("executable not found")
)

// Command describes one external process invocation.
type Command struct {
	// Name is the executable, resolved through PATH.
	Name string
	// Args are passed to the executable verbatim.
	Args []string
	// Dir is the working directory (current directory when empty).
	Dir string
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandResult captures the stdout and stderr of a finished process.
// Output is always captured and never streamed to the terminal.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run executes cmd to completion. A non-zero exit returns an error wrapping
	// ErrCommandFailed together with the captured result.
	Run(ctx context.Context, cmd Command) (CommandResult, error)
	// LookPath resolves an executable name, wrapping ErrBinaryNotFound on failure.
	LookPath(name string) (string, error)
}

// ProcessRunner runs commands as child processes through os/exec.
type ProcessRunner struct {
	logger logrus.FieldLogger
}

// Compile-time interface compliance verification.
var _ CommandRunner = (*ProcessRunner)(nil)

// NewProcessRunner creates a ProcessRunner logging to logger (the logrus standard
// logger when nil).
func NewProcessRunner(logger logrus.FieldLogger) *ProcessRunner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &ProcessRunner{logger: logger}
}

// Run executes cmd and waits for it.
func (r *ProcessRunner) Run(ctx context.Context, cmd Command) (CommandResult, error) {
	log := r.logger.WithFields(logrus.Fields{
		"cmd": cmd.String(),
		"dir": cmd.Dir,
	})
	log.Debug("running command")

	process := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // commands are fixed by the provisioner

	var stdout, stderr bytes.Buffer

	process.Stdout = &stdout
	process.Stderr = &stderr
	process.Dir = cmd.Dir

	runErr := process.Run()

	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		log.WithField("exit", result.ExitCode).Debug("command exited non-zero")

		return result, fmt.Errorf(
			"%w: %s exited with code %d%s",
			ErrCommandFailed,
			cmd.String(),
			result.ExitCode,
			stderrSuffix(result.Stderr),
		)
	}

	if errors.Is(runErr, exec.ErrNotFound) {
		return result, fmt.Errorf("%w: %s", ErrBinaryNotFound, cmd.Name)
	}

	return result, fmt.Errorf("failed to run %s: %w", cmd.String(), runErr)
}

// LookPath resolves name through PATH.
func (r *ProcessRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		r.logger.WithError(err).WithField("binary", name).Debug("executable lookup failed")

		return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, name)
	}

	return path, nil
}

// stderrSuffix formats the trimmed last line of stderr for error messages.
func stderrSuffix(stderr string) string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")

	return ": " + strings.TrimSpace(lines[len(lines)-1])
}
