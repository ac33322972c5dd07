// Package git wraps the git binary for repository initialization and commits.
package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/snapp/pkg/cmd/runner"
)

// BinaryName is the git executable resolved through PATH.
const BinaryName = "git"

// ErrGitNotFound is returned when the git binary cannot be resolved.
var ErrGitNotFound = errors.New("git executable not found")

// Client runs git commands through a CommandRunner.
type Client struct {
	runner runner.CommandRunner
}

// NewClient creates a git client.
func NewClient(commandRunner runner.CommandRunner) *Client {
	return &Client{runner: commandRunner}
}

// Available reports whether the git binary is resolvable.
func (c *Client) Available() error {
	_, err := c.runner.LookPath(BinaryName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGitNotFound, err)
	}

	return nil
}

// Init creates a quiet repository in dir and renames the default branch to branch.
func (c *Client) Init(ctx context.Context, dir, branch string) error {
	return c.run(ctx, dir,
		[]string{"init", "-q"},
		[]string{"branch", "-m", branch},
	)
}

// CommitAll stages every file in dir and commits with message, skipping hooks.
func (c *Client) CommitAll(ctx context.Context, dir, message string) error {
	return c.run(ctx, dir,
		[]string{"add", "."},
		[]string{"commit", "-m", message, "-q", "-n"},
	)
}

// run executes each argument list in order, stopping at the first failure.
func (c *Client) run(ctx context.Context, dir string, argLists ...[]string) error {
	for _, args := range argLists {
		cmd := runner.Command{Name: BinaryName, Args: args, Dir: dir}

		_, err := c.runner.Run(ctx, cmd)
		if err != nil {
			return fmt.Errorf("git %s: %w", args[0], err)
		}
	}

	return nil
}
