// Package npm wraps the package manager binary for reproducible installs.
package npm

import (
	"context"
	"fmt"

	"github.com/devantler-tech/snapp/pkg/cmd/runner"
)

// DefaultBinary is the package manager used when none is configured.
const DefaultBinary = "npm"

// Client runs package manager commands through a CommandRunner.
type Client struct {
	runner runner.CommandRunner
	binary string
}

// NewClient creates a package manager client for binary (DefaultBinary when empty).
func NewClient(commandRunner runner.CommandRunner, binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}

	return &Client{runner: commandRunner, binary: binary}
}

// Binary returns the configured package manager executable.
func (c *Client) Binary() string {
	return c.binary
}

// CleanInstall installs exactly what the lockfile in dir declares, with log output
// suppressed. Lifecycle hook output (e.g. git hook setup) is captured by the runner
// and never reaches the terminal.
func (c *Client) CleanInstall(ctx context.Context, dir string) error {
	cmd := runner.Command{
		Name: c.binary,
		Args: []string{"ci", "--silent"},
		Dir:  dir,
	}

	_, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%s ci: %w", c.binary, err)
	}

	return nil
}
