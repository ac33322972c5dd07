// Package main is the entry point for the snapp project scaffolder.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/devantler-tech/snapp/internal/buildmeta"
	"github.com/devantler-tech/snapp/pkg/cli/cmd"
	"github.com/devantler-tech/snapp/pkg/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// runSafely calls runner and turns a panic into exit code 1 with the stack on errWriter.
//
//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		notify.Errorf(errWriter, "%s", fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack()))

		exitCode = 1
	}()

	return runner(args)
}

// runWithArgs executes the command tree. An interrupt cancels the running step,
// which stops the spawned git or package manager process.
func runWithArgs(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx, rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return 1
	}

	return 0
}
