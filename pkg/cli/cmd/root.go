package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/devantler-tech/snapp/pkg/cli/helpers"
	"github.com/devantler-tech/snapp/pkg/cli/ui/errorhandler"
	runtime "github.com/devantler-tech/snapp/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(version, commit, date, runtime.NewRuntime())
}

// NewRootCmdWithRuntime creates the root command using runtimeContainer for all subcommands.
func NewRootCmdWithRuntime(version, commit, date string, runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "snapp",
		Short:             "snapp is a CLI tool for creating snapp projects",
		Long:              "snapp is a CLI tool for creating snapp projects from the official project template",
		RunE:              handleRootRunE,
		PersistentPreRunE: configureLogging,
		SilenceUsage:      true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		helpers.TimingFlagName,
		false,
		"Show per-activity timing output",
	)
	cmd.PersistentFlags().Bool(
		helpers.VerboseFlagName,
		false,
		"Log executed commands and template downloads to stderr",
	)

	cmd.AddCommand(NewProjectCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	return ExecuteContext(context.Background(), cmd)
}

// ExecuteContext runs the root command with ctx, which cancels running steps when done.
func ExecuteContext(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.ExecuteContext(ctx, cmd)
	if err != nil {
		return err //nolint:wrapcheck // CommandError already carries the normalized message
	}

	return nil
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}

// configureLogging points logrus at stderr and enables debug output with --verbose.
func configureLogging(cmd *cobra.Command, _ []string) error {
	verbose, err := helpers.IsVerboseEnabled(cmd)
	if err != nil {
		return fmt.Errorf("failed to read --%s: %w", helpers.VerboseFlagName, err)
	}

	setupLogger(logrus.StandardLogger(), cmd.ErrOrStderr(), verbose)

	return nil
}

func setupLogger(logger *logrus.Logger, out io.Writer, verbose bool) {
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)

		return
	}

	logger.SetLevel(logrus.WarnLevel)
}
