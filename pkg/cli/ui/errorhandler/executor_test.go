package errorhandler_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/devantler-tech/snapp/pkg/cli/ui/errorhandler"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTestBoom        = errors.New("boom")
	errOriginalFailure = errors.New("original failure")
	errBoomOriginal    = errors.New("boom: original failure")
)

type fixedNormalizer struct{}

func (fixedNormalizer) Normalize(string) string {
	return "normalized"
}

func TestExecutor_ExecuteSuccess(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:  "test",
		RunE: func(*cobra.Command, []string) error { return nil },
	}

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))
}

func TestExecutor_ExecuteNilCommand(t *testing.T) {
	t.Parallel()

	require.NoError(t, errorhandler.NewExecutor().Execute(nil))
}

func TestExecutor_SuccessPassesStderrThrough(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.PrintErrln("warning: something")

			return nil
		},
	}
	cmd.SetErr(&stderr)

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))
	assert.Equal(t, "warning: something\n", stderr.String())
}

func TestExecutor_ExecuteInvalidSubcommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "test"}
	root.AddCommand(&cobra.Command{Use: "valid", Run: func(*cobra.Command, []string) {}})
	root.SetArgs([]string{"invalid"})

	err := errorhandler.NewExecutor().Execute(root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "invalid" for "test"`)
	assert.NotContains(t, err.Error(), "Error: ")
	assert.Contains(t, err.Error(), "Run 'test --help' for usage.")
}

func TestExecutor_ExecuteContextPassesContext(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	var got any

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			got = cmd.Context().Value(ctxKey{})

			return nil
		},
	}

	require.NoError(t, errorhandler.NewExecutor().ExecuteContext(ctx, cmd))
	assert.Equal(t, "value", got)
}

func TestCommandError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stderr   string
		cause    error
		expected string
	}{
		{name: "cause only", cause: errTestBoom, expected: "boom"},
		{name: "distinct message and cause", stderr: "normalized", cause: errOriginalFailure, expected: "normalized: original failure"},
		{name: "message includes cause", stderr: "boom: original failure", cause: errBoomOriginal, expected: "boom: original failure"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{
				Use:           "test",
				SilenceErrors: true,
				SilenceUsage:  true,
				RunE: func(cmd *cobra.Command, _ []string) error {
					if testCase.stderr != "" {
						cmd.PrintErrln(testCase.stderr)
					}

					return testCase.cause
				},
			}

			err := errorhandler.NewExecutor().Execute(cmd)

			var cmdErr *errorhandler.CommandError
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, testCase.expected, cmdErr.Error())
			require.ErrorIs(t, err, testCase.cause)
		})
	}
}

func TestCommandError_NilAndEmpty(t *testing.T) {
	t.Parallel()

	var nilErr *errorhandler.CommandError

	assert.Empty(t, nilErr.Error())
	require.NoError(t, nilErr.Unwrap())
	assert.Empty(t, (&errorhandler.CommandError{}).Error())
}

func TestNewExecutorWithNormalizer(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:           "test",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.PrintErrln("raw output")

			return errTestBoom
		},
	}

	err := errorhandler.NewExecutorWithNormalizer(fixedNormalizer{}).Execute(cmd)

	require.EqualError(t, err, "normalized: boom")
}

func TestDefaultNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	normalizer := errorhandler.DefaultNormalizer{}

	assert.Empty(t, normalizer.Normalize("   \n\t  "))
	assert.Equal(t, "something bad\nRun help", normalizer.Normalize("  Error: something bad \nRun help\n"))
}
