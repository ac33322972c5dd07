package git_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/devantler-tech/snapp/pkg/client/git"
	"github.com/devantler-tech/snapp/pkg/cmd/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateGit points git at an empty config and a fixed identity.
func isolateGit(t *testing.T) {
	t.Helper()

	globalConfig := filepath.Join(t.TempDir(), "gitconfig")
	require.NoError(t, os.WriteFile(globalConfig, nil, 0o600))

	t.Setenv("GIT_CONFIG_GLOBAL", globalConfig)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "snapp")
	t.Setenv("GIT_AUTHOR_EMAIL", "snapp@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "snapp")
	t.Setenv("GIT_COMMITTER_EMAIL", "snapp@example.com")
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.CommandContext(context.Background(), git.BinaryName, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer

	cmd.Stdout = &stdout

	require.NoError(t, cmd.Run(), "git %s", strings.Join(args, " "))

	return strings.TrimSpace(stdout.String())
}

//nolint:paralleltest // t.Setenv is incompatible with t.Parallel
func TestClient_InitAndCommitWithRealGit(t *testing.T) {
	_, err := exec.LookPath(git.BinaryName)
	if err != nil {
		t.Skip("git is not installed")
	}

	isolateGit(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# my-app\n"), 0o600))

	client := git.NewClient(runner.NewProcessRunner(nil))
	ctx := context.Background()

	require.NoError(t, client.Available())
	require.NoError(t, client.Init(ctx, dir, "main"))
	require.NoError(t, client.CommitAll(ctx, dir, "Init commit"))

	assert.Equal(t, "main", gitOutput(t, dir, "rev-parse", "--abbrev-ref", "HEAD"))

	count, err := strconv.Atoi(gitOutput(t, dir, "rev-list", "--count", "HEAD"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
	assert.Equal(t, "Init commit", gitOutput(t, dir, "log", "-1", "--format=%s"))
	assert.Empty(t, gitOutput(t, dir, "status", "--porcelain"))
}
