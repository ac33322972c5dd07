package projectprovisioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devantler-tech/snapp/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/snapp/pkg/client/git"
	"github.com/devantler-tech/snapp/pkg/client/npm"
	"github.com/devantler-tech/snapp/pkg/cmd/runner"
	"github.com/devantler-tech/snapp/pkg/svc/template"
	"github.com/devantler-tech/snapp/pkg/timer"
	"github.com/sirupsen/logrus"
)

// ErrProjectConfigRequired is returned when the factory receives no project configuration.
var ErrProjectConfigRequired = errors.New("project configuration is required")

const (
	downloadRetries   = 2
	downloadRetryWait = time.Second
)

// FactoryOptions carries per-invocation settings that are not part of the project config.
type FactoryOptions struct {
	Writer io.Writer
	Timer  timer.Timer
}

// Factory creates project provisioners from a project configuration.
type Factory interface {
	Create(ctx context.Context, project *v1alpha1.Project, opts FactoryOptions) (ProjectProvisioner, error)
}

// DefaultFactory wires the GitHub template fetcher, git and the package manager
// through a shared CommandRunner.
type DefaultFactory struct {
	Runner     runner.CommandRunner
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// Compile-time interface compliance verification.
var _ Factory = DefaultFactory{}

// Create builds a Provisioner for project.
func (f DefaultFactory) Create(
	_ context.Context,
	project *v1alpha1.Project,
	opts FactoryOptions,
) (ProjectProvisioner, error) {
	if project == nil {
		return nil, ErrProjectConfigRequired
	}

	logger := f.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	commandRunner := f.Runner
	if commandRunner == nil {
		commandRunner = runner.NewProcessRunner(logger)
	}

	spec := project.Spec

	fetcher, err := template.NewGitHubFetcher(spec.Template.Source, template.Options{
		Cache:      spec.Template.Cache,
		CacheDir:   spec.Template.CacheDir,
		Token:      spec.Template.GitHubToken,
		HTTPClient: f.HTTPClient,
		Exclude:    spec.Template.Exclude,
		Retries:    downloadRetries,
		RetryWait:  downloadRetryWait,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template fetcher: %w", err)
	}

	return NewProvisioner(
		fetcher,
		git.NewClient(commandRunner),
		npm.NewClient(commandRunner, spec.PackageManager.Binary),
		Options{
			Branch:          spec.Git.Branch,
			CommitMessage:   spec.Git.CommitMessage,
			ContinueOnError: spec.ContinueOnError,
			Writer:          opts.Writer,
			Timer:           opts.Timer,
		},
	), nil
}
