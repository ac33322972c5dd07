package projectprovisioner

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/snapp/pkg/notify"
	"github.com/devantler-tech/snapp/pkg/svc/template"
	"github.com/devantler-tech/snapp/pkg/timer"
)

const (
	labelClone  = "Clone project template"
	labelInit   = "Initialize Git repo"
	labelCommit = "Git init commit"
)

// Git initializes the project repository.
type Git interface {
	// Available fails when git cannot be executed.
	Available() error
	// Init creates a repository in dir with the given initial branch.
	Init(ctx context.Context, dir, branch string) error
	// CommitAll stages every file in dir and commits it without running hooks.
	CommitAll(ctx context.Context, dir, message string) error
}

// Installer installs project dependencies.
type Installer interface {
	// Binary is the package manager executable name.
	Binary() string
	// CleanInstall installs the locked dependencies of the project in dir.
	CleanInstall(ctx context.Context, dir string) error
}

// ProjectProvisioner creates new projects.
type ProjectProvisioner interface {
	// Provision scaffolds a project in the directory name.
	Provision(ctx context.Context, name string) error
}

// Options configures a Provisioner.
type Options struct {
	// Branch is the initial branch name.
	Branch string
	// CommitMessage is the message of the initial commit.
	CommitMessage string
	// ContinueOnError reports failed setup steps and carries on instead of aborting.
	ContinueOnError bool
	// Writer receives progress output (os.Stdout when nil).
	Writer io.Writer
	// Timer, when set, is advanced after every step and reported at the end.
	Timer timer.Timer
	// SpinnerOptions are applied to every step spinner.
	SpinnerOptions []notify.SpinnerOption
}

// Provisioner runs the fixed scaffolding pipeline:
// fetch, git check, git init, dependency install, initial commit and summary.
type Provisioner struct {
	fetcher     template.Fetcher
	git         Git
	installer   Installer
	opts        Options
	writer      io.Writer
	timer       timer.Timer
	spinnerOpts []notify.SpinnerOption
}

// Compile-time interface compliance verification.
var _ ProjectProvisioner = (*Provisioner)(nil)

// NewProvisioner creates a Provisioner from its collaborators.
func NewProvisioner(fetcher template.Fetcher, git Git, installer Installer, opts Options) *Provisioner {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	return &Provisioner{
		fetcher:     fetcher,
		git:         git,
		installer:   installer,
		opts:        opts,
		writer:      writer,
		timer:       opts.Timer,
		spinnerOpts: opts.SpinnerOptions,
	}
}

// Provision scaffolds a project in the directory name.
//
// A template fetch failure or a missing git binary stops the pipeline before
// anything else runs. Failures of later steps abort as a *StepFailure unless
// ContinueOnError is set, in which case they are reported and the remaining
// steps still run.
func (p *Provisioner) Provision(ctx context.Context, name string) error {
	err := p.runStep(ctx, step{
		label: labelClone,
		run: func(ctx context.Context) error {
			return p.fetcher.Fetch(ctx, name)
		},
	})
	if err != nil {
		return classifyFetchError(err)
	}

	err = p.git.Available()
	if err != nil {
		return &DependencyError{Binary: "git", Err: err}
	}

	for _, setup := range p.setupSteps(name) {
		err = p.runStep(ctx, setup)
		if err == nil {
			continue
		}

		failure := &StepFailure{Label: setup.label, Err: err}
		if !p.opts.ContinueOnError || ctx.Err() != nil {
			return failure
		}

		notify.Warningf(p.writer, "%v", failure)
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.PlainSuccessType,
		Content: Summary(name, p.opts.Branch),
		Writer:  p.writer,
	})

	if p.timer != nil {
		notify.SuccessWithTimerf(p.writer, p.timer, "project %s created", name)
	}

	return nil
}

// setupSteps returns the ordered steps run after the template is in place.
// Git must be initialized before the install so that install hooks can find
// the repository.
func (p *Provisioner) setupSteps(name string) []step {
	return []step{
		{
			label: labelInit,
			run: func(ctx context.Context) error {
				return p.git.Init(ctx, name, p.opts.Branch)
			},
		},
		{
			label: installLabel(p.installer.Binary()),
			run: func(ctx context.Context) error {
				return p.installer.CleanInstall(ctx, name)
			},
		},
		{
			label: labelCommit,
			run: func(ctx context.Context) error {
				return p.git.CommitAll(ctx, name, p.opts.CommitMessage)
			},
		},
	}
}

func installLabel(binary string) string {
	return strings.ToUpper(binary) + " install"
}
