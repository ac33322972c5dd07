package di

import (
	"github.com/devantler-tech/snapp/pkg/cmd/runner"
	projectprovisioner "github.com/devantler-tech/snapp/pkg/svc/provisioner/project"
	"github.com/devantler-tech/snapp/pkg/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
// It registers default implementations for the timer, the debug logger, the
// command runner and the project provisioner factory.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideLogger,
		provideCommandRunner,
		provideProjectProvisionerFactory,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideLogger registers the process-wide logrus logger configured by the root command.
func provideLogger(i Injector) error {
	do.Provide(i, func(Injector) (logrus.FieldLogger, error) {
		return logrus.StandardLogger(), nil
	})

	return nil
}

// provideCommandRunner registers the external process runner.
func provideCommandRunner(i Injector) error {
	do.Provide(i, func(injector Injector) (runner.CommandRunner, error) {
		logger, err := ResolveLogger(injector)
		if err != nil {
			return nil, err
		}

		return runner.NewProcessRunner(logger), nil
	})

	return nil
}

// provideProjectProvisionerFactory registers the project provisioner factory dependency.
func provideProjectProvisionerFactory(i Injector) error {
	do.Provide(i, func(injector Injector) (projectprovisioner.Factory, error) {
		commandRunner, err := ResolveCommandRunner(injector)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(injector)
		if err != nil {
			return nil, err
		}

		return projectprovisioner.DefaultFactory{Runner: commandRunner, Logger: logger}, nil
	})

	return nil
}
