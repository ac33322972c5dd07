package di_test

import (
	"testing"

	"github.com/devantler-tech/snapp/pkg/cmd/runner"
	runtime "github.com/devantler-tech/snapp/pkg/di"
	projectprovisioner "github.com/devantler-tech/snapp/pkg/svc/provisioner/project"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime_ProvidesDefaults(t *testing.T) {
	t.Parallel()

	err := runtime.NewRuntime().Invoke(func(injector runtime.Injector) error {
		tmr, err := runtime.ResolveTimer(injector)
		require.NoError(t, err)
		assert.NotNil(t, tmr)

		logger, err := runtime.ResolveLogger(injector)
		require.NoError(t, err)
		assert.Same(t, logrus.StandardLogger(), logger)

		commandRunner, err := runtime.ResolveCommandRunner(injector)
		require.NoError(t, err)
		assert.IsType(t, &runner.ProcessRunner{}, commandRunner)

		factory, err := runtime.ResolveProjectProvisionerFactory(injector)
		require.NoError(t, err)
		require.IsType(t, projectprovisioner.DefaultFactory{}, factory)
		assert.Same(t, commandRunner, factory.(projectprovisioner.DefaultFactory).Runner)

		return nil
	})

	require.NoError(t, err)
}
