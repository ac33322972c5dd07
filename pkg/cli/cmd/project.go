package cmd

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/snapp/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/snapp/pkg/cli/helpers"
	runtime "github.com/devantler-tech/snapp/pkg/di"
	configmanagerinterface "github.com/devantler-tech/snapp/pkg/io/config-manager"
	configmanager "github.com/devantler-tech/snapp/pkg/io/config-manager/project"
	"github.com/devantler-tech/snapp/pkg/notify"
	projectprovisioner "github.com/devantler-tech/snapp/pkg/svc/provisioner/project"
	"github.com/devantler-tech/snapp/pkg/timer"
	"github.com/spf13/cobra"
)

// ErrProjectConfigLoad is returned when the project settings cannot be loaded.
var ErrProjectConfigLoad = errors.New("failed to load project configuration")

const projectLongDesc = `Create a new snapp project in the directory <name>.

The project template is downloaded (or taken from the local cache when offline),
a Git repository is initialized, dependencies are installed with a clean install
and everything is recorded in an initial commit. An existing, non-empty directory
is never overwritten.

Settings can be given as flags, as SNAPP_ environment variables
(e.g. SNAPP_GIT_BRANCH) or in a .snapp.yaml file in the working directory or $HOME.

Examples:
  # Create a project in ./my-app
  snapp project my-app

  # Use another branch name and keep going when a setup step fails
  snapp project my-app --branch trunk --continue-on-error`

// NewProjectCmd creates the project command.
func NewProjectCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "project <name>",
		Short:        "Create a new snapp project",
		Long:         projectLongDesc,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}

	cfgManager, err := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultFieldSelectors())
	if err != nil {
		cmd.RunE = func(*cobra.Command, []string) error { return err }

		return cmd
	}

	handler := func(cmd *cobra.Command, injector runtime.Injector, tmr timer.Timer) error {
		factory, err := runtime.ResolveProjectProvisionerFactory(injector)
		if err != nil {
			return err
		}

		return HandleProjectRunE(cmd, cmd.Flags().Arg(0), cfgManager, factory, tmr)
	}

	cmd.RunE = runtime.RunEWithRuntime(runtimeContainer, runtime.WithTimer(handler))

	return cmd
}

// HandleProjectRunE loads the project settings and provisions the project name.
// Exported for testing purposes.
func HandleProjectRunE(
	cmd *cobra.Command,
	name string,
	cfgManager configmanagerinterface.ConfigManager[v1alpha1.Project],
	factory projectprovisioner.Factory,
	tmr timer.Timer,
) error {
	if tmr != nil {
		tmr.Start()
	}

	err := v1alpha1.ValidateProjectName(name)
	if err != nil {
		return err //nolint:wrapcheck // validation errors are user-facing as is
	}

	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())

	project, err := cfgManager.Load(configmanagerinterface.LoadOptions{})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProjectConfigLoad, err)
	}

	notify.Titlef(out, "🧰", "Create project %s...", name)

	provisioner, err := factory.Create(cmd.Context(), project, projectprovisioner.FactoryOptions{
		Writer: out,
		Timer:  helpers.MaybeTimer(cmd, tmr),
	})
	if err != nil {
		return fmt.Errorf("failed to prepare project: %w", err)
	}

	return provisioner.Provision(cmd.Context(), name) //nolint:wrapcheck // provisioner errors are user-facing
}
