package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to command handlers.
type Injector = do.Injector

// Runtime creates injectors from a fixed list of modules.
type Runtime struct {
	modules []func(Injector) error
}

// New creates a Runtime that applies modules, in order, to every injector it creates.
func New(modules ...func(Injector) error) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke creates a fresh injector, applies the runtime modules followed by extra,
// and runs handler with it. The injector is shut down once handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...func(Injector) error) error {
	injector := do.New()
	defer func() { _ = injector.Shutdown() }()

	modules := make([]func(Injector) error, 0, len(r.modules)+len(extra))
	modules = append(modules, r.modules...)
	modules = append(modules, extra...)

	for _, module := range modules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler that needs an injector to a cobra RunE function.
func RunEWithRuntime(
	runtimeContainer *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
