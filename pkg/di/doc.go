// Package di wires snapp's runtime dependencies with samber/do.
//
// Every command invocation gets a fresh injector populated by the runtime's
// modules, so tests can replace any dependency by passing extra modules.
package di
