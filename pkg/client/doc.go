// Package client provides thin wrappers around the external tools a new project
// is provisioned with.
//
//   - git: repository initialization and the initial commit
//   - npm: reproducible dependency installation
//
// Both clients execute binaries through runner.CommandRunner so tests can substitute
// a mock instead of spawning processes.
package client
