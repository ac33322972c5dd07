// Package cli provides the command line surface of snapp.
//
//   - cli/cmd: the cobra command tree
//   - cli/helpers: flag lookups shared by commands
//   - cli/ui/errorhandler: command execution with normalized errors
package cli
