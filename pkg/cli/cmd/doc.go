// Package cmd provides the command-line interface for snapp.
//
// The root command carries the persistent --timing and --verbose flags and
// delegates to:
//   - project: scaffold a new snapp project from the project template
package cmd
