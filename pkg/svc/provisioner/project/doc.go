// Package projectprovisioner scaffolds a new snapp project: it fetches the project
// template, initializes a Git repository, installs dependencies and records the
// initial commit, reporting the status of every step.
package projectprovisioner
