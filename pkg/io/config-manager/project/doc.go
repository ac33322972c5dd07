// Package configmanager loads project scaffolding settings from defaults, an optional
// .snapp.yaml file, SNAPP_ environment variables and command-line flags.
package configmanager
