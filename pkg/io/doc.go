// Package io groups input handling for snapp.
//
// Subpackages:
//   - config-manager: configuration loading from defaults, file, environment and flags
package io
