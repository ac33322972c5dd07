// Package helpers provides common CLI utilities for command handling,
// such as reading the persistent timing and verbose flags.
package helpers
