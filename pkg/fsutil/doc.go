// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - Directory inspection: InspectDir
//   - File writing: WriteFile
//   - Path operations: ExpandHomePath, SafeJoin
package fsutil
