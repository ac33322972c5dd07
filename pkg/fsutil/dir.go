package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirState describes what currently occupies a path.
type DirState int

const (
	// DirAbsent means nothing exists at the path.
	DirAbsent DirState = iota
	// DirEmpty means the path is an empty directory.
	DirEmpty
	// DirNotEmpty means the path is a directory with at least one entry.
	DirNotEmpty
	// NotADir means the path exists but is not a directory.
	NotADir
)

// InspectDir reports the state of path.
func InspectDir(path string) (DirState, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return DirAbsent, nil
	}

	if err != nil {
		return DirAbsent, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return NotADir, nil
	}

	dir, err := os.Open(path) //nolint:gosec // caller-controlled directory path
	if err != nil {
		return DirAbsent, fmt.Errorf("failed to open %s: %w", path, err)
	}

	defer func() { _ = dir.Close() }()

	_, err = dir.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return DirEmpty, nil
	}

	if err != nil {
		return DirAbsent, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return DirNotEmpty, nil
}

// RemoveContents deletes every entry inside dir and leaves dir itself in place.
func RemoveContents(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var errs []error

	for _, entry := range entries {
		removeErr := os.RemoveAll(filepath.Join(dir, entry.Name()))
		if removeErr != nil {
			errs = append(errs, removeErr)
		}
	}

	return errors.Join(errs...)
}
