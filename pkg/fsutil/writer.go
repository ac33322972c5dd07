package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes content to output, creating parent directories as needed.
// When force is false an existing file is left untouched and WriteFile reports
// false without error.
func WriteFile(content []byte, output string, force bool) (bool, error) {
	if output == "" {
		return false, ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	if !force {
		_, err := os.Stat(output)
		if err == nil {
			return false, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("failed to check file %s: %w", output, err)
		}
	}

	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	err = os.WriteFile(output, content, filePermUserRW)
	if err != nil {
		return false, fmt.Errorf("failed to write file %s: %w", output, err)
	}

	return true, nil
}
