package template

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/snapp/pkg/fsutil"
)

const dirPerm = 0o755

// errSubdirNotFound is returned when the archive holds nothing below the subdirectory.
var errSubdirNotFound = errors.New("subdirectory not found in archive")

// extractArchive unpacks the gzip tarball at archivePath into dest.
// The archive's top-level directory is stripped and only entries below subdir are
// kept, relative to subdir. Entries matched by an exclude pattern are skipped.
// It returns the number of files written.
func extractArchive(archivePath, dest, subdir string, exclude []string) (int, error) {
	file, err := os.Open(archivePath) //nolint:gosec // archive path is derived from the cache directory
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}

	defer func() { _ = file.Close() }()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return 0, fmt.Errorf("failed to read gzip stream: %w", err)
	}

	defer func() { _ = gzipReader.Close() }()

	err = os.MkdirAll(dest, dirPerm)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	prefix := ""
	if subdir != "" {
		prefix = strings.Trim(subdir, "/") + "/"
	}

	tarReader := tar.NewReader(gzipReader)
	written := 0

	for {
		header, nextErr := tarReader.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}

		if nextErr != nil {
			return written, fmt.Errorf("failed to read archive entry: %w", nextErr)
		}

		rel, ok := relativeEntryName(header.Name, prefix)
		if !ok || isExcluded(rel, exclude) {
			continue
		}

		target, joinErr := fsutil.SafeJoin(dest, rel)
		if joinErr != nil {
			return written, joinErr
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(target, dirPerm)
			if err != nil {
				return written, fmt.Errorf("failed to create %s: %w", rel, err)
			}
		case tar.TypeReg:
			err = writeEntry(tarReader, target, header.FileInfo().Mode().Perm())
			if err != nil {
				return written, fmt.Errorf("failed to write %s: %w", rel, err)
			}

			written++
		default:
			// Links and special files are not part of project templates.
		}
	}

	if written == 0 && subdir != "" {
		return 0, fmt.Errorf("%w: %s", errSubdirNotFound, subdir)
	}

	return written, nil
}

// relativeEntryName strips the archive root and prefix from name.
// It reports false for entries outside prefix and for the prefix itself.
func relativeEntryName(name, prefix string) (string, bool) {
	cleaned := path.Clean(strings.TrimPrefix(name, "./"))

	_, rest, found := strings.Cut(cleaned, "/")
	if !found || rest == "" {
		return "", false
	}

	if prefix == "" {
		return rest, true
	}

	if !strings.HasPrefix(rest+"/", prefix) {
		return "", false
	}

	rel := strings.TrimPrefix(rest, strings.TrimSuffix(prefix, "/"))
	rel = strings.TrimPrefix(rel, "/")

	return rel, rel != ""
}

// isExcluded reports whether rel or one of its parent directories matches a pattern.
func isExcluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.Trim(pattern, "/")
		if pattern == "" {
			continue
		}

		if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
			return true
		}

		matched, err := path.Match(pattern, rel)
		if err == nil && matched {
			return true
		}

		matched, err = path.Match(pattern, path.Base(rel))
		if err == nil && matched && !strings.Contains(pattern, "/") {
			return true
		}
	}

	return false
}

func writeEntry(reader io.Reader, target string, perm os.FileMode) error {
	err := os.MkdirAll(filepath.Dir(target), dirPerm)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by caller
	}

	if perm == 0 {
		perm = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // target is checked by SafeJoin
	if err != nil {
		return err //nolint:wrapcheck // wrapped by caller
	}

	_, copyErr := io.Copy(out, reader) //nolint:gosec // template archives are small and trusted
	closeErr := out.Close()

	return errors.Join(copyErr, closeErr)
}
