package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devantler-tech/snapp/pkg/fsutil"
	"sigs.k8s.io/yaml"
)

const (
	// indexFileName maps refs to the commit SHAs of cached archives.
	indexFileName = "map.yaml"
	// archiveExtension is appended to the commit SHA of a cached archive.
	archiveExtension = ".tar.gz"
)

// cacheIndex is the on-disk ref to commit-SHA map of one repository.
type cacheIndex struct {
	Refs map[string]string `json:"refs"`
}

// Cache stores downloaded archives of a single template repository.
type Cache struct {
	dir string
}

// NewCache creates a cache for source below root.
func NewCache(root string, source Source) *Cache {
	return &Cache{dir: filepath.Join(root, source.Host, source.Owner, source.Repo)}
}

// Dir returns the directory holding this repository's archives.
func (c *Cache) Dir() string {
	return c.dir
}

// ArchivePath returns where the archive for sha is stored.
func (c *Cache) ArchivePath(sha string) string {
	return filepath.Join(c.dir, sha+archiveExtension)
}

// HasArchive reports whether the archive for sha is present.
func (c *Cache) HasArchive(sha string) bool {
	info, err := os.Stat(c.ArchivePath(sha))

	return err == nil && info.Mode().IsRegular()
}

// Lookup returns the cached commit SHA for ref, if any.
func (c *Cache) Lookup(ref string) (string, bool, error) {
	index, err := c.readIndex()
	if err != nil {
		return "", false, err
	}

	sha, ok := index.Refs[ref]

	return sha, ok && sha != "", nil
}

// Record stores the ref to sha mapping.
func (c *Cache) Record(ref, sha string) error {
	index, err := c.readIndex()
	if err != nil {
		return err
	}

	if index.Refs[ref] == sha {
		return nil
	}

	index.Refs[ref] = sha

	content, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal cache index: %w", err)
	}

	_, err = fsutil.WriteFile(content, filepath.Join(c.dir, indexFileName), true)
	if err != nil {
		return fmt.Errorf("failed to write cache index: %w", err)
	}

	return nil
}

func (c *Cache) readIndex() (cacheIndex, error) {
	index := cacheIndex{Refs: map[string]string{}}

	content, err := os.ReadFile(filepath.Join(c.dir, indexFileName))
	if errors.Is(err, os.ErrNotExist) {
		return index, nil
	}

	if err != nil {
		return index, fmt.Errorf("failed to read cache index: %w", err)
	}

	err = yaml.Unmarshal(content, &index)
	if err != nil {
		return index, fmt.Errorf("failed to parse cache index: %w", err)
	}

	if index.Refs == nil {
		index.Refs = map[string]string{}
	}

	return index, nil
}
