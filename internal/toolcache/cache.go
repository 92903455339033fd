// Package toolcache reads and writes entries in the runner tool cache, the
// persistent directory store shared across jobs on the same runner.
//
// The layout follows the runner convention:
//
//	<root>/<tool>/<version>/<arch>/          extracted tool directory
//	<root>/<tool>/<version>/<arch>.complete  marker written after a full install
//
// An entry without its marker is treated as a miss: a concurrent or crashed
// job may have left a partial directory behind. This package never removes
// entries; eviction belongs to the runner.
package toolcache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const completeSuffix = ".complete"

// Cache is a handle on a tool cache root directory.
type Cache struct {
	root string
}

// New creates a cache handle. The root must be non-empty; it is created on
// first write, not here.
func New(root string) (*Cache, error) {
	if root == "" {
		return nil, fmt.Errorf("tool cache root is required")
	}
	return &Cache{root: root}, nil
}

// Find looks up a cached tool directory. It reports a hit only when the
// directory exists and its completion marker is present.
func (c *Cache) Find(tool, version, arch string) (string, bool) {
	dir := c.entryDir(tool, version, arch)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	if _, err := os.Stat(dir + completeSuffix); err != nil {
		return "", false
	}
	return dir, true
}

// Add moves srcDir into the cache under (tool, version, arch) and writes the
// completion marker. It returns the cache-managed path, which the caller must
// use from then on; srcDir is gone after a successful Add.
func (c *Cache) Add(srcDir, tool, version, arch string) (string, error) {
	dir := c.entryDir(tool, version, arch)

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	// A stale partial entry (no marker) from a crashed run blocks the
	// rename; clear it first.
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return "", fmt.Errorf("clear partial cache entry: %w", err)
		}
	}

	// Rename is atomic but fails when the scratch dir and the tool cache
	// sit on different filesystems; fall back to a recursive copy then.
	if err := os.Rename(srcDir, dir); err != nil {
		if copyErr := copyDir(srcDir, dir); copyErr != nil {
			return "", fmt.Errorf("move into cache: %w", errors.Join(err, copyErr))
		}
		if err := os.RemoveAll(srcDir); err != nil {
			return "", fmt.Errorf("remove staging dir: %w", err)
		}
	}

	marker, err := os.Create(dir + completeSuffix)
	if err != nil {
		return "", fmt.Errorf("write completion marker: %w", err)
	}
	marker.Close()

	return dir, nil
}

func (c *Cache) entryDir(tool, version, arch string) string {
	return filepath.Join(c.root, tool, version, arch)
}

// copyDir recursively copies a directory tree, preserving file modes and
// symlinks.
func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			// Sockets, devices and the like have no business in a
			// tool archive; skip them.
			return nil
		}
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
