package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultCacheDir is the persistent icon cache shared across runs
const DefaultCacheDir = "/tmp/mtglabels/svg"

// IconCache stores downloaded icons on disk keyed by filename.
// A file with the right name counts as cached; size and content are not
// checked. Concurrent processes sharing one directory are not coordinated.
type IconCache struct {
	dir string
}

// NewIconCache creates an IconCache rooted at dir
func NewIconCache(dir string) *IconCache {
	if dir == "" {
		dir = DefaultCacheDir
	}
	return &IconCache{dir: dir}
}

// EnsureDir ensures the cache directory exists, creates it if it doesn't
func (c *IconCache) EnsureDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Path returns the cache file path for an icon filename
func (c *IconCache) Path(filename string) string {
	return filepath.Join(c.dir, filename)
}

// Exists checks if an icon is cached
func (c *IconCache) Exists(filename string) bool {
	_, err := os.Stat(c.Path(filename))
	return err == nil
}

// Save writes icon bytes into the cache
func (c *IconCache) Save(filename string, data []byte) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(c.Path(filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// CopyTo copies a cached icon into dir under the same filename.
// Copying onto the cached file itself is a no-op.
func (c *IconCache) CopyTo(filename, dir string) error {
	srcPath := c.Path(filename)
	dstPath := filepath.Join(dir, filename)

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open cached icon: %w", err)
	}
	defer src.Close()

	if same, err := sameFile(src, dstPath); err != nil {
		return err
	} else if same {
		return nil
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create icon copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy icon: %w", err)
	}
	return dst.Close()
}

func sameFile(src *os.File, dstPath string) (bool, error) {
	dstInfo, err := os.Stat(dstPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat icon copy: %w", err)
	}
	srcInfo, err := src.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat cached icon: %w", err)
	}
	return os.SameFile(srcInfo, dstInfo), nil
}
