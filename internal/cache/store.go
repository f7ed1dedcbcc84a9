package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store writes r to the cache path for objectID and returns the final file
// path. The write goes through a temp file and a rename so readers never see
// a half-written image.
func (m *Manager) Store(objectID string, r io.Reader) (string, error) {
	if err := m.ensureDir(); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	destPath := m.ImagePath(objectID)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}

// Read returns the cached image bytes for objectID.
func (m *Manager) Read(objectID string) ([]byte, error) {
	return os.ReadFile(m.ImagePath(objectID))
}

// Info reports the number of cached images and their total size in bytes.
func (m *Manager) Info() (count int, bytes int64, err error) {
	entries, err := os.ReadDir(filepath.Join(m.baseDir, "images"))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, nil
}

// Clear removes the entire image cache directory.
func (m *Manager) Clear() error {
	return os.RemoveAll(filepath.Join(m.baseDir, "images"))
}
