package cache

import (
	"os"
	"path/filepath"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
)

// Manager handles the local cache of downloaded artwork images.
// Layout: <baseDir>/images/<objectID>.img
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// ImagePath returns the cache path for an object's primary image.
func (m *Manager) ImagePath(objectID string) string {
	return filepath.Join(m.baseDir, "images", artwork.NormalizeID(objectID)+".img")
}

// HasImage reports whether the object's image is cached.
func (m *Manager) HasImage(objectID string) bool {
	_, err := os.Stat(m.ImagePath(objectID))
	return err == nil
}

// Remove deletes the cached image if it exists.
func (m *Manager) Remove(objectID string) error {
	err := os.Remove(m.ImagePath(objectID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (m *Manager) ensureDir() error {
	return os.MkdirAll(filepath.Join(m.baseDir, "images"), 0o750)
}
