package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage defines the interface for receipt image storage operations
type Storage interface {
	// Save saves a file under a generated unique name and returns the stored path
	Save(filename string, data []byte) (string, error)

	// Get retrieves a file by its stored path
	Get(path string) ([]byte, error)

	// Delete removes a file
	Delete(path string) error
}

// LocalStorage implements the Storage interface using the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save writes the file under a UUID-prefixed name to avoid collisions
// between uploads that share an original filename
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	stored := uuid.New().String() + sanitizeExt(filename)
	path := filepath.Join(l.basePath, stored)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return stored, nil
}

// Get retrieves a file from local storage. Paths containing traversal
// segments are rejected.
func (l *LocalStorage) Get(path string) ([]byte, error) {
	if strings.Contains(path, "..") {
		return nil, fmt.Errorf("invalid storage path: %s", path)
	}

	fullPath := filepath.Join(l.basePath, path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a file from local storage
func (l *LocalStorage) Delete(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("invalid storage path: %s", path)
	}

	fullPath := filepath.Join(l.basePath, path)
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".heic", ".pdf":
		return ext
	default:
		return ".bin"
	}
}
