// Package storage reads and writes galign inputs and outputs on the local
// filesystem or S3, compressing by file extension.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Storage reads and writes whole objects relative to a base location
type Storage interface {
	// ReadFile reads a file
	ReadFile(path string) ([]byte, error)

	// WriteFile writes a file, creating parent directories where needed
	WriteFile(path string, data []byte) error

	// Exists checks if a file exists
	Exists(path string) (bool, error)

	// GetBasePath returns the base path
	GetBasePath() string

	// IsS3 returns true if this is S3 storage
	IsS3() bool
}

// LocalStorage implements Storage for the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage backend
func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

func (s *LocalStorage) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.basePath, path))
}

func (s *LocalStorage) WriteFile(path string, data []byte) error {
	fullPath := filepath.Join(s.basePath, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

func (s *LocalStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.basePath, path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) GetBasePath() string {
	return s.basePath
}

func (s *LocalStorage) IsS3() bool {
	return false
}

// NewStorage creates the appropriate storage backend based on path
func NewStorage(ctx context.Context, path string) (Storage, error) {
	if IsS3URI(path) {
		return NewS3Storage(ctx, path)
	}
	return NewLocalStorage(path), nil
}

// split separates a location into the base a Storage is opened on and the
// object name within it
func split(uri string) (string, string, error) {
	if !IsS3URI(uri) {
		return filepath.Dir(uri), filepath.Base(uri), nil
	}

	parsed, err := ParseS3URI(uri)
	if err != nil {
		return "", "", err
	}
	base := "s3://" + parsed.Bucket
	key := parsed.Prefix
	if i := strings.LastIndex(key, "/"); i >= 0 {
		base += "/" + key[:i]
		key = key[i+1:]
	}
	return base, key, nil
}
