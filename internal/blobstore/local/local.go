package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalBlobStore struct {
	basePath string
}

func NewLocalBlobStore(basePath string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalBlobStore{basePath: basePath}, nil
}

// BasePath returns the directory blobs are stored in, for callers that serve
// files straight off the filesystem.
func (s *LocalBlobStore) BasePath() string {
	return s.basePath
}

func (s *LocalBlobStore) Write(ctx context.Context, name string, data []byte) error {
	filePath, err := s.safeJoin(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

func (s *LocalBlobStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	filePath, err := s.safeJoin(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %s", name)
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

func (s *LocalBlobStore) Exists(ctx context.Context, name string) bool {
	filePath, err := s.safeJoin(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(filePath)
	return err == nil
}

func (s *LocalBlobStore) Delete(ctx context.Context, name string) error {
	filePath, err := s.safeJoin(name)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// safeJoin resolves name relative to basePath and rejects directory traversal.
func (s *LocalBlobStore) safeJoin(name string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, name))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
