package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MockStorageService stores proof images on the local filesystem and
// serves them over the API server's own HTTP routes. For development
// and tests without an ImgBB key.
type MockStorageService struct {
	baseURL    string // server URL (e.g. "http://localhost:8080")
	uploadsDir string
}

func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &MockStorageService{
		baseURL:    baseURL,
		uploadsDir: uploadsDir,
	}, nil
}

func (m *MockStorageService) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = extensionForContentType(contentType)
	}
	key := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(m.uploadsDir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/api/v1/proofs/%s", m.baseURL, key), nil
}

// ReadFile opens a stored image for the HTTP download handler.
func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	// Reject path traversal in the key
	if filepath.Base(key) != key {
		return nil, fmt.Errorf("invalid key")
	}
	return os.Open(filepath.Join(m.uploadsDir, key))
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	}
	return ""
}
