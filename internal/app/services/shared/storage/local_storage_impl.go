package storage

import (
	"context"
	"os"
	"path/filepath"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/pkg/exceptions"
)

// localStorage keeps attachment bytes on the local filesystem. Locators are
// absolute file paths, matching how the capturing device references its
// photos.
type localStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) contracts.AttachmentStorage {
	return &localStorage{baseDir: baseDir}
}

func (s *localStorage) Read(ctx context.Context, locator string) ([]byte, error) {
	data, err := os.ReadFile(locator)
	if err != nil {
		return nil, exceptions.ErrAttachmentRead(err)
	}
	return data, nil
}

func (s *localStorage) Write(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", exceptions.ErrAttachmentWrite(err)
	}

	// The locator is rebuilt from the base name so imported bundles never
	// dictate where bytes land.
	path := filepath.Join(s.baseDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", exceptions.ErrAttachmentWrite(err)
	}
	return path, nil
}
