package contracts

import "context"

// AttachmentStorage stores and retrieves photo bytes. Locators are opaque to
// callers: a filesystem path for the local backend, an object name for the
// minio backend. Write returns the locator under which name was stored.
type AttachmentStorage interface {
	Read(ctx context.Context, locator string) ([]byte, error)
	Write(ctx context.Context, name string, contentType string, data []byte) (string, error)
}
