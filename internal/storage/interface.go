package storage

import (
	"context"
	"io"
)

// Interface is the proof-image storage contract. The workflow only
// ever stores the returned URL, never the bytes.
type Interface interface {
	// UploadImage stores the image and returns a stable public URL.
	// filename is advisory; backends may rename.
	UploadImage(ctx context.Context, filename string, contentType string, data io.Reader) (string, error)
}
