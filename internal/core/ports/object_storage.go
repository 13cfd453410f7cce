package ports

import "context"

// ObjectStorage abstracts the blob store holding menu images. Upload must
// complete before any catalog row referencing the key is written; PublicURL
// is assumed stable once the object exists.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}
