package cloudwriter

import "context"

// Uploader pushes a finished export file to object storage.
type Uploader interface {
	Upload(ctx context.Context, objectPath string, localPath string) error
}
