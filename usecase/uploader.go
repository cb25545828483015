package usecase

import "context"

// Uploader sends one binary file to the external image host and returns a
// durable public URL. There is no retry, no progress reporting, and no way
// to delete an uploaded object afterwards.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}
