package providers

import (
	"context"
	"io"
)

// PhotoStore stores room photos and returns their public URLs
type PhotoStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}
