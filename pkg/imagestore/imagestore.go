// Package imagestore hosts product images, either on Cloudinary or on the
// local disk when no Cloudinary account is configured.
package imagestore

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType is returned for files that are not images.
var ErrUnsupportedType = errors.New("unsupported image type")

// Image is a hosted image.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Store uploads and deletes hosted images.
type Store interface {
	Upload(ctx context.Context, filename string, r io.Reader) (Image, error)
	Delete(ctx context.Context, publicID string) error
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// CheckExtension rejects file names without an image extension.
func CheckExtension(filename string) error {
	if !allowedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return ErrUnsupportedType
	}
	return nil
}
