package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes images to a directory served under URLPrefix.
type LocalStore struct {
	dir     string
	baseURL string
}

// URLPrefix is the path the upload directory is served from.
const URLPrefix = "/uploads"

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory images are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Upload stores the image under a random name keeping its extension.
func (s *LocalStore) Upload(_ context.Context, filename string, r io.Reader) (Image, error) {
	if err := CheckExtension(filename); err != nil {
		return Image{}, err
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return Image{}, fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return Image{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return Image{URL: s.baseURL + URLPrefix + "/" + name, PublicID: name}, nil
}

// Delete removes a stored image. A missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, publicID string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(publicID)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}
