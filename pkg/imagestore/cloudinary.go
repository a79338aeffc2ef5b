package imagestore

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ProductsFolder is the Cloudinary folder product images are uploaded to.
const ProductsFolder = "products"

// CloudinaryStore hosts images on Cloudinary.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a store from account credentials.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: ProductsFolder}, nil
}

// Upload sends the image to Cloudinary and returns its secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, filename string, r io.Reader) (Image, error) {
	if err := CheckExtension(filename); err != nil {
		return Image{}, err
	}
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return Image{}, fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	if res.Error.Message != "" {
		return Image{}, fmt.Errorf("failed to upload %s: %s", filename, res.Error.Message)
	}
	return Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Delete removes a hosted image by its public id.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to delete image %s: %s", publicID, res.Error.Message)
	}
	return nil
}
