package services

import (
	"context"
	"fmt"
	"log"

	"sweetshop/internal/catalog"
	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
	"sweetshop/pkg/imagestore"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	images imagestore.Store // may be nil
}

// NewProductService creates a new ProductService. images is used to clean up
// hosted pictures of replaced or deleted products and may be nil.
func NewProductService(repo repositories.ProductRepository, images imagestore.Store) *ProductService {
	return &ProductService{
		repo:   repo,
		images: images,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// BrowseProducts returns one page of the products matching f.
func (s *ProductService) BrowseProducts(ctx context.Context, f catalog.Filter) (catalog.Page, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return catalog.Page{}, err
	}
	return catalog.FilterAndPage(products, f), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a new product built from draft.
func (s *ProductService) CreateProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	product := models.NewProduct("", draft)
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces the editable fields of a product. When the image
// changes, the previously hosted image is removed.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, draft models.ProductDraft) (*models.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageChanged := existing.Image != draft.Image
	if !imageChanged && draft.ImagePublicID == "" {
		draft.ImagePublicID = existing.ImagePublicID
	}

	product := models.NewProduct(id, draft)
	if err := s.repo.Update(ctx, &product); err != nil {
		return nil, err
	}

	if imageChanged && existing.ImagePublicID != "" && existing.ImagePublicID != draft.ImagePublicID {
		s.deleteImage(ctx, existing.ImagePublicID)
	}
	return &product, nil
}

// DeleteProduct deletes a product and then its hosted image. Orders keep
// their own snapshot of the product and are not touched.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if existing.ImagePublicID != "" {
		s.deleteImage(ctx, existing.ImagePublicID)
	}
	return nil
}

func (s *ProductService) deleteImage(ctx context.Context, publicID string) {
	if s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, publicID); err != nil {
		log.Printf("Warning: failed to delete image %s: %v", publicID, err)
	}
}
