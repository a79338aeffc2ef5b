package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sweetshop/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductRepository stores products in a MongoDB collection.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(ProductsCollection)}
}

// GetAll returns all products, newest first.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.model()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// GetByID returns a product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	p, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	doc, err := newProductDocument(product)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("product with ID %s: %w", product.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update sets the editable fields of a product, keeping created_at.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	doc, err := newProductDocument(product)
	if err != nil {
		return err
	}
	set := bson.M{
		"name":            doc.Name,
		"price":           doc.Price,
		"image":           doc.Image,
		"image_public_id": doc.ImagePublicID,
		"available":       doc.Available,
		"category":        doc.Category,
		"updated_at":      doc.UpdatedAt,
	}
	var stored productDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": product.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	p, err := stored.model()
	if err != nil {
		return err
	}
	*product = p
	return nil
}

// Delete removes a product document.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
