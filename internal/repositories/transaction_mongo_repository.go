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

// MongoTransactionRepository stores ledger entries in a MongoDB collection.
type MongoTransactionRepository struct {
	coll *mongo.Collection
}

// NewMongoTransactionRepository creates a new instance of MongoTransactionRepository.
func NewMongoTransactionRepository(db *mongo.Database) *MongoTransactionRepository {
	return &MongoTransactionRepository{coll: db.Collection(TransactionsCollection)}
}

// GetAll returns all entries ordered by date, then creation time.
func (r *MongoTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	sort := bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}}
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	var docs []transactionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}
	txns := make([]models.Transaction, 0, len(docs))
	for _, d := range docs {
		t, err := d.model()
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// GetByID returns one entry.
func (r *MongoTransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var doc transactionDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("transaction with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	t, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new entry.
func (r *MongoTransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now().UTC()
	doc, err := newTransactionDocument(txn)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// Update rewrites the editable fields of an entry.
func (r *MongoTransactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	doc, err := newTransactionDocument(txn)
	if err != nil {
		return err
	}
	set := bson.M{
		"type":        doc.Type,
		"description": doc.Description,
		"category":    doc.Category,
		"amount":      doc.Amount,
		"date":        doc.Date,
	}
	var stored transactionDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": txn.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("transaction with ID %s: %w", txn.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	t, err := stored.model()
	if err != nil {
		return err
	}
	*txn = t
	return nil
}

// Delete removes an entry.
func (r *MongoTransactionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("transaction with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
