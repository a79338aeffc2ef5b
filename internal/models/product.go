package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDraft carries the editable fields of a product before it has an ID.
type ProductDraft struct {
	Name          string          `json:"name" validate:"required,min=2,max=100"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2)" validate:"gte=0,money"`
	Image         string          `json:"image" validate:"required"`
	ImagePublicID string          `json:"image_public_id,omitempty"`
	Available     bool            `json:"available"`
	Category      string          `json:"category" gorm:"index;type:varchar(50)" validate:"omitempty,max=50"`
}

// Product represents a persisted product in the catalog.
type Product struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductDraft `gorm:"embedded"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProduct builds a persisted-shape product from a draft.
func NewProduct(id string, draft ProductDraft) Product {
	return Product{ID: id, ProductDraft: draft}
}

// Stock availability values accepted by the catalog filter.
const (
	AvailabilityAny        = ""
	AvailabilityInStock    = "inStock"
	AvailabilityOutOfStock = "outOfStock"
)
