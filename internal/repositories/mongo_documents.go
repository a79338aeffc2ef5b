package repositories

import (
	"fmt"
	"time"

	"sweetshop/internal/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names used by the Mongo repositories.
const (
	ProductsCollection     = "products"
	OrdersCollection       = "orders"
	TransactionsCollection = "transactions"
	UsersCollection        = "users"
)

// Money is stored as Decimal128 so amounts keep their exact value in the
// document store.
func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to encode amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode amount %s: %w", v, err)
	}
	return d, nil
}

type productDocument struct {
	ID            string               `bson:"_id"`
	Name          string               `bson:"name"`
	Price         primitive.Decimal128 `bson:"price"`
	Image         string               `bson:"image"`
	ImagePublicID string               `bson:"image_public_id,omitempty"`
	Available     bool                 `bson:"available"`
	Category      string               `bson:"category"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func newProductDocument(p *models.Product) (productDocument, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDocument{}, err
	}
	return productDocument{
		ID:            p.ID,
		Name:          p.Name,
		Price:         price,
		Image:         p.Image,
		ImagePublicID: p.ImagePublicID,
		Available:     p.Available,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func (d productDocument) model() (models.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return models.Product{}, err
	}
	p := models.NewProduct(d.ID, models.ProductDraft{
		Name:          d.Name,
		Price:         price,
		Image:         d.Image,
		ImagePublicID: d.ImagePublicID,
		Available:     d.Available,
		Category:      d.Category,
	})
	p.CreatedAt = d.CreatedAt
	p.UpdatedAt = d.UpdatedAt
	return p, nil
}

type lineItemDocument struct {
	ProductID string               `bson:"product_id"`
	Name      string               `bson:"name"`
	Price     primitive.Decimal128 `bson:"price"`
	Image     string               `bson:"image"`
	Quantity  int                  `bson:"quantity"`
}

type customerDocument struct {
	Name    string `bson:"name"`
	Phone   string `bson:"phone"`
	Email   string `bson:"email"`
	Address string `bson:"address"`
}

type orderDocument struct {
	ID         string               `bson:"_id"`
	Customer   customerDocument     `bson:"customer"`
	Items      []lineItemDocument   `bson:"items"`
	Subtotal   primitive.Decimal128 `bson:"subtotal"`
	Shipping   primitive.Decimal128 `bson:"shipping"`
	GrandTotal primitive.Decimal128 `bson:"grand_total"`
	Status     string               `bson:"status"`
	CreatedAt  time.Time            `bson:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at"`
}

func newOrderDocument(o *models.Order) (orderDocument, error) {
	doc := orderDocument{
		ID:        o.ID,
		Customer:  customerDocument(o.Customer),
		Items:     make([]lineItemDocument, 0, len(o.Items)),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, li := range o.Items {
		price, err := toDecimal128(li.Price)
		if err != nil {
			return orderDocument{}, err
		}
		doc.Items = append(doc.Items, lineItemDocument{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     price,
			Image:     li.Image,
			Quantity:  li.Quantity,
		})
	}
	var err error
	if doc.Subtotal, err = toDecimal128(o.Totals.Subtotal); err != nil {
		return orderDocument{}, err
	}
	if doc.Shipping, err = toDecimal128(o.Totals.Shipping); err != nil {
		return orderDocument{}, err
	}
	if doc.GrandTotal, err = toDecimal128(o.Totals.GrandTotal); err != nil {
		return orderDocument{}, err
	}
	return doc, nil
}

func (d orderDocument) model() (models.Order, error) {
	o := models.Order{
		ID:        d.ID,
		Customer:  models.Customer(d.Customer),
		Items:     make([]models.LineItem, 0, len(d.Items)),
		Status:    models.OrderStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	for _, li := range d.Items {
		price, err := fromDecimal128(li.Price)
		if err != nil {
			return models.Order{}, err
		}
		o.Items = append(o.Items, models.LineItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     price,
			Image:     li.Image,
			Quantity:  li.Quantity,
		})
	}
	var err error
	if o.Totals.Subtotal, err = fromDecimal128(d.Subtotal); err != nil {
		return models.Order{}, err
	}
	if o.Totals.Shipping, err = fromDecimal128(d.Shipping); err != nil {
		return models.Order{}, err
	}
	if o.Totals.GrandTotal, err = fromDecimal128(d.GrandTotal); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

type transactionDocument struct {
	ID          string               `bson:"_id"`
	Type        string               `bson:"type"`
	Description string               `bson:"description"`
	Category    string               `bson:"category"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Date        string               `bson:"date"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func newTransactionDocument(t *models.Transaction) (transactionDocument, error) {
	amount, err := toDecimal128(t.Amount)
	if err != nil {
		return transactionDocument{}, err
	}
	return transactionDocument{
		ID:          t.ID,
		Type:        string(t.Type),
		Description: t.Description,
		Category:    t.Category,
		Amount:      amount,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}, nil
}

func (d transactionDocument) model() (models.Transaction, error) {
	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		ID: d.ID,
		TransactionDraft: models.TransactionDraft{
			Type:        models.TransactionType(d.Type),
			Description: d.Description,
			Category:    d.Category,
			Amount:      amount,
			Date:        d.Date,
		},
		CreatedAt: d.CreatedAt,
	}, nil
}

type userDocument struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
}
