// Package catalog filters and paginates product listings.
package catalog

import (
	"strings"

	"sweetshop/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultPageSize is used when a filter asks for a non-positive page size.
const DefaultPageSize = 10

// Filter narrows a product listing. Zero values disable a clause.
type Filter struct {
	Search       string
	MaxPrice     *decimal.Decimal
	Category     string
	Availability string
	Page         int
	PageSize     int
}

// Page is one page of a filtered listing.
type Page struct {
	Items      []models.Product `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// Matches reports whether p satisfies every clause of f.
func (f Filter) Matches(p models.Product) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if c := strings.TrimSpace(f.Category); c != "" && strings.TrimSpace(p.Category) != c {
		return false
	}
	switch f.Availability {
	case models.AvailabilityInStock:
		return p.Available
	case models.AvailabilityOutOfStock:
		return !p.Available
	}
	return true
}

// FilterAndPage returns the requested page of products matching f. The page
// number is clamped into [1, TotalPages]; with no matches the result is an
// empty page 1 and TotalPages is 0. Relative input order is preserved.
func FilterAndPage(products []models.Product, f Filter) Page {
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}

	totalPages := (len(matched) + size - 1) / size
	page := f.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Page{
		Items:      matched[start:end],
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Total:      len(matched),
	}
}
