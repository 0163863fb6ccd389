package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/utafrali/solecrafted/internal/domain"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
)

// Catalog is an immutable in-memory product catalog. Accessors return copies
// of the backing slices so callers can sort and filter freely without
// synchronization.
type Catalog struct {
	products   []domain.Product
	categories []domain.Category
	brands     []domain.Brand
	byID       map[int]domain.Product
}

type seedFile struct {
	Products   []domain.Product  `json:"products"`
	Categories []domain.Category `json:"categories"`
	Brands     []domain.Brand    `json:"brands"`
}

// New builds a catalog from raw seed JSON.
func New(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}

	byID := make(map[int]domain.Product, len(seed.Products))
	for _, p := range seed.Products {
		byID[p.ID] = p
	}

	return &Catalog{
		products:   seed.Products,
		categories: seed.Categories,
		brands:     seed.Brands,
		byID:       byID,
	}, nil
}

// Load builds the catalog from the embedded seed data.
func Load() (*Catalog, error) {
	return New(seedData)
}

// All returns every product in catalog order.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the product with the given ID, or ErrNotFound.
func (c *Catalog) ByID(id int) (domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", fmt.Sprintf("%d", id))
	}
	return p, nil
}

// Featured returns the products flagged for the home page, in catalog order.
func (c *Catalog) Featured() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the browsable categories.
func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Brands returns the known brands.
func (c *Catalog) Brands() []domain.Brand {
	out := make([]domain.Brand, len(c.brands))
	copy(out, c.brands)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
