package service

import (
	"context"
	"log/slog"

	"github.com/utafrali/solecrafted/internal/catalog"
	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/pkg/pagination"
)

// ListInput holds the parameters for a product listing request.
type ListInput struct {
	Filter     catalog.FilterSpec
	SortBy     string
	Pagination pagination.Params
}

// Facets describe the filter options offered alongside a listing. They are
// derived from the full catalog, not the filtered subset, so narrowing one
// facet never hides the others.
type Facets struct {
	Categories []domain.Category   `json:"categories"`
	Brands     []domain.Brand      `json:"brands"`
	Sizes      []string            `json:"sizes"`
	Colors     []string            `json:"colors"`
	PriceRange catalog.PriceBounds `json:"price_range"`
}

// ProductService serves catalog reads: filtered listings, lookups, and
// facet metadata. The catalog is immutable, so no operation here mutates
// shared state.
type ProductService struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(cat *catalog.Catalog, logger *slog.Logger) *ProductService {
	return &ProductService{
		catalog: cat,
		logger:  logger,
	}
}

// List returns one page of products matching the filter, in the requested
// sort order.
func (s *ProductService) List(ctx context.Context, input ListInput) (pagination.Result[domain.Product], error) {
	filtered := catalog.Filter(s.catalog.All(), input.Filter)
	sorted := catalog.Sort(filtered, input.SortBy)
	page := catalog.Paginate(sorted, input.Pagination.PerPage, input.Pagination.Page)

	s.logger.DebugContext(ctx, "product listing",
		slog.Int("matched", page.TotalItems),
		slog.Int("page", input.Pagination.Page),
		slog.String("sort_by", input.SortBy),
	)

	return pagination.NewResult(page.Items, page.TotalItems, input.Pagination), nil
}

// GetByID returns a single product, or ErrNotFound.
func (s *ProductService) GetByID(_ context.Context, id int) (domain.Product, error) {
	return s.catalog.ByID(id)
}

// Featured returns the products flagged for the home page.
func (s *ProductService) Featured(_ context.Context) []domain.Product {
	return s.catalog.Featured()
}

// Categories returns the browsable categories.
func (s *ProductService) Categories(_ context.Context) []domain.Category {
	return s.catalog.Categories()
}

// Brands returns the known brands.
func (s *ProductService) Brands(_ context.Context) []domain.Brand {
	return s.catalog.Brands()
}

// GetFacets returns the filter options for the listing sidebar.
func (s *ProductService) GetFacets(_ context.Context) Facets {
	all := s.catalog.All()
	return Facets{
		Categories: s.catalog.Categories(),
		Brands:     s.catalog.Brands(),
		Sizes:      catalog.UniqueSizes(all),
		Colors:     catalog.UniqueColors(all),
		PriceRange: catalog.PriceRange(all),
	}
}
