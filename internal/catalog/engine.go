package catalog

import (
	"sort"
	"strings"

	"github.com/utafrali/solecrafted/internal/domain"
)

// Sort keys accepted by Sort. Unknown keys preserve the input order.
const (
	SortName      = "name"
	SortBrand     = "brand"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// Default price bounds used when no explicit range is given and as the
// fallback range for an empty catalog.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
)

// FilterSpec describes the active product constraints. An empty string
// means "no constraint" for that facet; the price range is always applied.
type FilterSpec struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}

// DefaultFilterSpec returns the spec with no facet constraints and the
// default price range.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{MinPrice: DefaultMinPrice, MaxPrice: DefaultMaxPrice}
}

// matches reports whether the product satisfies every active constraint.
func (s FilterSpec) matches(p domain.Product) bool {
	if s.Search != "" {
		q := strings.ToLower(s.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}

	if s.Category != "" && p.Category != s.Category {
		return false
	}

	if s.Brand != "" && p.Brand != s.Brand {
		return false
	}

	if s.Size != "" && !p.HasSize(s.Size) {
		return false
	}

	if s.Color != "" && !p.HasColor(s.Color) {
		return false
	}

	// An inverted range (min > max) simply matches nothing.
	return p.Price >= s.MinPrice && p.Price <= s.MaxPrice
}

// Filter returns the products satisfying the spec, in catalog order.
// The input slice is never mutated.
func Filter(products []domain.Product, spec FilterSpec) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if spec.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Sort returns a new slice ordered by the given key. The sort is stable:
// products comparing equal keep their relative catalog order. Note that the
// popular sort orders by rating alone and does not break ties by review
// count; this mirrors the storefront's existing behavior.
func Sort(products []domain.Product, key string) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch key {
	case SortName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	case SortBrand:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Brand < sorted[j].Brand
		})
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortPopular:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating > sorted[j].Rating
		})
	}

	return sorted
}

// Page is one page of a product listing.
type Page struct {
	Items      []domain.Product `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

// Paginate slices the products into the requested 1-indexed page. A page
// past the end yields an empty page rather than an error. Out-of-range
// arguments are normalized: page below 1 becomes 1, a non-positive perPage
// becomes 1.
func Paginate(products []domain.Product, perPage, page int) Page {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(products)
	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page{
		Items:      products[start:end],
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// UniqueSizes returns the sorted union of size labels over the whole
// catalog. Facets are always derived from the unfiltered catalog so the
// filter sidebar keeps showing every option.
func UniqueSizes(products []domain.Product) []string {
	return uniqueLabels(products, func(p domain.Product) []string { return p.Sizes })
}

// UniqueColors returns the sorted union of color labels over the whole catalog.
func UniqueColors(products []domain.Product) []string {
	return uniqueLabels(products, func(p domain.Product) []string { return p.Colors })
}

func uniqueLabels(products []domain.Product, labels func(domain.Product) []string) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		for _, l := range labels(p) {
			seen[l] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// PriceBounds is the min/max price over a set of products.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceRange returns the price bounds over the catalog. An empty catalog
// yields the default bounds.
func PriceRange(products []domain.Product) PriceBounds {
	if len(products) == 0 {
		return PriceBounds{Min: DefaultMinPrice, Max: DefaultMaxPrice}
	}

	bounds := PriceBounds{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		if p.Price < bounds.Min {
			bounds.Min = p.Price
		}
		if p.Price > bounds.Max {
			bounds.Max = p.Price
		}
	}
	return bounds
}
