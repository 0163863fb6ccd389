package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/solecrafted/internal/catalog"
	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/internal/service"
	"github.com/utafrali/solecrafted/pkg/httputil"
	"github.com/utafrali/solecrafted/pkg/pagination"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ListResponse is the JSON payload for a product listing: one page of
// results plus the facet metadata for the filter sidebar.
type ListResponse struct {
	Products pagination.Result[domain.Product] `json:"products"`
	Facets   service.Facets                    `json:"facets"`
}

// filterFromQuery builds the filter from listing query parameters. Bad
// numeric values fall back to the defaults rather than failing the request.
func filterFromQuery(r *http.Request) catalog.FilterSpec {
	q := r.URL.Query()
	spec := catalog.DefaultFilterSpec()

	spec.Search = q.Get("search")
	spec.Category = q.Get("category")
	spec.Brand = q.Get("brand")
	spec.Size = q.Get("size")
	spec.Color = q.Get("color")

	if raw := q.Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			spec.MinPrice = v
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			spec.MaxPrice = v
		}
	}

	return spec
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	input := service.ListInput{
		Filter:     filterFromQuery(r),
		SortBy:     r.URL.Query().Get("sort_by"),
		Pagination: pagination.FromRequest(r),
	}

	result, err := h.service.List(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ListResponse{
		Products: result,
		Facets:   h.service.GetFacets(r.Context()),
	}})
}

// GetByID handles GET /api/v1/products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseIntParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Featured handles GET /api/v1/products/featured
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Featured(r.Context())})
}

// Categories handles GET /api/v1/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Categories(r.Context())})
}

// Brands handles GET /api/v1/brands
func (h *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Brands(r.Context())})
}
