package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/solecrafted/internal/catalog"
	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/internal/event"
	"github.com/utafrali/solecrafted/internal/payment"
	"github.com/utafrali/solecrafted/internal/repository/memory"
	"github.com/utafrali/solecrafted/internal/service"
	"github.com/utafrali/solecrafted/pkg/health"
	pkgkafka "github.com/utafrali/solecrafted/pkg/kafka"
	"github.com/utafrali/solecrafted/pkg/middleware"
)

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

// setupServer wires the full router against in-memory repositories and the
// simulated payment gateway, mirroring the production route layout.
func setupServer(t *testing.T) http.Handler {
	t.Helper()
	logger := testLogger()

	cat, err := catalog.Load()
	require.NoError(t, err)

	producer := testEventProducer()
	gateway := payment.NewSimulatedGateway(payment.SimulatedConfig{Latency: 0}, logger)

	cartRepo := memory.NewCartRepository()
	wishlistRepo := memory.NewWishlistRepository()
	orderRepo := memory.NewOrderRepository()
	prefsRepo := memory.NewPreferencesRepository()

	svcs := Services{
		Products:    service.NewProductService(cat, logger),
		Cart:        service.NewCartService(cat, cartRepo, producer, logger),
		Wishlist:    service.NewWishlistService(cat, wishlistRepo, producer, logger),
		Checkout:    service.NewCheckoutService(cartRepo, orderRepo, gateway, producer, logger),
		Auth:        service.NewAuthService(prefsRepo, logger),
		Preferences: service.NewPreferencesService(prefsRepo, logger),
	}

	return NewRouter(svcs, health.NewHandler(), middleware.DefaultCORSConfig(), logger)
}

func doJSON(t *testing.T, srv http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func checkoutBody() map[string]any {
	return map[string]any{
		"first_name":     "Jamie",
		"last_name":      "Rivera",
		"email":          "jamie@example.com",
		"phone":          "5551234567",
		"address":        "1 Main St",
		"city":           "Portland",
		"state":          "OR",
		"zip_code":       "97201",
		"payment_method": "card",
		"card_number":    "4111111111111111",
		"expiry_date":    "12/27",
		"cvv":            "123",
	}
}

// ============================================================================
// Catalog endpoints
// ============================================================================

func TestRouter_ListProducts(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, 10, resp.Products.TotalCount)
	assert.Len(t, resp.Products.Data, 10)
	assert.Len(t, resp.Facets.Brands, 7)
	assert.Equal(t, 60.0, resp.Facets.PriceRange.Min)
}

func TestRouter_ListProducts_FilterSortPaginate(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/products?brand=Nike&sort_by=price-low", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	decodeData(t, rec, &resp)
	require.Equal(t, 3, resp.Products.TotalCount)
	assert.Equal(t, "Nike Air Force 1", resp.Products.Data[0].Name)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/products?per_page=4&page=3", "", nil)
	decodeData(t, rec, &resp)
	assert.Len(t, resp.Products.Data, 2)
	assert.Equal(t, 3, resp.Products.TotalPages)
}

func TestRouter_ListProducts_SearchAndPriceRange(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/products?search=boost", "", nil)
	var resp ListResponse
	decodeData(t, rec, &resp)
	require.Equal(t, 1, resp.Products.TotalCount)
	assert.Equal(t, "Adidas Ultraboost 22", resp.Products.Data[0].Name)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/products?min_price=60&max_price=65", "", nil)
	decodeData(t, rec, &resp)
	assert.Equal(t, 2, resp.Products.TotalCount)
}

func TestRouter_GetProduct(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/products/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.Product
	decodeData(t, rec, &p)
	assert.Equal(t, "Nike Air Max 270", p.Name)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", errorCode(t, rec))
}

func TestRouter_FeaturedCategoriesBrands(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/products/featured", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeData(t, rec, &products)
	assert.Len(t, products, 5)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []domain.Category
	decodeData(t, rec, &categories)
	assert.Len(t, categories, 4)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/brands", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var brands []domain.Brand
	decodeData(t, rec, &brands)
	assert.Len(t, brands, 7)
}

// ============================================================================
// Cart endpoints
// ============================================================================

func TestRouter_Cart_RequiresUserHeader(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
}

func TestRouter_Cart_AddUpdateRemoveFlow(t *testing.T) {
	srv := setupServer(t)

	// Empty cart for a fresh user.
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/cart", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart domain.Cart
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)

	// Add two pairs of product 1 in size 9.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "user-1",
		map[string]any{"product_id": 1, "quantity": 2, "size": "9"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 150.0, cart.Items[0].Price)

	// Same product, same size merges.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "user-1",
		map[string]any{"product_id": 1, "quantity": 1, "size": "9"})
	decodeData(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Set absolute quantity.
	rec = doJSON(t, srv, http.MethodPut, "/api/v1/cart/items/1", "user-1",
		map[string]any{"quantity": 5, "size": "9"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cart)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Remove the line.
	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/cart/items/1?size=9", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
}

func TestRouter_Cart_AddUnknownProduct(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "user-1",
		map[string]any{"product_id": 999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Cart_ValidationError(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "user-1",
		map[string]any{"product_id": 1, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestRouter_Cart_IsolatedPerUser(t *testing.T) {
	srv := setupServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "user-1",
		map[string]any{"product_id": 1, "quantity": 1})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/cart", "user-2", nil)
	var cart domain.Cart
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
}

// ============================================================================
// Wishlist endpoints
// ============================================================================

func TestRouter_Wishlist_ToggleFlow(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/wishlist/toggle", "user-1",
		map[string]any{"product_id": 8})
	require.Equal(t, http.StatusOK, rec.Code)
	var toggle struct {
		Wishlist domain.Wishlist `json:"wishlist"`
		Saved    bool            `json:"saved"`
	}
	decodeData(t, rec, &toggle)
	assert.True(t, toggle.Saved)
	require.Len(t, toggle.Wishlist.Items, 1)
	assert.Equal(t, "Jordan Air 1", toggle.Wishlist.Items[0].Name)

	// Toggling again removes it.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/wishlist/toggle", "user-1",
		map[string]any{"product_id": 8})
	decodeData(t, rec, &toggle)
	assert.False(t, toggle.Saved)
	assert.Empty(t, toggle.Wishlist.Items)
}

func TestRouter_Wishlist_AddAndRemove(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/wishlist/items", "user-1",
		map[string]any{"product_id": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate add keeps a single entry.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/wishlist/items", "user-1",
		map[string]any{"product_id": 3})
	var wishlist domain.Wishlist
	decodeData(t, rec, &wishlist)
	assert.Len(t, wishlist.Items, 1)

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/wishlist/items/3", "user-1", nil)
	decodeData(t, rec, &wishlist)
	assert.Empty(t, wishlist.Items)
}

// ============================================================================
// Checkout endpoints
// ============================================================================

func TestRouter_Checkout_FullFlow(t *testing.T) {
	srv := setupServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "user-1",
		map[string]any{"product_id": 1, "quantity": 2, "size": "9"})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/orders", "user-1", checkoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	decodeData(t, rec, &order)
	assert.Equal(t, 300.0, order.Subtotal)
	assert.Equal(t, 0.0, order.Shipping)
	assert.Equal(t, 24.0, order.Tax)
	assert.Equal(t, 324.0, order.Total)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)

	// The cart is cleared after a successful checkout.
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/cart", "user-1", nil)
	var cart domain.Cart
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)

	// The order shows up in the history and by ID.
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/orders", "user-1", nil)
	var orders []domain.Order
	decodeData(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/orders/"+order.ID, "user-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another user cannot read it.
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/orders/"+order.ID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Checkout_EmptyCart(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/orders", "user-1", checkoutBody())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Checkout_ValidationError(t *testing.T) {
	srv := setupServer(t)

	body := checkoutBody()
	body["email"] = "not-an-email"
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/orders", "user-1", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

// ============================================================================
// Auth and preferences endpoints
// ============================================================================

func TestRouter_AuthRegisterLogin(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "",
		map[string]any{"name": "Jamie", "email": "jamie@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var user domain.User
	decodeData(t, rec, &user)
	assert.NotEmpty(t, user.ID)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "",
		map[string]any{"email": "jamie@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Preferences_ThemeRoundTrip(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/preferences", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var prefs domain.Preferences
	decodeData(t, rec, &prefs)
	assert.Equal(t, domain.ThemeLight, prefs.Theme)

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/preferences/theme", "user-1",
		map[string]any{"theme": "dark"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &prefs)
	assert.Equal(t, domain.ThemeDark, prefs.Theme)

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/preferences/theme", "user-1",
		map[string]any{"theme": "sepia"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Health endpoints
// ============================================================================

func TestRouter_Health(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
