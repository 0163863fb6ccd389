package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/solecrafted/internal/service"
	"github.com/utafrali/solecrafted/pkg/health"
	"github.com/utafrali/solecrafted/pkg/middleware"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	Products    *service.ProductService
	Cart        *service.CartService
	Wishlist    *service.WishlistService
	Checkout    *service.CheckoutService
	Auth        *service.AuthService
	Preferences *service.PreferencesService
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svcs Services,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(svcs.Products, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	wishlistHandler := NewWishlistHandler(svcs.Wishlist, logger)
	orderHandler := NewOrderHandler(svcs.Checkout, logger)
	authHandler := NewAuthHandler(svcs.Auth, logger)
	prefsHandler := NewPreferencesHandler(svcs.Preferences, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Catalog reads are anonymous.
		r.Get("/products", productHandler.List)
		r.Get("/products/featured", productHandler.Featured)
		r.Get("/products/{id}", productHandler.GetByID)
		r.Get("/categories", productHandler.Categories)
		r.Get("/brands", productHandler.Brands)

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything below is scoped to a user session.
		r.Group(func(r chi.Router) {
			r.Use(UserIDFromHeader)

			r.Post("/auth/logout", authHandler.Logout)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productId}", cartHandler.UpdateQuantity)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)

			r.Get("/wishlist", wishlistHandler.GetWishlist)
			r.Delete("/wishlist", wishlistHandler.ClearWishlist)
			r.Post("/wishlist/items", wishlistHandler.AddItem)
			r.Post("/wishlist/toggle", wishlistHandler.ToggleItem)
			r.Delete("/wishlist/items/{productId}", wishlistHandler.RemoveItem)

			r.Post("/orders", orderHandler.PlaceOrder)
			r.Get("/orders", orderHandler.ListOrders)
			r.Get("/orders/{orderId}", orderHandler.GetOrder)

			r.Get("/preferences", prefsHandler.GetPreferences)
			r.Put("/preferences/theme", prefsHandler.SetTheme)
		})
	})

	return r
}
