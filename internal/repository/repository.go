package repository

import (
	"context"

	"github.com/utafrali/solecrafted/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves the cart for the given user ID.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists the cart, overwriting any existing cart for the user.
	Save(ctx context.Context, userID string, cart *domain.Cart) error

	// Delete removes the user's cart from the store.
	Delete(ctx context.Context, userID string) error
}

// WishlistRepository defines the interface for wishlist persistence operations.
type WishlistRepository interface {
	// Get retrieves the wishlist for the given user ID.
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)

	// Save persists the wishlist, overwriting any existing one for the user.
	Save(ctx context.Context, userID string, wishlist *domain.Wishlist) error

	// Delete removes the user's wishlist from the store.
	Delete(ctx context.Context, userID string) error
}

// PreferencesRepository defines the interface for user preference persistence.
type PreferencesRepository interface {
	// Get retrieves the preferences for the given user ID.
	Get(ctx context.Context, userID string) (*domain.Preferences, error)

	// Save persists the user's preferences.
	Save(ctx context.Context, userID string, prefs *domain.Preferences) error
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Get retrieves an order by its ID.
	Get(ctx context.Context, orderID string) (*domain.Order, error)

	// Save persists the order and adds it to the user's order index.
	Save(ctx context.Context, order *domain.Order) error

	// ListByUser retrieves the user's orders, most recent first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
