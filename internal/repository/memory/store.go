// Package memory provides mutex-guarded in-memory repository
// implementations. They back the handler and service tests and can run the
// server without Redis for local development.
package memory

import (
	"context"
	"sync"

	"github.com/utafrali/solecrafted/internal/domain"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
)

// CartRepository is an in-memory repository.CartRepository.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewCartRepository creates an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]domain.Cart)}
}

// Get retrieves the cart for the given user ID.
func (r *CartRepository) Get(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, apperrors.NotFound("cart", userID)
	}
	out := cloneCart(cart)
	return &out, nil
}

// Save persists the cart for the given user ID.
func (r *CartRepository) Save(_ context.Context, userID string, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[userID] = cloneCart(*cart)
	return nil
}

// Delete removes the user's cart.
func (r *CartRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	if len(items) == 0 {
		items = nil
	}
	return domain.Cart{Items: items}
}

// WishlistRepository is an in-memory repository.WishlistRepository.
type WishlistRepository struct {
	mu        sync.RWMutex
	wishlists map[string]domain.Wishlist
}

// NewWishlistRepository creates an empty in-memory wishlist repository.
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{wishlists: make(map[string]domain.Wishlist)}
}

// Get retrieves the wishlist for the given user ID.
func (r *WishlistRepository) Get(_ context.Context, userID string) (*domain.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlist, ok := r.wishlists[userID]
	if !ok {
		return nil, apperrors.NotFound("wishlist", userID)
	}
	out := cloneWishlist(wishlist)
	return &out, nil
}

// Save persists the wishlist for the given user ID.
func (r *WishlistRepository) Save(_ context.Context, userID string, wishlist *domain.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wishlists[userID] = cloneWishlist(*wishlist)
	return nil
}

// Delete removes the user's wishlist.
func (r *WishlistRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.wishlists, userID)
	return nil
}

func cloneWishlist(wishlist domain.Wishlist) domain.Wishlist {
	items := make([]domain.WishlistItem, len(wishlist.Items))
	copy(items, wishlist.Items)
	if len(items) == 0 {
		items = nil
	}
	return domain.Wishlist{Items: items}
}

// PreferencesRepository is an in-memory repository.PreferencesRepository.
type PreferencesRepository struct {
	mu    sync.RWMutex
	prefs map[string]domain.Preferences
}

// NewPreferencesRepository creates an empty in-memory preferences repository.
func NewPreferencesRepository() *PreferencesRepository {
	return &PreferencesRepository{prefs: make(map[string]domain.Preferences)}
}

// Get retrieves the preferences for the given user ID.
func (r *PreferencesRepository) Get(_ context.Context, userID string) (*domain.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefs, ok := r.prefs[userID]
	if !ok {
		return nil, apperrors.NotFound("preferences", userID)
	}
	out := prefs
	if prefs.User != nil {
		user := *prefs.User
		out.User = &user
	}
	return &out, nil
}

// Save persists the preferences for the given user ID.
func (r *PreferencesRepository) Save(_ context.Context, userID string, prefs *domain.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *prefs
	if prefs.User != nil {
		user := *prefs.User
		stored.User = &user
	}
	r.prefs[userID] = stored
	return nil
}

// OrderRepository is an in-memory repository.OrderRepository.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	byUser map[string][]string
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]domain.Order),
		byUser: make(map[string][]string),
	}
}

// Get retrieves an order by ID.
func (r *OrderRepository) Get(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperrors.NotFound("order", orderID)
	}
	out := cloneOrder(order)
	return &out, nil
}

// Save persists the order and prepends it to the user's order index.
func (r *OrderRepository) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = cloneOrder(*order)
	r.byUser[order.UserID] = append([]string{order.ID}, r.byUser[order.UserID]...)
	return nil
}

// ListByUser retrieves the user's orders, most recent first.
func (r *OrderRepository) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		if order, ok := r.orders[id]; ok {
			orders = append(orders, cloneOrder(order))
		}
	}
	return orders, nil
}

func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.CartItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}
