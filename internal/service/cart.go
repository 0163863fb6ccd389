package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/solecrafted/internal/catalog"
	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/internal/event"
	"github.com/utafrali/solecrafted/internal/repository"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct lines allowed in a cart.
	MaxItemsPerCart = 50
)

// AddItemInput holds the parameters for adding a product to the cart.
type AddItemInput struct {
	ProductID int    `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Size      string `json:"size"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	catalog  *catalog.Catalog
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cat *catalog.Catalog, repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		catalog:  cat,
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a user. A user without a stored cart gets
// an empty one.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a product to the user's cart. An existing line for the same
// product and size has its quantity increased.
func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	product, err := s.catalog.ByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if input.Size != "" && !product.HasSize(input.Size) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("size %s is not available for this product", input.Size))
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.Contains(product.ID, input.Size) && len(cart.Items) >= MaxItemsPerCart {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
	}

	cart.AddItem(product, input.Quantity, input.Size)

	if err := s.repo.Save(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, userID, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.Int("product_id", product.ID),
		slog.String("size", input.Size),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of a cart line to the given absolute
// value. A quantity of zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID int, size string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.Contains(productID, size) {
		return nil, apperrors.NotFound("cart item", fmt.Sprintf("%d/%s", productID, size))
	}

	cart.UpdateQuantity(productID, size, quantity)

	if err := s.repo.Save(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, userID, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
		slog.String("size", size),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a specific line from the cart. Removing an absent line
// is a no-op: removal is idempotent.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int, size string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID, size)

	if err := s.repo.Save(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, userID, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
		slog.String("size", size),
	)

	return cart, nil
}

// ClearCart removes every line from the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.publishUpdated(ctx, userID, &domain.Cart{})

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))

	return nil
}

func (s *CartService) publishUpdated(ctx context.Context, userID string, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, userID, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
