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

// WishlistService implements the business logic for wishlist operations.
type WishlistService struct {
	catalog  *catalog.Catalog
	repo     repository.WishlistRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(cat *catalog.Catalog, repo repository.WishlistRepository, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		catalog:  cat,
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetWishlist retrieves the wishlist for a user. A user without a stored
// wishlist gets an empty one.
func (s *WishlistService) GetWishlist(ctx context.Context, userID string) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	wishlist, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.Wishlist{}, nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}

	return wishlist, nil
}

// AddItem saves a product to the wishlist. Adding an already-saved product
// is a no-op.
func (s *WishlistService) AddItem(ctx context.Context, userID string, productID int) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	product, err := s.catalog.ByID(productID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.GetWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !wishlist.AddItem(product) {
		return wishlist, nil
	}

	if err := s.repo.Save(ctx, userID, wishlist); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishUpdated(ctx, userID, wishlist)

	s.logger.InfoContext(ctx, "item added to wishlist",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
	)

	return wishlist, nil
}

// RemoveItem removes a product from the wishlist. Removing an absent product
// is a no-op.
func (s *WishlistService) RemoveItem(ctx context.Context, userID string, productID int) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	wishlist, err := s.GetWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !wishlist.RemoveItem(productID) {
		return wishlist, nil
	}

	if err := s.repo.Save(ctx, userID, wishlist); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishUpdated(ctx, userID, wishlist)

	s.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
	)

	return wishlist, nil
}

// ToggleItem adds the product when absent and removes it when present. The
// returned bool reports whether the product is saved afterwards.
func (s *WishlistService) ToggleItem(ctx context.Context, userID string, productID int) (*domain.Wishlist, bool, error) {
	if userID == "" {
		return nil, false, apperrors.InvalidInput("user id is required")
	}

	product, err := s.catalog.ByID(productID)
	if err != nil {
		return nil, false, err
	}

	wishlist, err := s.GetWishlist(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	saved := wishlist.ToggleItem(product)

	if err := s.repo.Save(ctx, userID, wishlist); err != nil {
		return nil, false, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishUpdated(ctx, userID, wishlist)

	s.logger.InfoContext(ctx, "wishlist item toggled",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
		slog.Bool("saved", saved),
	)

	return wishlist, saved, nil
}

// ClearWishlist removes every saved product.
func (s *WishlistService) ClearWishlist(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}

	s.publishUpdated(ctx, userID, &domain.Wishlist{})

	s.logger.InfoContext(ctx, "wishlist cleared", slog.String("user_id", userID))

	return nil
}

func (s *WishlistService) publishUpdated(ctx context.Context, userID string, wishlist *domain.Wishlist) {
	if err := s.producer.PublishWishlistUpdated(ctx, userID, wishlist); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
