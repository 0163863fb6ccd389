package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/solecrafted/internal/domain"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
)

func TestCartRepository_RoundTrip(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "user-001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	cart := &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, Size: "9", Quantity: 2, Name: "Nike Air Max 270", Price: 150},
	}}
	require.NoError(t, repo.Save(ctx, "user-001", cart))

	got, err := repo.Get(ctx, "user-001")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	require.NoError(t, repo.Delete(ctx, "user-001"))
	_, err = repo.Get(ctx, "user-001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_GetReturnsCopy(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	cart := &domain.Cart{Items: []domain.CartItem{{ProductID: 1, Quantity: 1}}}
	require.NoError(t, repo.Save(ctx, "user-001", cart))

	first, err := repo.Get(ctx, "user-001")
	require.NoError(t, err)
	first.Items[0].Quantity = 99

	second, err := repo.Get(ctx, "user-001")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Items[0].Quantity)
}

func TestWishlistRepository_RoundTrip(t *testing.T) {
	repo := NewWishlistRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "user-001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	wishlist := &domain.Wishlist{Items: []domain.WishlistItem{
		{ProductID: 8, Name: "Jordan Air 1", Price: 170, Brand: "Nike"},
	}}
	require.NoError(t, repo.Save(ctx, "user-001", wishlist))

	got, err := repo.Get(ctx, "user-001")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 8, got.Items[0].ProductID)

	require.NoError(t, repo.Delete(ctx, "user-001"))
	_, err = repo.Get(ctx, "user-001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPreferencesRepository_RoundTrip(t *testing.T) {
	repo := NewPreferencesRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "user-001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	prefs := &domain.Preferences{Theme: domain.ThemeDark, User: &domain.User{ID: "user-001"}}
	require.NoError(t, repo.Save(ctx, "user-001", prefs))

	got, err := repo.Get(ctx, "user-001")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	require.NotNil(t, got.User)

	// Mutating the returned record must not leak into the store.
	got.User.Name = "mutated"
	again, err := repo.Get(ctx, "user-001")
	require.NoError(t, err)
	assert.Empty(t, again.User.Name)
}

func TestOrderRepository_ListByUser_NewestFirst(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	first := &domain.Order{ID: uuid.NewString(), UserID: "user-001", Total: 100}
	second := &domain.Order{ID: uuid.NewString(), UserID: "user-001", Total: 200}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, &domain.Order{ID: uuid.NewString(), UserID: "user-002"}))

	got, err := repo.ListByUser(ctx, "user-001")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	byID, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, byID.Total)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
