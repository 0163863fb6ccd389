package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/solecrafted/internal/catalog"
	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/internal/event"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
	pkgkafka "github.com/utafrali/solecrafted/pkg/kafka"
)

// --- Mock Repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, userID string, cart *domain.Cart) error {
	args := m.Called(ctx, userID, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer returns a producer whose publishes fail silently in tests
// (no real broker is running).
func newTestProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func newTestCartService(t *testing.T, repo *mockCartRepository) *CartService {
	t.Helper()
	return NewCartService(testCatalog(t), repo, newTestProducer(), newTestLogger())
}

func cartWithAirMax() *domain.Cart {
	return &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, Size: "9", Quantity: 2, Name: "Nike Air Max 270", Price: 150, Brand: "Nike"},
	}}
}

// --- Tests ---

func TestCartService_GetCart_EmptyWhenMissing(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	repo.AssertExpectations(t)
}

func TestCartService_GetCart_RequiresUserID(t *testing.T) {
	svc := newTestCartService(t, new(mockCartRepository))

	_, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_GetCart_RepoError(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, errors.New("redis down"))

	_, err := svc.GetCart(ctx, "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get cart")
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))
	repo.On("Save", ctx, "user-1", mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "user-1", AddItemInput{ProductID: 1, Quantity: 2, Size: "9"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Nike Air Max 270", cart.Items[0].Name)
	assert.Equal(t, 150.0, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(cartWithAirMax(), nil)
	repo.On("Save", ctx, "user-1", mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "user-1", AddItemInput{ProductID: 1, Quantity: 3, Size: "9"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddItem_DifferentSizeIsNewLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(cartWithAirMax(), nil)
	repo.On("Save", ctx, "user-1", mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "user-1", AddItemInput{ProductID: 1, Quantity: 1, Size: "10"})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	svc := newTestCartService(t, new(mockCartRepository))

	_, err := svc.AddItem(context.Background(), "user-1", AddItemInput{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_AddItem_UnavailableSize(t *testing.T) {
	svc := newTestCartService(t, new(mockCartRepository))

	// Product 1 is offered in sizes 7 through 12.
	_, err := svc.AddItem(context.Background(), "user-1", AddItemInput{ProductID: 1, Quantity: 1, Size: "4"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	svc := newTestCartService(t, new(mockCartRepository))

	_, err := svc.AddItem(context.Background(), "user-1", AddItemInput{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.AddItem(context.Background(), "user-1", AddItemInput{ProductID: 1, Quantity: MaxQuantityPerItem + 1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_UpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(cartWithAirMax(), nil)
	repo.On("Save", ctx, "user-1", mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "user-1", 1, "9", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(cartWithAirMax(), nil)
	repo.On("Save", ctx, "user-1", mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "user-1", 1, "9", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(cartWithAirMax(), nil)

	_, err := svc.UpdateQuantity(ctx, "user-1", 2, "8", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_RemoveItem_AbsentLineIsNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(cartWithAirMax(), nil)
	repo.On("Save", ctx, "user-1", mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.RemoveItem(ctx, "user-1", 42, "")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartService_ClearCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "user-1").Return(nil)

	err := svc.ClearCart(ctx, "user-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
