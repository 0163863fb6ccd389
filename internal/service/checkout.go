package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/internal/event"
	"github.com/utafrali/solecrafted/internal/payment"
	"github.com/utafrali/solecrafted/internal/repository"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
	"github.com/utafrali/solecrafted/pkg/validator"
)

// PlaceOrderInput holds the checkout form. Card details are required only
// when the payment method is card.
type PlaceOrderInput struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=10"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	ZipCode       string `json:"zip_code" validate:"required,min=5"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card paypal applepay"`

	CardNumber string `json:"card_number,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}

// CheckoutService turns a cart into an order: it validates the checkout
// form, charges the payment gateway, and persists the order. The cart is
// cleared only after the charge is approved.
type CheckoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	gateway   payment.Gateway
	producer  *event.Producer
	logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	gateway payment.Gateway,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
		producer:  producer,
		logger:    logger,
	}
}

// validateCardDetails enforces the card-only fields when paying by card.
func validateCardDetails(input PlaceOrderInput) error {
	if input.PaymentMethod != domain.PaymentMethodCard {
		return nil
	}
	if len(input.CardNumber) < 16 {
		return apperrors.InvalidInput("card number must be at least 16 digits")
	}
	if len(input.ExpiryDate) < 5 {
		return apperrors.InvalidInput("expiry date must be in MM/YY format")
	}
	if len(input.CVV) < 3 {
		return apperrors.InvalidInput("cvv must be at least 3 digits")
	}
	return nil
}

// PlaceOrder validates the checkout form, charges the gateway, and persists
// the resulting order. On a declined or failed charge the cart is left
// untouched so the user can retry.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if err := validateCardDetails(input); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	totals := domain.ComputeTotals(cart.Total())

	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         cart.Items,
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: input.PaymentMethod,
		Address: domain.ShippingAddress{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Phone:     input.Phone,
			Address:   input.Address,
			City:      input.City,
			State:     input.State,
			ZipCode:   input.ZipCode,
		},
		Status:    domain.OrderStatusPlaced,
		CreatedAt: time.Now().UTC(),
	}

	result, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		OrderID:    order.ID,
		UserID:     userID,
		Amount:     order.Total,
		Method:     input.PaymentMethod,
		CardNumber: input.CardNumber,
		ExpiryDate: input.ExpiryDate,
		CVV:        input.CVV,
	})
	if err != nil {
		return nil, fmt.Errorf("charge payment: %w", err)
	}
	if !result.Approved {
		s.logger.WarnContext(ctx, "payment declined",
			slog.String("user_id", userID),
			slog.String("order_id", order.ID),
			slog.String("reason", result.Reason),
		)
		return nil, apperrors.PaymentFailed(result.Reason)
	}

	order.Status = domain.OrderStatusConfirmed

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable.
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("user_id", userID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("user_id", userID),
		slog.String("order_id", order.ID),
		slog.Float64("total", order.Total),
		slog.String("payment_method", order.PaymentMethod),
	)

	return order, nil
}

// GetOrder retrieves an order. Users can only read their own orders.
func (s *CheckoutService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	order, err := s.orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order", orderID)
	}

	return order, nil
}

// ListOrders retrieves the user's order history, most recent first.
func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}
