package domain

import "time"

// Order status constants.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusConfirmed = "confirmed"
)

// Payment method constants.
const (
	PaymentMethodCard     = "card"
	PaymentMethodPayPal   = "paypal"
	PaymentMethodApplePay = "applepay"
)

// Checkout pricing rules: orders over the threshold ship free, everything
// else pays the flat fee; tax is applied to the subtotal.
const (
	FreeShippingThreshold = 50.0
	FlatShippingFee       = 10.0
	TaxRate               = 0.08
)

// ShippingAddress is the delivery address collected at checkout.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// Order is a placed order with the cart lines and totals frozen at checkout.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Items         []CartItem      `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	Shipping      float64         `json:"shipping"`
	Tax           float64         `json:"tax"`
	Total         float64         `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Address       ShippingAddress `json:"address"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderTotals breaks down the amounts charged for a cart.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals applies the checkout pricing rules to a cart subtotal.
func ComputeTotals(subtotal float64) OrderTotals {
	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate

	return OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// ValidPaymentMethod reports whether the given method is supported.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCard, PaymentMethodPayPal, PaymentMethodApplePay:
		return true
	}
	return false
}
