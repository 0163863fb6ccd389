// Package payment abstracts the payment provider behind a Gateway
// interface. Production wires the HTTP gateway; development and tests use
// the simulated gateway.
package payment

import "context"

// ChargeRequest describes a single payment attempt.
type ChargeRequest struct {
	OrderID string  `json:"order_id"`
	UserID  string  `json:"user_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`

	// Card details, only set when Method is "card". Never logged.
	CardNumber string `json:"card_number,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}

// ChargeResult is the provider's response to a charge.
type ChargeResult struct {
	TransactionID string `json:"transaction_id"`
	Approved      bool   `json:"approved"`
	Reason        string `json:"reason,omitempty"`
}

// Gateway charges payments. Implementations must return a declined
// ChargeResult (Approved false) for business declines and reserve errors for
// transport or provider failures.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
