package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/solecrafted/pkg/errors"
	"github.com/utafrali/solecrafted/pkg/httpclient"
)

// HTTPGateway calls an external payment provider over HTTP. Requests go
// through a circuit breaker so a struggling provider does not hold checkout
// requests hostage.
type HTTPGateway struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewHTTPGateway creates a payment gateway backed by an external provider.
func NewHTTPGateway(client *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *HTTPGateway {
	return &HTTPGateway{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Charge posts the charge to the provider's /charges endpoint.
func (g *HTTPGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(ctx, httpReq)
	if err != nil {
		if httpclient.IsCircuitOpen(err) {
			g.logger.WarnContext(ctx, "payment provider circuit open",
				slog.String("order_id", req.OrderID),
			)
			return nil, apperrors.ServiceUnavailable("payment provider is unavailable")
		}
		return nil, fmt.Errorf("charge request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("charge request: %w", &httpclient.StatusError{
			StatusCode: resp.StatusCode,
			URL:        g.baseURL + "/charges",
		})
	}

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}

	return &result, nil
}
