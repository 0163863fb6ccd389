package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/solecrafted/pkg/httpclient"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ---------------------------------------------------------------------------
// SimulatedGateway
// ---------------------------------------------------------------------------

func TestSimulatedGateway_Approves(t *testing.T) {
	g := NewSimulatedGateway(SimulatedConfig{Latency: 0, FailureRate: 0}, newTestLogger())

	result, err := g.Charge(context.Background(), ChargeRequest{
		OrderID: "order-1",
		Amount:  162,
		Method:  "card",
	})
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.NotEmpty(t, result.TransactionID)
}

func TestSimulatedGateway_AlwaysDeclinesAtFullFailureRate(t *testing.T) {
	g := NewSimulatedGateway(SimulatedConfig{Latency: 0, FailureRate: 1}, newTestLogger())

	result, err := g.Charge(context.Background(), ChargeRequest{OrderID: "order-1", Amount: 50})
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, "card declined", result.Reason)
}

func TestSimulatedGateway_ContextCancelAbortsLatency(t *testing.T) {
	g := NewSimulatedGateway(SimulatedConfig{Latency: 5 * time.Second}, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.Charge(ctx, ChargeRequest{OrderID: "order-1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

// ---------------------------------------------------------------------------
// HTTPGateway
// ---------------------------------------------------------------------------

func newHTTPGateway(t *testing.T, baseURL string) *HTTPGateway {
	t.Helper()
	logger := newTestLogger()
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Timeout = 2 * time.Second
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("payment-test-"+t.Name()),
		logger,
	)
	return NewHTTPGateway(client, baseURL, logger)
}

func TestHTTPGateway_Charge_Approved(t *testing.T) {
	var received ChargeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/charges", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(ChargeResult{TransactionID: "txn-1", Approved: true})
	}))
	defer srv.Close()

	g := newHTTPGateway(t, srv.URL)
	result, err := g.Charge(context.Background(), ChargeRequest{
		OrderID: "order-1",
		UserID:  "user-1",
		Amount:  324,
		Method:  "card",
	})
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, "txn-1", result.TransactionID)
	assert.Equal(t, "order-1", received.OrderID)
	assert.Equal(t, 324.0, received.Amount)
}

func TestHTTPGateway_Charge_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChargeResult{Approved: false, Reason: "insufficient funds"})
	}))
	defer srv.Close()

	g := newHTTPGateway(t, srv.URL)
	result, err := g.Charge(context.Background(), ChargeRequest{OrderID: "order-1"})
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, "insufficient funds", result.Reason)
}

func TestHTTPGateway_Charge_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := newHTTPGateway(t, srv.URL)
	result, err := g.Charge(context.Background(), ChargeRequest{OrderID: "order-1"})
	assert.Nil(t, result)
	require.Error(t, err)

	var statusErr *httpclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}
