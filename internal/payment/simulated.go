package payment

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SimulatedConfig controls the simulated gateway's behavior.
type SimulatedConfig struct {
	// Latency is how long each charge takes, imitating a slow provider.
	Latency time.Duration

	// FailureRate is the fraction of charges declined, in [0, 1].
	FailureRate float64
}

// DefaultSimulatedConfig approves every charge after a two second delay.
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		Latency:     2 * time.Second,
		FailureRate: 0,
	}
}

// SimulatedGateway is an in-process Gateway that sleeps for the configured
// latency and approves or declines based on the failure rate.
type SimulatedGateway struct {
	cfg    SimulatedConfig
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedGateway creates a simulated payment gateway.
func NewSimulatedGateway(cfg SimulatedConfig, logger *slog.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Charge waits for the configured latency, then approves or declines the
// charge. Context cancellation aborts the wait.
func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if g.cfg.Latency > 0 {
		timer := time.NewTimer(g.cfg.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if g.declines() {
		g.logger.WarnContext(ctx, "simulated charge declined",
			slog.String("order_id", req.OrderID),
			slog.Float64("amount", req.Amount),
		)
		return &ChargeResult{Approved: false, Reason: "card declined"}, nil
	}

	result := &ChargeResult{
		TransactionID: uuid.NewString(),
		Approved:      true,
	}

	g.logger.InfoContext(ctx, "simulated charge approved",
		slog.String("order_id", req.OrderID),
		slog.String("transaction_id", result.TransactionID),
		slog.Float64("amount", req.Amount),
	)

	return result, nil
}

func (g *SimulatedGateway) declines() bool {
	if g.cfg.FailureRate <= 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < g.cfg.FailureRate
}
