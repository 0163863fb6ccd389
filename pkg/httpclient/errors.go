package httpclient

import (
	"errors"
	"fmt"
)

// ErrCircuitOpen is returned when the circuit breaker rejects a request
// because the downstream dependency is considered unhealthy.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// StatusError represents a non-2xx HTTP response from a downstream service.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// IsCircuitOpen reports whether the error indicates an open circuit breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}
