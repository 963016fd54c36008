package github

import (
	stderrors "errors"

	"hireup/internal/config"
	"hireup/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// Breaker wraps GitHub calls with the circuit breaker pattern. A nil Breaker
// runs calls directly.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[[]byte]
}

// NewBreaker returns nil when the breaker is disabled.
func NewBreaker(name string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *Breaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		// Unknown users are an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || stderrors.Is(err, errUpstreamNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker[[]byte](settings)}
}

// Execute runs fn under the breaker.
func (b *Breaker) Execute(fn func() ([]byte, error)) ([]byte, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// Stats returns circuit breaker statistics
func (b *Breaker) Stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy reports whether the breaker is closed.
func (b *Breaker) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
