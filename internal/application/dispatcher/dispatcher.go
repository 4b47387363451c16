package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/garyjia/gradcheck/internal/domain/failure"
)

// ErrUnhandled is returned when no clause accepts a payload and the cascade
// has no catch-all
var ErrUnhandled = errors.New("no clause accepts payload")

// Cascade routes a signaled payload to the first clause declaring its kind
type Cascade interface {
	// On appends a clause for a payload kind. Clauses are evaluated in the
	// order they were declared.
	On(kind failure.Kind, name string, exitCode int, handler Handler)

	// Otherwise sets the catch-all clause, evaluated after every other clause
	Otherwise(name string, exitCode int, handler Handler)

	// Dispatch runs exactly one clause for err's payload
	Dispatch(ctx context.Context, err error) (Outcome, error)

	// ListClauses returns clauses in evaluation order
	ListClauses() []ClauseInfo
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// cascade is the concrete implementation of Cascade
type cascade struct {
	mu       sync.RWMutex
	clauses  []ClauseInfo
	catchAll *ClauseInfo
	logger   Logger
	metrics  *cascadeMetrics
}

// Option configures the cascade
type Option func(*cascade)

// WithLogger sets a logger for the cascade
func WithLogger(logger Logger) Option {
	return func(c *cascade) {
		c.logger = logger
	}
}

// WithMetrics registers clause counters with reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *cascade) {
		c.metrics = newCascadeMetrics(reg)
	}
}

// NewCascade creates an empty cascade
func NewCascade(opts ...Option) Cascade {
	c := &cascade{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// On appends a clause for kind
func (c *cascade) On(kind failure.Kind, name string, exitCode int, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clauses = append(c.clauses, ClauseInfo{
		Name:     name,
		Kind:     kind,
		ExitCode: exitCode,
		Handler:  handler,
	})

	if c.logger != nil {
		c.logger.Info("Clause registered",
			"kind", kind.String(),
			"clause", name,
			"position", len(c.clauses),
		)
	}
}

// Otherwise sets the catch-all clause, replacing any previous one
func (c *cascade) Otherwise(name string, exitCode int, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catchAll = &ClauseInfo{
		Name:     name,
		Kind:     failure.KindUnknown,
		ExitCode: exitCode,
		CatchAll: true,
		Handler:  handler,
	}

	if c.logger != nil {
		c.logger.Info("Catch-all registered", "clause", name)
	}
}

// Dispatch selects the first clause whose kind the payload specializes and
// runs it. A nil err is not a payload and is returned unhandled.
func (c *cascade) Dispatch(ctx context.Context, err error) (Outcome, error) {
	if err == nil {
		return Outcome{}, nil
	}

	sig := failure.Raise(err)

	c.mu.RLock()
	info, ok := c.match(sig)
	c.mu.RUnlock()

	if !ok {
		if c.metrics != nil {
			c.metrics.unhandledTotal.Inc()
		}
		if c.logger != nil {
			c.logger.Error("Payload not handled",
				"signal_id", sig.ID,
				"kind", sig.Kind().String(),
			)
		}
		return Outcome{Signal: sig}, fmt.Errorf("%w: %v", ErrUnhandled, sig)
	}

	if c.logger != nil {
		c.logger.Info("Dispatching payload",
			"signal_id", sig.ID,
			"kind", sig.Kind().String(),
			"clause", info.Name,
			"exit_code", info.ExitCode,
		)
	}
	if c.metrics != nil {
		c.metrics.clauseTotal.WithLabelValues(info.Name, sig.Kind().String()).Inc()
	}

	outcome := Outcome{
		Handled:  true,
		Clause:   info.Name,
		ExitCode: info.ExitCode,
		Signal:   sig,
	}

	if err := c.safeExecute(ctx, sig, info); err != nil {
		if c.logger != nil {
			c.logger.Error("Clause error",
				"signal_id", sig.ID,
				"clause", info.Name,
				"error", err,
			)
		}
		return outcome, fmt.Errorf("clause %s failed: %w", info.Name, err)
	}

	return outcome, nil
}

// match must be called with c.mu held
func (c *cascade) match(sig *failure.Signal) (ClauseInfo, bool) {
	for _, info := range c.clauses {
		if sig.Is(info.Kind) {
			return info, true
		}
	}
	if c.catchAll != nil {
		return *c.catchAll, true
	}
	return ClauseInfo{}, false
}

// ListClauses returns clause metadata in evaluation order, catch-all last
func (c *cascade) ListClauses() []ClauseInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]ClauseInfo, 0, len(c.clauses)+1)
	for _, info := range c.clauses {
		result = append(result, ClauseInfo{
			Name:     info.Name,
			Kind:     info.Kind,
			ExitCode: info.ExitCode,
			// Note: Handler function is not copied to avoid exposing internal details
		})
	}
	if c.catchAll != nil {
		result = append(result, ClauseInfo{
			Name:     c.catchAll.Name,
			Kind:     c.catchAll.Kind,
			ExitCode: c.catchAll.ExitCode,
			CatchAll: true,
		})
	}

	return result
}

// safeExecute runs a handler with panic recovery
func (c *cascade) safeExecute(ctx context.Context, sig *failure.Signal, info ClauseInfo) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
			if c.logger != nil {
				c.logger.Error("Handler panic recovered",
					"signal_id", sig.ID,
					"clause", info.Name,
					"panic", r,
				)
			}
		}
	}()

	if info.Handler == nil {
		return nil
	}
	return info.Handler(ctx, sig)
}
