// Package container wires gradcheck's components together with ordered
// initialization and a single teardown.
package container

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/garyjia/gradcheck/internal/application/dispatcher"
	"github.com/garyjia/gradcheck/internal/application/service"
	"github.com/garyjia/gradcheck/internal/config"
)

// Container manages application dependencies and lifecycle
type Container struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer

	registry   *prometheus.Registry
	cascade    dispatcher.Cascade
	graduation service.GraduationService

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// NewContainer creates a new container from configuration. Cascade clauses
// print to out. It does not initialize components - call Start() to
// initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger, out io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
		out:    out,
	}, nil
}

// Start initializes components in dependency order:
// 1. Metrics registry
// 2. Cascade
// 3. Graduation service
func (c *Container) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container is closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.registry = prometheus.NewRegistry()

	cascade, err := ProvideCascade(c.out, c.registry, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cascade: %w", err)
	}
	c.cascade = cascade

	graduation, err := ProvideGraduationService(c.cascade, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize graduation service: %w", err)
	}
	c.graduation = graduation

	c.ready.Store(true)
	c.logger.Info("Container started")
	return nil
}

// Close reports cascade metrics and flushes the logger. It is safe to call
// more than once.
func (c *Container) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.ready.Store(false)

	c.logMetrics()

	// Sync on stderr returns EINVAL on some platforms; it is not a failure.
	_ = c.logger.Sync()
	return nil
}

// logMetrics logs every sample of the cascade counters
func (c *Container) logMetrics() {
	if c.registry == nil {
		return
	}

	families, err := c.registry.Gather()
	if err != nil {
		c.logger.Error("Failed to gather cascade metrics", zap.Error(err))
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{
				zap.String("metric", mf.GetName()),
				zap.Float64("count", m.GetCounter().GetValue()),
			}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			c.logger.Info("Cascade metrics", fields...)
		}
	}
}

// Ready reports whether Start completed
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Cascade returns the graduation cascade
func (c *Container) Cascade() dispatcher.Cascade {
	return c.cascade
}

// Graduation returns the graduation service
func (c *Container) Graduation() service.GraduationService {
	return c.graduation
}

// Registry returns the metrics registry
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// zapLoggerAdapter adapts zap.Logger to the service and dispatcher Logger
// interfaces.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	fields := convertToZapFields(keysAndValues...)
	a.logger.Info(msg, fields...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	fields := convertToZapFields(keysAndValues...)
	a.logger.Error(msg, fields...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
