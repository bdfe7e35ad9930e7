package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/bill-collection-dashboard/internal/application/dashboard"
	"github.com/garyjia/bill-collection-dashboard/internal/config"
	"github.com/garyjia/bill-collection-dashboard/internal/infrastructure/external/backend"
	"github.com/garyjia/bill-collection-dashboard/internal/infrastructure/worker"
	httpserver "github.com/garyjia/bill-collection-dashboard/internal/interfaces/http"
)

// Container owns the dashboard components. Start builds them in dependency
// order; Close tears them down in reverse.
type Container struct {
	config     *config.Config
	logger     *zap.Logger
	clientOpts []backend.Option

	client       *backend.Client
	presentation *PresentationBundle
	controller   *dashboard.Controller
	server       *httpserver.Server
	workers      *worker.WorkerManager

	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger, clientOpts ...backend.Option) (*Container, error) {
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
		config:     cfg,
		logger:     logger,
		clientOpts: clientOpts,
	}, nil
}

// Start initializes all components:
// 1. Backend client
// 2. Screen and renderer
// 3. Dashboard controller
// 4. HTTP server
// 5. Workers
// then runs the health check and first dashboard load a page open would do.
// The HTTP server is built but not listening; see Server.
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	client, err := ProvideBackendClient(&c.config.Backend, c.logger, c.clientOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize backend client: %w", err)
	}
	c.client = client
	c.logger.Info("Backend client initialized", zap.String("base_url", client.BaseURL()))

	presentation, err := ProvidePresentation(c.config)
	if err != nil {
		return fmt.Errorf("failed to initialize presentation: %w", err)
	}
	c.presentation = presentation

	c.controller = ProvideController(&c.config.Dashboard, c.client, c.presentation, c.logger)
	c.server = ProvideServer(c.config, c.controller, c.presentation, c.logger)

	c.workers = ProvideWorkers(&c.config.Dashboard, c.controller, c.presentation, c.logger)
	if err := c.workers.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	c.logger.Info("Workers started", zap.Int("count", c.workers.WorkerCount()))

	// A backend that is down is reported on screen, not fatal.
	_ = c.controller.CheckHealth(ctx)
	_ = c.controller.LoadDashboard(ctx)

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Close stops the components in reverse order
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.workers != nil {
		if err := c.workers.StopAll(); err != nil {
			c.logger.Error("Failed to stop workers", zap.Error(err))
			errs = append(errs, fmt.Errorf("stop workers: %w", err))
		}
	}

	if c.server != nil {
		if err := c.server.Stop(); err != nil {
			c.logger.Error("Failed to stop HTTP server", zap.Error(err))
			errs = append(errs, fmt.Errorf("stop server: %w", err))
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Server returns the HTTP server, nil before Start
func (c *Container) Server() *httpserver.Server {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.server
}

// Controller returns the dashboard controller, nil before Start
func (c *Container) Controller() *dashboard.Controller {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.controller
}

// Health pings the backend and reports the worker state
func (c *Container) Health(ctx context.Context) *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if _, err := c.client.Health(pingCtx); err != nil {
			status.Components["backend"] = ComponentHealth{
				Healthy: false,
				Message: fmt.Sprintf("ping failed: %v", err),
			}
			status.Overall = false
		} else {
			status.Components["backend"] = ComponentHealth{Healthy: true}
		}
	} else {
		status.Components["backend"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	if c.workers != nil {
		status.Components["workers"] = ComponentHealth{
			Healthy: c.workers.IsRunning(),
			Message: fmt.Sprintf("worker count: %d", c.workers.WorkerCount()),
		}
		if !c.workers.IsRunning() {
			status.Overall = false
		}
	} else {
		status.Components["workers"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	return status
}
