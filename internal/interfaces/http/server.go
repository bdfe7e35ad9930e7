// Package http serves the dashboard as server-rendered pages. Handlers
// translate requests to controller calls; the Screen holds what the
// controller last rendered.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/export"
	"github.com/garyjia/bill-collection-dashboard/pkg/utils"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RefreshInterval time.Duration
	RefreshDebounce time.Duration
	Location        *time.Location
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		RefreshInterval: 30 * time.Second,
		RefreshDebounce: 300 * time.Millisecond,
		Location:        time.Local,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	dashboard  Dashboard
	screen     *Screen
	workbook   *export.BillsWorkbook
	refresh    *utils.Debouncer
	logger     Logger

	mu      sync.Mutex
	baseCtx context.Context
}

// NewServer creates a new HTTP server for the dashboard
func NewServer(
	config ServerConfig,
	dashboard Dashboard,
	screen *Screen,
	workbook *export.BillsWorkbook,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	if config.Location == nil {
		config.Location = time.Local
	}

	router := gin.New()
	router.SetHTMLTemplate(parseTemplates())

	server := &Server{
		config:    config,
		router:    router,
		dashboard: dashboard,
		screen:    screen,
		workbook:  workbook,
		logger:    logger,
		baseCtx:   context.Background(),
	}
	server.refresh = utils.Debounce(server.reloadDashboard, config.RefreshDebounce)

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// reloadDashboard runs a debounced manual refresh outside any request
func (s *Server) reloadDashboard() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := s.dashboard.LoadDashboard(ctx); err != nil {
		return
	}
	s.screen.Notify(port.ToastSuccess, "Dashboard refreshed")
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := &Handlers{
		dashboard:       s.dashboard,
		screen:          s.screen,
		workbook:        s.workbook,
		refresh:         s.refresh,
		logger:          s.logger,
		loc:             s.config.Location,
		now:             time.Now,
		refreshInterval: s.config.RefreshInterval,
	}

	s.router.GET("/health", h.HealthCheck)
	s.router.GET("/", h.Home)

	s.router.GET("/dashboard", h.Dashboard)
	s.router.POST("/dashboard/refresh", h.RefreshDashboard)

	bills := s.router.Group("/bills")
	{
		bills.GET("", h.Bills)
		bills.POST("", h.CreateBill)
		bills.GET("/pending", h.PendingBills)
		bills.GET("/export.xlsx", h.ExportBills)
		bills.GET("/:id", h.ViewBill)
		bills.POST("/:id/call", h.InitiateCall)
		bills.POST("/:id/delete", h.DeleteBill)
	}

	calls := s.router.Group("/calls")
	{
		calls.GET("", h.Calls)
		calls.POST("/batch", h.BatchCalls)
		calls.GET("/:id", h.ViewCall)
	}

	s.router.GET("/analytics", h.Analytics)
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	s.refresh.Stop()

	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
