// Package container provides dependency injection and lifecycle management
// for the dashboard.
package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/bill-collection-dashboard/internal/application/dashboard"
	"github.com/garyjia/bill-collection-dashboard/internal/config"
	"github.com/garyjia/bill-collection-dashboard/internal/export"
	"github.com/garyjia/bill-collection-dashboard/internal/infrastructure/external/backend"
	"github.com/garyjia/bill-collection-dashboard/internal/infrastructure/worker"
	httpserver "github.com/garyjia/bill-collection-dashboard/internal/interfaces/http"
	"github.com/garyjia/bill-collection-dashboard/internal/render"
	"github.com/garyjia/bill-collection-dashboard/pkg/utils"
)

// ProvideBackendClient creates the backend API client
func ProvideBackendClient(cfg *config.BackendConfig, logger *zap.Logger, opts ...backend.Option) (*backend.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backend config is required")
	}
	return backend.NewClient(backend.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, logger, opts...), nil
}

// PresentationBundle holds the web surface components
type PresentationBundle struct {
	Screen   *httpserver.Screen
	Renderer *render.Renderer
}

// ProvidePresentation creates the screen and renderer
func ProvidePresentation(cfg *config.Config) (*PresentationBundle, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &PresentationBundle{
		Screen:   httpserver.NewScreen(cfg.Dashboard.ToastDuration),
		Renderer: render.NewRenderer(loc),
	}, nil
}

// ProvideController creates the dashboard controller rendering to the screen
func ProvideController(cfg *config.DashboardConfig, api *backend.Client, p *PresentationBundle, logger *zap.Logger) *dashboard.Controller {
	return dashboard.NewController(dashboard.Dependencies{
		API:       api,
		Surface:   p.Screen,
		Notifier:  p.Screen,
		Confirmer: httpserver.FormConfirmer{},
		Renderer:  p.Renderer,
		Logger:    utils.NewKVLogger(logger),
	}, dashboard.Options{
		RecentActivityLimit: cfg.RecentActivityLimit,
		OverdueDisplayLimit: cfg.OverdueDisplayLimit,
		BatchCallLimit:      cfg.BatchCallLimit,
		BatchCallSpacing:    cfg.BatchCallSpacing,
	})
}

// ProvideServer creates the HTTP server
func ProvideServer(cfg *config.Config, controller *dashboard.Controller, p *PresentationBundle, logger *zap.Logger) *httpserver.Server {
	serverCfg := httpserver.DefaultServerConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	serverCfg.ReadTimeout = cfg.Server.ReadTimeout
	serverCfg.WriteTimeout = cfg.Server.WriteTimeout
	serverCfg.RefreshInterval = cfg.Dashboard.RefreshInterval
	serverCfg.Location = p.Renderer.Location()

	return httpserver.NewServer(
		serverCfg,
		controller,
		p.Screen,
		export.NewBillsWorkbook(logger),
		utils.NewKVLogger(logger),
	)
}

// ProvideWorkers creates the worker manager with the auto-refresh worker
// registered.
func ProvideWorkers(cfg *config.DashboardConfig, controller *dashboard.Controller, p *PresentationBundle, logger *zap.Logger) *worker.WorkerManager {
	manager := worker.NewWorkerManager(logger)
	manager.Register(worker.NewRefresher(
		worker.RefresherConfig{Interval: cfg.RefreshInterval},
		controller,
		p.Screen,
		logger,
	))
	return manager
}
