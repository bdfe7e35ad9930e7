// Package dashboard orchestrates backend fetches, derives the dashboard
// aggregates and hands rendered views to the presentation surface.
// Every exported operation is its own error boundary: failures are logged
// and shown as a notification, and the error is returned for information.
package dashboard

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc"
	"golang.org/x/sync/errgroup"

	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/internal/render"
	"github.com/garyjia/bill-collection-dashboard/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Options tunes the controller
type Options struct {
	RecentActivityLimit int
	OverdueDisplayLimit int
	BatchCallLimit      int
	BatchCallSpacing    time.Duration
}

// DefaultOptions returns the stock dashboard settings
func DefaultOptions() Options {
	return Options{
		RecentActivityLimit: 5,
		OverdueDisplayLimit: 5,
		BatchCallLimit:      5,
		BatchCallSpacing:    time.Second,
	}
}

// Dependencies groups the collaborators of a Controller
type Dependencies struct {
	API       port.BackendAPI
	Surface   port.Surface
	Notifier  port.Notifier
	Confirmer port.Confirmer
	Renderer  *render.Renderer
	Logger    Logger
}

// ErrSuperseded reports a table load overtaken by a newer request for the
// same table. The table returned with it still matches the caller's filter.
var ErrSuperseded = errors.New("superseded by a newer request")

// view targets with request sequencing
const (
	targetBills = "bills"
	targetCalls = "calls"
)

// Controller drives the dashboard views
type Controller struct {
	api       port.BackendAPI
	surface   port.Surface
	notifier  port.Notifier
	confirmer port.Confirmer
	renderer  *render.Renderer
	logger    Logger
	validate  *validator.Validate
	opts      Options
	seq       *sequencer
}

// NewController creates a Controller
func NewController(deps Dependencies, opts Options) *Controller {
	renderer := deps.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	return &Controller{
		api:       deps.API,
		surface:   deps.Surface,
		notifier:  deps.Notifier,
		confirmer: deps.Confirmer,
		renderer:  renderer,
		logger:    deps.Logger,
		validate:  utils.NewValidator(),
		opts:      opts,
		seq:       newSequencer(),
	}
}

// userMessage returns the error's own text when it is meant for the user,
// otherwise fallback.
func userMessage(err error, fallback string) string {
	var uf port.UserFacingError
	if errors.As(err, &uf) && uf.UserMessage() != "" {
		return uf.UserMessage()
	}
	return fallback
}

func statusParams(status string) map[string]string {
	if status == "" {
		return nil
	}
	return map[string]string{"status": status}
}

func billsOf(list *entity.BillList) []entity.Bill {
	if list == nil {
		return nil
	}
	return list.Bills
}

// LoadDashboard loads the summary, recent activity and overdue panels
// concurrently. A failing panel does not stop the others.
func (c *Controller) LoadDashboard(ctx context.Context) error {
	var wg conc.WaitGroup
	wg.Go(func() { _, _ = c.LoadStats(ctx) })
	wg.Go(func() { _ = c.LoadRecentActivity(ctx) })
	wg.Go(func() { _ = c.LoadOverdueBills(ctx) })

	if recovered := wg.WaitAndRecover(); recovered != nil {
		err := recovered.AsError()
		c.logger.Error("Error loading dashboard", "error", err)
		c.notifier.Notify(port.ToastError, "Failed to load dashboard data")
		return err
	}
	return nil
}

// LoadStats counts the current bills by status
func (c *Controller) LoadStats(ctx context.Context) (entity.DashboardStats, error) {
	list, err := c.api.ListBills(ctx, nil)
	if err != nil {
		c.logger.Error("Error loading stats", "error", err)
		c.surface.ShowStats(render.StatsView{Unavailable: render.FailedStats})
		return entity.DashboardStats{}, err
	}

	stats := ComputeStats(billsOf(list))
	c.surface.ShowStats(c.renderer.Stats(stats))
	return stats, nil
}

// LoadRecentActivity shows the latest call logs
func (c *Controller) LoadRecentActivity(ctx context.Context) error {
	params := map[string]string{"limit": strconv.Itoa(c.opts.RecentActivityLimit)}
	logs, err := c.api.ListCallLogs(ctx, params)
	if err != nil {
		c.logger.Error("Error loading recent activity", "error", err)
		c.surface.ShowRecentActivity(render.ActivityList{Placeholder: render.FailedRecentActivity})
		return err
	}

	c.surface.ShowRecentActivity(c.renderer.RecentActivity(logs))
	return nil
}

// LoadOverdueBills shows the overdue panel
func (c *Controller) LoadOverdueBills(ctx context.Context) error {
	list, err := c.api.OverdueBills(ctx)
	if err != nil {
		c.logger.Error("Error loading overdue bills", "error", err)
		c.surface.ShowOverdueBills(render.OverdueList{Placeholder: render.FailedOverdueBills})
		return err
	}

	c.surface.ShowOverdueBills(c.renderer.OverdueBills(billsOf(list), c.opts.OverdueDisplayLimit))
	return nil
}

// LoadBillsTable shows the bills, filtered by status when non-empty, and
// returns the table built for status. A response overtaken by a newer
// request is not shown and reports ErrSuperseded.
func (c *Controller) LoadBillsTable(ctx context.Context, status string) (render.BillTable, error) {
	token := c.seq.next(targetBills)

	list, err := c.api.ListBills(ctx, statusParams(status))
	latest := c.seq.isLatest(targetBills, token)

	if err != nil {
		table := render.FailedBillsTable(status)
		if !latest {
			c.logger.Info("Dropping stale bills failure", "status", status, "error", err)
			return table, ErrSuperseded
		}
		c.logger.Error("Error loading bills", "status", status, "error", err)
		c.notifier.Notify(port.ToastError, "Failed to load bills")
		c.surface.ShowBillsTable(table)
		return table, err
	}

	table := c.renderer.BillsTable(status, billsOf(list))
	if !latest {
		c.logger.Info("Dropping stale bills response", "status", status)
		return table, ErrSuperseded
	}
	c.surface.ShowBillsTable(table)
	return table, nil
}

// LoadCallLogs shows the call logs, filtered by status when non-empty, and
// returns the table built for status. A response overtaken by a newer
// request is not shown and reports ErrSuperseded.
func (c *Controller) LoadCallLogs(ctx context.Context, status string) (render.CallTable, error) {
	token := c.seq.next(targetCalls)

	logs, err := c.api.ListCallLogs(ctx, statusParams(status))
	latest := c.seq.isLatest(targetCalls, token)

	if err != nil {
		table := render.FailedCallLogsTable(status)
		if !latest {
			c.logger.Info("Dropping stale call logs failure", "status", status, "error", err)
			return table, ErrSuperseded
		}
		c.logger.Error("Error loading call logs", "status", status, "error", err)
		c.notifier.Notify(port.ToastError, "Failed to load call logs")
		c.surface.ShowCallLogs(table)
		return table, err
	}

	table := c.renderer.CallLogsTable(status, logs)
	if !latest {
		c.logger.Info("Dropping stale call logs response", "status", status)
		return table, ErrSuperseded
	}
	c.surface.ShowCallLogs(table)
	return table, nil
}

// LoadAnalytics fetches bills and call logs concurrently and derives the
// analytics cards from them.
func (c *Controller) LoadAnalytics(ctx context.Context) (entity.Analytics, error) {
	var (
		bills []entity.Bill
		calls []entity.CallLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := c.api.ListBills(gctx, nil)
		if err != nil {
			return err
		}
		bills = billsOf(list)
		return nil
	})
	g.Go(func() error {
		logs, err := c.api.ListCallLogs(gctx, nil)
		if err != nil {
			return err
		}
		calls = logs
		return nil
	})

	if err := g.Wait(); err != nil {
		c.logger.Error("Error loading analytics", "error", err)
		c.notifier.Notify(port.ToastError, "Failed to load analytics")
		c.surface.ShowAnalytics(render.AnalyticsView{Unavailable: render.FailedAnalytics})
		return entity.Analytics{}, err
	}

	analytics := ComputeAnalytics(bills, calls)
	c.surface.ShowAnalytics(c.renderer.Analytics(analytics))
	return analytics, nil
}

// ViewBill shows one bill with its payment. A bill without a payment (404)
// is shown without the payment block; any other payment failure is reported
// and the bill is still shown.
func (c *Controller) ViewBill(ctx context.Context, billID int64) error {
	bill, err := c.api.GetBill(ctx, billID)
	if err != nil {
		c.logger.Error("Error loading bill", "bill_id", billID, "error", err)
		c.notifier.Notify(port.ToastError, userMessage(err, "Failed to load bill"))
		return err
	}

	payment, err := c.api.GetPaymentByBill(ctx, billID)
	if err != nil {
		if !port.IsNotFound(err) {
			c.logger.Error("Error loading payment", "bill_id", billID, "error", err)
			c.notifier.Notify(port.ToastError, "Failed to load payment")
		}
		payment = nil
	}

	c.surface.ShowBillDetail(c.renderer.BillDetail(*bill, payment))
	return nil
}

// ViewCallDetails shows one call log
func (c *Controller) ViewCallDetails(ctx context.Context, callLogID int64) error {
	log, err := c.api.GetCallLog(ctx, callLogID)
	if err != nil {
		c.logger.Error("Error loading call log", "call_log_id", callLogID, "error", err)
		c.notifier.Notify(port.ToastError, userMessage(err, "Failed to load call details"))
		return err
	}

	c.surface.ShowCallDetail(c.renderer.CallDetail(*log))
	return nil
}

// CheckHealth pings the backend and warns when it does not answer
func (c *Controller) CheckHealth(ctx context.Context) error {
	status, err := c.api.Health(ctx)
	if err != nil {
		c.logger.Error("Backend API is not responding", "error", err)
		c.notifier.Notify(port.ToastWarning, "Warning: Backend API is not responding")
		return err
	}
	c.logger.Info("Backend API is healthy", "status", status.Status, "service", status.Service)
	return nil
}
