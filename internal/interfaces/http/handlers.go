package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bill-collection-dashboard/internal/application/dashboard"
	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/internal/export"
	"github.com/garyjia/bill-collection-dashboard/internal/format"
	"github.com/garyjia/bill-collection-dashboard/internal/render"
	"github.com/garyjia/bill-collection-dashboard/pkg/utils"
)

// Dashboard is the controller surface the handlers drive
type Dashboard interface {
	LoadDashboard(ctx context.Context) error
	LoadBillsTable(ctx context.Context, status string) (render.BillTable, error)
	LoadCallLogs(ctx context.Context, status string) (render.CallTable, error)
	LoadAnalytics(ctx context.Context) (entity.Analytics, error)
	ViewBill(ctx context.Context, billID int64) error
	ViewCallDetails(ctx context.Context, callLogID int64) error
	InitiateCall(ctx context.Context, billID int64) error
	DeleteBill(ctx context.Context, billID int64) error
	CreateBill(ctx context.Context, form dashboard.BillForm) (*entity.Bill, error)
	InitiatePendingCalls(ctx context.Context) (dashboard.BatchResult, error)
}

var (
	billStatuses = []string{
		entity.BillStatusPending,
		entity.BillStatusCalled,
		entity.BillStatusPaid,
		entity.BillStatusOverdue,
		entity.BillStatusCancelled,
	}
	callStatuses = []string{
		entity.CallStatusInitiated,
		entity.CallStatusRinging,
		entity.CallStatusInProgress,
		entity.CallStatusCompleted,
		entity.CallStatusFailed,
		entity.CallStatusNoAnswer,
		entity.CallStatusBusy,
	}
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	dashboard       Dashboard
	screen          *Screen
	workbook        *export.BillsWorkbook
	refresh         *utils.Debouncer
	logger          Logger
	loc             *time.Location
	now             func() time.Time
	refreshInterval time.Duration
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	Version    string `json:"version"`
	ActiveView string `json:"active_view"`
}

// statusFilter feeds the status select of a table page
type statusFilter struct {
	Action  string
	Current string
	Options []string
}

// confirmPage asks the user before re-posting an action
type confirmPage struct {
	Prompt string
	Action string
	Return string
}

// pageData is the root value of every template
type pageData struct {
	Snapshot
	Title          string
	Nav            View
	Greeting       string
	Toasts         []Toast
	RefreshSeconds int
	Filter         statusFilter
	Return         string
	ExportURL      string
	BillColumns    []string
	CallColumns    []string
	Confirm        *confirmPage
}

// render fills data from the screen. Tables set on data by the handler win
// over the shared screen state, which may hold another request's filter.
func (h *Handlers) render(c *gin.Context, status int, name string, data pageData) {
	own := data.Snapshot
	data.Snapshot = h.screen.Snapshot()
	if own.Bills != nil {
		data.Bills = own.Bills
	}
	if own.Calls != nil {
		data.Calls = own.Calls
	}
	data.Toasts = h.screen.TakeToasts()
	data.Greeting = format.TimeOfDay(h.now().In(h.loc))
	data.BillColumns = render.BillColumns
	data.CallColumns = render.CallColumns
	c.HTML(status, name, data)
}

// safeReturn accepts only same-site paths as redirect targets
func safeReturn(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:     "healthy",
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Version:    "1.0.0",
			ActiveView: string(h.screen.Active()),
		},
	})
}

// Home handles GET /
func (h *Handlers) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// Dashboard handles GET /dashboard. With cached=1 the page shows the
// current screen state without fetching, which is what the auto-refresh
// reload uses.
func (h *Handlers) Dashboard(c *gin.Context) {
	h.screen.SetActive(ViewDashboard)
	if c.Query("cached") == "" {
		_ = h.dashboard.LoadDashboard(c.Request.Context())
	}

	h.render(c, http.StatusOK, "dashboard", pageData{
		Title:          "Dashboard",
		Nav:            ViewDashboard,
		RefreshSeconds: int(h.refreshInterval / time.Second),
	})
}

// RefreshDashboard handles POST /dashboard/refresh. Bursts of clicks
// collapse into one reload; its success toast is queued once it has run.
func (h *Handlers) RefreshDashboard(c *gin.Context) {
	h.refresh.Trigger()
	h.screen.Notify(port.ToastInfo, "Refreshing dashboard...")
	c.Redirect(http.StatusSeeOther, "/dashboard?cached=1")
}

// Bills handles GET /bills
func (h *Handlers) Bills(c *gin.Context) {
	status := c.Query("status")
	h.screen.SetActive(ViewBills)
	table, _ := h.dashboard.LoadBillsTable(c.Request.Context(), status)

	h.render(c, http.StatusOK, "bills", pageData{
		Snapshot:  Snapshot{Bills: &table},
		Title:     "Bills",
		Nav:       ViewBills,
		Filter:    statusFilter{Action: "/bills", Current: status, Options: billStatuses},
		Return:    c.Request.URL.RequestURI(),
		ExportURL: exportURL(status),
	})
}

func exportURL(status string) string {
	if status == "" {
		return "/bills/export.xlsx"
	}
	return "/bills/export.xlsx?" + url.Values{"status": {status}}.Encode()
}

// PendingBills handles GET /bills/pending
func (h *Handlers) PendingBills(c *gin.Context) {
	c.Redirect(http.StatusFound, "/bills?status="+entity.BillStatusPending)
}

// CreateBill handles POST /bills
func (h *Handlers) CreateBill(c *gin.Context) {
	var form dashboard.BillForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Error("Invalid bill form", "error", err)
		h.screen.Notify(port.ToastError, "Invalid bill details")
		c.Redirect(http.StatusSeeOther, "/bills")
		return
	}

	if bill, err := h.dashboard.CreateBill(c.Request.Context(), form); err == nil {
		h.logger.Info("Bill created", "bill_id", bill.ID, "bill_number", bill.BillNumber)
	}
	c.Redirect(http.StatusSeeOther, "/bills")
}

// ViewBill handles GET /bills/:id
func (h *Handlers) ViewBill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.screen.Notify(port.ToastError, "Invalid bill ID")
		c.Redirect(http.StatusFound, "/bills")
		return
	}

	if err := h.dashboard.ViewBill(c.Request.Context(), id); err != nil {
		c.Redirect(http.StatusFound, "/bills")
		return
	}
	h.render(c, http.StatusOK, "bill", pageData{Title: "Bill", Nav: ViewBills})
}

// InitiateCall handles POST /bills/:id/call
func (h *Handlers) InitiateCall(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.screen.Notify(port.ToastError, "Invalid bill ID")
		c.Redirect(http.StatusSeeOther, "/bills")
		return
	}
	h.confirmed(c, fmt.Sprintf("/bills/%d/call", id), "/bills", func(ctx context.Context) {
		_ = h.dashboard.InitiateCall(ctx, id)
	})
}

// DeleteBill handles POST /bills/:id/delete
func (h *Handlers) DeleteBill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.screen.Notify(port.ToastError, "Invalid bill ID")
		c.Redirect(http.StatusSeeOther, "/bills")
		return
	}
	h.confirmed(c, fmt.Sprintf("/bills/%d/delete", id), "/bills", func(ctx context.Context) {
		_ = h.dashboard.DeleteBill(ctx, id)
	})
}

// BatchCalls handles POST /calls/batch
func (h *Handlers) BatchCalls(c *gin.Context) {
	h.confirmed(c, "/calls/batch", "/dashboard", func(ctx context.Context) {
		result, err := h.dashboard.InitiatePendingCalls(ctx)
		if err == nil && result.Initiated > 0 {
			h.logger.Info("Batch calls done", "initiated", result.Initiated, "skipped", result.Skipped)
		}
	})
}

// confirmed runs an action that may ask for confirmation. If the action
// asked and the request did not carry confirmed=yes, a confirmation page
// re-posting to action is shown instead of redirecting.
func (h *Handlers) confirmed(c *gin.Context, action, fallback string, run func(ctx context.Context)) {
	ret := safeReturn(c.PostForm("return"), fallback)
	accepted := c.PostForm("confirmed") == "yes"

	ctx, conf := withConfirmation(c.Request.Context(), accepted)
	run(ctx)

	if prompt := conf.Prompt(); prompt != "" && !accepted {
		h.render(c, http.StatusOK, "confirm", pageData{
			Title:   "Confirm",
			Nav:     h.screen.Active(),
			Confirm: &confirmPage{Prompt: prompt, Action: action, Return: ret},
		})
		return
	}
	c.Redirect(http.StatusSeeOther, ret)
}

// ExportBills handles GET /bills/export.xlsx
func (h *Handlers) ExportBills(c *gin.Context) {
	status := c.Query("status")
	table, err := h.dashboard.LoadBillsTable(c.Request.Context(), status)
	if err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
		c.Redirect(http.StatusFound, "/bills")
		return
	}

	filename := "bills.xlsx"
	if status != "" {
		filename = "bills-" + status + ".xlsx"
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.workbook.Write(c.Writer, table); err != nil {
		h.logger.Error("Failed to export bills", "error", err)
		c.Status(http.StatusInternalServerError)
	}
}

// Calls handles GET /calls
func (h *Handlers) Calls(c *gin.Context) {
	status := c.Query("status")
	h.screen.SetActive(ViewCalls)
	table, _ := h.dashboard.LoadCallLogs(c.Request.Context(), status)

	h.render(c, http.StatusOK, "calls", pageData{
		Snapshot: Snapshot{Calls: &table},
		Title:    "Call Logs",
		Nav:      ViewCalls,
		Filter:   statusFilter{Action: "/calls", Current: status, Options: callStatuses},
		Return:   c.Request.URL.RequestURI(),
	})
}

// ViewCall handles GET /calls/:id
func (h *Handlers) ViewCall(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.screen.Notify(port.ToastError, "Invalid call ID")
		c.Redirect(http.StatusFound, "/calls")
		return
	}

	if err := h.dashboard.ViewCallDetails(c.Request.Context(), id); err != nil {
		c.Redirect(http.StatusFound, "/calls")
		return
	}
	h.render(c, http.StatusOK, "call", pageData{Title: "Call", Nav: ViewCalls})
}

// Analytics handles GET /analytics
func (h *Handlers) Analytics(c *gin.Context) {
	h.screen.SetActive(ViewAnalytics)
	_, _ = h.dashboard.LoadAnalytics(c.Request.Context())

	h.render(c, http.StatusOK, "analytics", pageData{Title: "Analytics", Nav: ViewAnalytics})
}

var _ Dashboard = (*dashboard.Controller)(nil)
