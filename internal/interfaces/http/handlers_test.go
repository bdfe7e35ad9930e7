package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/bill-collection-dashboard/internal/application/dashboard"
	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/internal/export"
	"github.com/garyjia/bill-collection-dashboard/internal/format"
	"github.com/garyjia/bill-collection-dashboard/internal/infrastructure/external/backend"
	"github.com/garyjia/bill-collection-dashboard/internal/render"
)

// MockDashboard mocks the Dashboard interface
type MockDashboard struct {
	mock.Mock
}

func (m *MockDashboard) LoadDashboard(ctx context.Context) error {
	return m.Called().Error(0)
}

func (m *MockDashboard) LoadBillsTable(ctx context.Context, status string) (render.BillTable, error) {
	args := m.Called(status)
	return args.Get(0).(render.BillTable), args.Error(1)
}

func (m *MockDashboard) LoadCallLogs(ctx context.Context, status string) (render.CallTable, error) {
	args := m.Called(status)
	return args.Get(0).(render.CallTable), args.Error(1)
}

func (m *MockDashboard) LoadAnalytics(ctx context.Context) (entity.Analytics, error) {
	args := m.Called()
	return args.Get(0).(entity.Analytics), args.Error(1)
}

func (m *MockDashboard) ViewBill(ctx context.Context, billID int64) error {
	return m.Called(billID).Error(0)
}

func (m *MockDashboard) ViewCallDetails(ctx context.Context, callLogID int64) error {
	return m.Called(callLogID).Error(0)
}

func (m *MockDashboard) InitiateCall(ctx context.Context, billID int64) error {
	return m.Called(ctx, billID).Error(0)
}

func (m *MockDashboard) DeleteBill(ctx context.Context, billID int64) error {
	return m.Called(ctx, billID).Error(0)
}

func (m *MockDashboard) CreateBill(ctx context.Context, form dashboard.BillForm) (*entity.Bill, error) {
	args := m.Called(form)
	bill, _ := args.Get(0).(*entity.Bill)
	return bill, args.Error(1)
}

func (m *MockDashboard) InitiatePendingCalls(ctx context.Context) (dashboard.BatchResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(dashboard.BatchResult), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestServer(t *testing.T) (*Server, *MockDashboard, *Screen) {
	return newTestServerWith(t, func(*ServerConfig) {})
}

func newTestServerWith(t *testing.T, configure func(*ServerConfig)) (*Server, *MockDashboard, *Screen) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dash := &MockDashboard{}
	screen := NewScreen(3 * time.Second)
	cfg := DefaultServerConfig()
	cfg.RefreshDebounce = time.Millisecond
	cfg.Location = time.UTC
	configure(&cfg)

	server := NewServer(cfg, dash, screen, export.NewBillsWorkbook(nil), nopLogger{})
	return server, dash, screen
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// confirmWith makes a mocked action ask prompt through the form confirmer
func confirmWith(prompt string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		FormConfirmer{}.Confirm(ctx, prompt)
	}
}

func TestHealthCheck(t *testing.T) {
	server, _, _ := newTestServer(t)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", resp.Data.Status)
	assert.Equal(t, "dashboard", resp.Data.ActiveView)
}

func TestDashboardPage(t *testing.T) {
	server, dash, screen := newTestServer(t)
	dash.On("LoadDashboard").Run(func(mock.Arguments) {
		screen.ShowStats(render.StatsView{Total: 10, Pending: 5, Paid: 3, Overdue: 2, CollectionRate: "30.0%"})
		screen.ShowRecentActivity(render.ActivityList{Placeholder: render.NoRecentActivity})
		screen.ShowOverdueBills(render.OverdueList{Items: []render.OverdueItem{
			{CustomerName: "Asha Rao", BillNumber: "BILL-9", Amount: "₹250.00", DueDate: "1 Oct 2026"},
		}})
	}).Return(nil)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "30.0%")
	assert.Contains(t, body, render.NoRecentActivity)
	assert.Contains(t, body, "Asha Rao")
	assert.Contains(t, body, `content="30;url=/dashboard?cached=1"`)
	assert.Equal(t, ViewDashboard, screen.Active())
	dash.AssertNumberOfCalls(t, "LoadDashboard", 1)
}

func TestDashboardPage_CachedDoesNotFetch(t *testing.T) {
	server, dash, screen := newTestServer(t)
	screen.ShowStats(render.StatsView{Total: 4, CollectionRate: "25.0%"})

	w := serve(server, httptest.NewRequest(http.MethodGet, "/dashboard?cached=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "25.0%")
	dash.AssertNotCalled(t, "LoadDashboard")
}

func TestDashboardPage_UnavailablePanels(t *testing.T) {
	server, _, screen := newTestServer(t)
	screen.ShowStats(render.StatsView{Unavailable: render.FailedStats})
	screen.ShowRecentActivity(render.ActivityList{Placeholder: render.FailedRecentActivity})

	w := serve(server, httptest.NewRequest(http.MethodGet, "/dashboard?cached=1", nil))

	body := w.Body.String()
	assert.Contains(t, body, render.FailedStats)
	assert.Contains(t, body, render.FailedRecentActivity)
	assert.NotContains(t, body, "Collection Rate")
	assert.NotContains(t, body, "Loading...")
}

func TestToastsShownOnce(t *testing.T) {
	server, _, screen := newTestServer(t)
	screen.Notify(port.ToastError, "Failed to load bills")

	first := serve(server, httptest.NewRequest(http.MethodGet, "/dashboard?cached=1", nil))
	second := serve(server, httptest.NewRequest(http.MethodGet, "/dashboard?cached=1", nil))

	assert.Contains(t, first.Body.String(), `toast-error">Failed to load bills`)
	assert.NotContains(t, second.Body.String(), "Failed to load bills")
}

func TestBillsPage(t *testing.T) {
	server, dash, screen := newTestServer(t)
	dash.On("LoadBillsTable", "pending").Return(render.BillTable{
		Filter:  "pending",
		Columns: render.BillColumns,
		Rows: []render.BillRow{
			{ID: 7, BillNumber: "BILL-7", Status: format.StatusBadge("pending"), CanCall: true},
			{ID: 8, BillNumber: "BILL-8", Status: format.StatusBadge("paid")},
		},
	}, nil)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/bills?status=pending", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "BILL-7")
	assert.Contains(t, body, `action="/bills/7/call"`)
	assert.NotContains(t, body, `action="/bills/8/call"`)
	assert.Contains(t, body, `action="/bills/8/delete"`)
	assert.Contains(t, body, `<option value="pending" selected>`)
	assert.Equal(t, ViewBills, screen.Active())
}

func TestBillsPage_EmptyPlaceholder(t *testing.T) {
	server, dash, _ := newTestServer(t)
	dash.On("LoadBillsTable", "").Return(render.BillTable{Columns: render.BillColumns, Placeholder: render.NoBillsFound}, nil)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/bills", nil))

	assert.Contains(t, w.Body.String(), `<td colspan="7" class="empty">No bills found</td>`)
}

func TestBillsPage_FailureIgnoresOtherFilter(t *testing.T) {
	server, dash, screen := newTestServer(t)
	screen.ShowBillsTable(render.BillTable{
		Filter:  "paid",
		Columns: render.BillColumns,
		Rows:    []render.BillRow{{ID: 2, BillNumber: "PAID-2", Status: format.StatusBadge("paid")}},
	})
	dash.On("LoadBillsTable", "pending").Return(render.FailedBillsTable("pending"), errors.New("timeout"))

	w := serve(server, httptest.NewRequest(http.MethodGet, "/bills?status=pending", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, render.FailedBills)
	assert.NotContains(t, body, "PAID-2")
}

func TestPendingBillsLink(t *testing.T) {
	server, _, _ := newTestServer(t)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/bills/pending", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/bills?status=pending", w.Header().Get("Location"))
}

func TestInitiateCall_AsksForConfirmation(t *testing.T) {
	server, dash, _ := newTestServer(t)
	dash.On("InitiateCall", mock.Anything, int64(7)).
		Run(confirmWith(dashboard.ConfirmInitiateCall)).
		Return(nil)

	w := serve(server, postForm("/bills/7/call", url.Values{"return": {"/bills?status=pending"}}))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, dashboard.ConfirmInitiateCall)
	assert.Contains(t, body, `action="/bills/7/call"`)
	assert.Contains(t, body, `name="confirmed" value="yes"`)
}

func TestInitiateCall_Confirmed(t *testing.T) {
	server, dash, _ := newTestServer(t)
	dash.On("InitiateCall", mock.Anything, int64(7)).
		Run(confirmWith(dashboard.ConfirmInitiateCall)).
		Return(nil)

	w := serve(server, postForm("/bills/7/call", url.Values{
		"confirmed": {"yes"},
		"return":    {"/bills?status=pending"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/bills?status=pending", w.Header().Get("Location"))
	dash.AssertExpectations(t)
}

func TestDeleteBill_RejectsForeignReturn(t *testing.T) {
	server, dash, _ := newTestServer(t)
	dash.On("DeleteBill", mock.Anything, int64(3)).
		Run(confirmWith(dashboard.ConfirmDeleteBill)).
		Return(nil)

	w := serve(server, postForm("/bills/3/delete", url.Values{
		"confirmed": {"yes"},
		"return":    {"//evil.example.com"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/bills", w.Header().Get("Location"))
}

func TestInvalidBillID(t *testing.T) {
	server, dash, screen := newTestServer(t)

	w := serve(server, postForm("/bills/abc/call", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	dash.AssertNotCalled(t, "InitiateCall", mock.Anything, mock.Anything)
	toasts := screen.TakeToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Invalid bill ID", toasts[0].Message)
}

func TestBatchCalls_Confirmed(t *testing.T) {
	server, dash, _ := newTestServer(t)
	dash.On("InitiatePendingCalls", mock.Anything).
		Run(confirmWith(dashboard.ConfirmBatchCalls)).
		Return(dashboard.BatchResult{Pending: 7, Initiated: 5, Skipped: 2}, nil)

	w := serve(server, postForm("/calls/batch", url.Values{"confirmed": {"yes"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	dash.AssertExpectations(t)
}

func TestCreateBill_BindsForm(t *testing.T) {
	server, dash, _ := newTestServer(t)
	expected := dashboard.BillForm{
		CustomerName:   "Asha Rao",
		CustomerPhone:  "+91 98765 43210",
		ConsumerNumber: "CN-1",
		BillNumber:     "BILL-1",
		BillAmount:     1500.5,
		DueDate:        "2026-11-30",
	}
	dash.On("CreateBill", expected).Return(&entity.Bill{ID: 1, BillNumber: "BILL-1"}, nil)

	w := serve(server, postForm("/bills", url.Values{
		"customer_name":   {"Asha Rao"},
		"customer_phone":  {"+91 98765 43210"},
		"consumer_number": {"CN-1"},
		"bill_number":     {"BILL-1"},
		"bill_amount":     {"1500.50"},
		"due_date":        {"2026-11-30"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/bills", w.Header().Get("Location"))
	dash.AssertExpectations(t)
}

func TestCreateBill_UnparsableAmount(t *testing.T) {
	server, dash, screen := newTestServer(t)

	w := serve(server, postForm("/bills", url.Values{"bill_amount": {"lots"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	dash.AssertNotCalled(t, "CreateBill", mock.Anything)
	toasts := screen.TakeToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Invalid bill details", toasts[0].Message)
}

func TestViewBill(t *testing.T) {
	server, dash, screen := newTestServer(t)
	dash.On("ViewBill", int64(5)).Run(func(mock.Arguments) {
		screen.ShowBillDetail(render.BillDetail{
			Row:     render.BillRow{ID: 5, BillNumber: "BILL-5", Status: format.StatusBadge("paid")},
			Payment: &render.PaymentView{PaymentID: "pay_5", Status: format.StatusBadge("completed")},
		})
	}).Return(nil)
	dash.On("ViewBill", int64(404)).Return(errors.New("Bill not found"))

	w := serve(server, httptest.NewRequest(http.MethodGet, "/bills/5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pay_5")

	w = serve(server, httptest.NewRequest(http.MethodGet, "/bills/404", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/bills", w.Header().Get("Location"))
}

func TestCallsPage(t *testing.T) {
	server, dash, screen := newTestServer(t)
	outcome := format.StatusBadge("payment_promised")
	dash.On("LoadCallLogs", "completed").Return(render.CallTable{
		Filter:  "completed",
		Columns: render.CallColumns,
		Rows: []render.CallRow{
			{ID: 1, CallID: "call_1", Status: format.StatusBadge("completed"), Outcome: &outcome, Duration: "2m 5s"},
			{ID: 2, CallID: "N/A", Status: format.StatusBadge("completed"), Duration: "N/A"},
		},
	}, nil)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/calls?status=completed", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "payment_promised")
	assert.Contains(t, body, "2m 5s")
	assert.Contains(t, body, `href="/calls/2"`)
	assert.Equal(t, ViewCalls, screen.Active())
}

func TestViewCall(t *testing.T) {
	server, dash, screen := newTestServer(t)
	dash.On("ViewCallDetails", int64(2)).Run(func(mock.Arguments) {
		screen.ShowCallDetail(render.CallDetail{
			Row:        render.CallRow{ID: 2, CallID: "call_2", Status: format.StatusBadge("completed")},
			Transcript: "Customer agreed to pay tomorrow",
		})
	}).Return(nil)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/calls/2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Customer agreed to pay tomorrow")
}

func TestAnalyticsPage(t *testing.T) {
	server, dash, screen := newTestServer(t)
	dash.On("LoadAnalytics").Run(func(mock.Arguments) {
		screen.ShowAnalytics(render.AnalyticsView{
			CallSuccessRate:   "50.0%",
			AvgCallDuration:   "45s",
			PaymentConversion: "66.7%",
			TotalCollection:   "₹2,000.00",
		})
	}).Return(entity.Analytics{}, nil)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/analytics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "66.7%")
	assert.Contains(t, w.Body.String(), "₹2,000.00")
	assert.Equal(t, ViewAnalytics, screen.Active())
}

func TestExportBills(t *testing.T) {
	server, dash, _ := newTestServer(t)
	dash.On("LoadBillsTable", "overdue").Return(render.BillTable{
		Filter:  "overdue",
		Columns: render.BillColumns,
		Rows: []render.BillRow{
			{ID: 1, BillNumber: "BILL-1", Amount: "₹99.00", Status: format.StatusBadge("overdue")},
		},
	}, nil)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/bills/export.xlsx?status=overdue", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bills-overdue.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.BillsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BILL-1", rows[1][0])
}

func TestRefreshDashboard_Debounced(t *testing.T) {
	server, dash, screen := newTestServerWith(t, func(cfg *ServerConfig) {
		cfg.RefreshDebounce = 50 * time.Millisecond
	})
	reloaded := make(chan struct{}, 4)
	dash.On("LoadDashboard").Run(func(mock.Arguments) {
		reloaded <- struct{}{}
	}).Return(nil)

	for i := 0; i < 3; i++ {
		w := serve(server, postForm("/dashboard/refresh", url.Values{}))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard?cached=1", w.Header().Get("Location"))
	}

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("dashboard was not reloaded")
	}
	select {
	case <-reloaded:
		t.Fatal("refresh burst reloaded more than once")
	case <-time.After(150 * time.Millisecond):
	}
	toasts := screen.TakeToasts()
	require.Len(t, toasts, 4)
	for _, toast := range toasts[:3] {
		assert.Equal(t, port.ToastInfo, toast.Kind)
	}
	assert.Equal(t, port.ToastSuccess, toasts[3].Kind)
	assert.Equal(t, "Dashboard refreshed", toasts[3].Message)
}

func TestRefreshDashboard_FailedReloadIsNotReportedAsRefreshed(t *testing.T) {
	server, dash, screen := newTestServer(t)
	reloaded := make(chan struct{}, 1)
	dash.On("LoadDashboard").Run(func(mock.Arguments) {
		reloaded <- struct{}{}
	}).Return(errors.New("panic in panel"))

	serve(server, postForm("/dashboard/refresh", url.Values{}))

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("dashboard was not reloaded")
	}
	time.Sleep(20 * time.Millisecond)

	for _, toast := range screen.TakeToasts() {
		assert.NotEqual(t, "Dashboard refreshed", toast.Message)
	}
}

// newBackendServer wires the real client, controller and screen to a stub
// backend whose pending bills request blocks until release is closed.
func newBackendServer(t *testing.T, entered chan<- struct{}, release <-chan struct{}) (*Server, *Screen) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("status") == "pending" {
			entered <- struct{}{}
			<-release
			_, _ = w.Write([]byte(`{"total":1,"bills":[{"id":1,"bill_number":"PENDING-1","status":"pending","bill_amount":10}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"total":1,"bills":[{"id":2,"bill_number":"PAID-2","status":"paid","bill_amount":20}]}`))
	}))
	t.Cleanup(api.Close)

	screen := NewScreen(3 * time.Second)
	controller := dashboard.NewController(dashboard.Dependencies{
		API:       backend.NewClient(backend.Config{BaseURL: api.URL, Timeout: 5 * time.Second}, zap.NewNop()),
		Surface:   screen,
		Notifier:  screen,
		Confirmer: FormConfirmer{},
		Renderer:  render.NewRenderer(time.UTC),
		Logger:    nopLogger{},
	}, dashboard.DefaultOptions())

	cfg := DefaultServerConfig()
	cfg.Location = time.UTC
	return NewServer(cfg, controller, screen, export.NewBillsWorkbook(nil), nopLogger{}), screen
}

func TestOvertakenRequestKeepsItsFilter(t *testing.T) {
	t.Run("export", func(t *testing.T) {
		entered := make(chan struct{}, 1)
		release := make(chan struct{})
		server, screen := newBackendServer(t, entered, release)

		exported := make(chan *httptest.ResponseRecorder, 1)
		go func() {
			exported <- serve(server, httptest.NewRequest(http.MethodGet, "/bills/export.xlsx?status=pending", nil))
		}()
		<-entered

		page := serve(server, httptest.NewRequest(http.MethodGet, "/bills?status=paid", nil))
		require.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), "PAID-2")
		close(release)

		w := <-exported
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "bills-pending.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(export.BillsSheet)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "PENDING-1", rows[1][0])

		// the newer request still owns the shared screen
		assert.Equal(t, "paid", screen.Snapshot().Bills.Filter)
	})

	t.Run("bills page", func(t *testing.T) {
		entered := make(chan struct{}, 1)
		release := make(chan struct{})
		server, _ := newBackendServer(t, entered, release)

		pending := make(chan *httptest.ResponseRecorder, 1)
		go func() {
			pending <- serve(server, httptest.NewRequest(http.MethodGet, "/bills?status=pending", nil))
		}()
		<-entered

		serve(server, httptest.NewRequest(http.MethodGet, "/bills?status=paid", nil))
		close(release)

		w := <-pending
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "PENDING-1")
		assert.NotContains(t, body, "PAID-2")
		assert.Contains(t, body, `<option value="pending" selected>`)
	})
}
