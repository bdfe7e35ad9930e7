package dashboard

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/internal/render"
)

// fakeAPI is a function-field BackendAPI. Unset functions return empty results.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	listBillsFunc    func(ctx context.Context, params map[string]string) (*entity.BillList, error)
	getBillFunc      func(ctx context.Context, id int64) (*entity.Bill, error)
	createBillFunc   func(ctx context.Context, input entity.BillInput) (*entity.Bill, error)
	deleteBillFunc   func(ctx context.Context, id int64) (*entity.DeleteResult, error)
	initiateCallFunc func(ctx context.Context, id int64) (*entity.CallInitiation, error)
	pendingFunc      func(ctx context.Context) (*entity.BillList, error)
	overdueFunc      func(ctx context.Context) (*entity.BillList, error)
	listCallsFunc    func(ctx context.Context, params map[string]string) ([]entity.CallLog, error)
	getCallLogFunc   func(ctx context.Context, id int64) (*entity.CallLog, error)
	paymentByBill    func(ctx context.Context, id int64) (*entity.Payment, error)
	healthFunc       func(ctx context.Context) (*entity.HealthStatus, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) ListBills(ctx context.Context, params map[string]string) (*entity.BillList, error) {
	f.record("ListBills")
	if f.listBillsFunc != nil {
		return f.listBillsFunc(ctx, params)
	}
	return &entity.BillList{}, nil
}

func (f *fakeAPI) GetBill(ctx context.Context, id int64) (*entity.Bill, error) {
	f.record("GetBill")
	if f.getBillFunc != nil {
		return f.getBillFunc(ctx, id)
	}
	return &entity.Bill{ID: id}, nil
}

func (f *fakeAPI) CreateBill(ctx context.Context, input entity.BillInput) (*entity.Bill, error) {
	f.record("CreateBill")
	if f.createBillFunc != nil {
		return f.createBillFunc(ctx, input)
	}
	return &entity.Bill{ID: 1, BillNumber: input.BillNumber}, nil
}

func (f *fakeAPI) UpdateBill(ctx context.Context, id int64, input entity.BillInput) (*entity.Bill, error) {
	f.record("UpdateBill")
	return &entity.Bill{ID: id}, nil
}

func (f *fakeAPI) DeleteBill(ctx context.Context, id int64) (*entity.DeleteResult, error) {
	f.record("DeleteBill")
	if f.deleteBillFunc != nil {
		return f.deleteBillFunc(ctx, id)
	}
	return &entity.DeleteResult{Message: "Bill deleted successfully"}, nil
}

func (f *fakeAPI) InitiateCall(ctx context.Context, id int64) (*entity.CallInitiation, error) {
	f.record("InitiateCall")
	if f.initiateCallFunc != nil {
		return f.initiateCallFunc(ctx, id)
	}
	return &entity.CallInitiation{BillID: id}, nil
}

func (f *fakeAPI) PendingBills(ctx context.Context) (*entity.BillList, error) {
	f.record("PendingBills")
	if f.pendingFunc != nil {
		return f.pendingFunc(ctx)
	}
	return &entity.BillList{}, nil
}

func (f *fakeAPI) OverdueBills(ctx context.Context) (*entity.BillList, error) {
	f.record("OverdueBills")
	if f.overdueFunc != nil {
		return f.overdueFunc(ctx)
	}
	return &entity.BillList{}, nil
}

func (f *fakeAPI) ListCallLogs(ctx context.Context, params map[string]string) ([]entity.CallLog, error) {
	f.record("ListCallLogs")
	if f.listCallsFunc != nil {
		return f.listCallsFunc(ctx, params)
	}
	return nil, nil
}

func (f *fakeAPI) GetCallLog(ctx context.Context, id int64) (*entity.CallLog, error) {
	f.record("GetCallLog")
	if f.getCallLogFunc != nil {
		return f.getCallLogFunc(ctx, id)
	}
	return &entity.CallLog{ID: id}, nil
}

func (f *fakeAPI) GetPayment(ctx context.Context, paymentID string) (*entity.Payment, error) {
	f.record("GetPayment")
	return &entity.Payment{PaymentID: paymentID}, nil
}

func (f *fakeAPI) GetPaymentByBill(ctx context.Context, id int64) (*entity.Payment, error) {
	f.record("GetPaymentByBill")
	if f.paymentByBill != nil {
		return f.paymentByBill(ctx, id)
	}
	return nil, &notFoundError{msg: "Payment not found for this bill"}
}

// notFoundError is a backend 404
type notFoundError struct{ msg string }

func (e *notFoundError) Error() string  { return e.msg }
func (e *notFoundError) NotFound() bool { return true }

func (f *fakeAPI) Health(ctx context.Context) (*entity.HealthStatus, error) {
	f.record("Health")
	if f.healthFunc != nil {
		return f.healthFunc(ctx)
	}
	return &entity.HealthStatus{Status: "healthy"}, nil
}

// fakeSurface keeps every view it is shown
type fakeSurface struct {
	mu        sync.Mutex
	stats     []render.StatsView
	activity  []render.ActivityList
	overdue   []render.OverdueList
	bills     []render.BillTable
	calls     []render.CallTable
	analytics []render.AnalyticsView
	bill      []render.BillDetail
	call      []render.CallDetail
}

func (s *fakeSurface) ShowStats(v render.StatsView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = append(s.stats, v)
}

func (s *fakeSurface) ShowRecentActivity(v render.ActivityList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, v)
}

func (s *fakeSurface) ShowOverdueBills(v render.OverdueList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overdue = append(s.overdue, v)
}

func (s *fakeSurface) ShowBillsTable(v render.BillTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = append(s.bills, v)
}

func (s *fakeSurface) ShowCallLogs(v render.CallTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, v)
}

func (s *fakeSurface) ShowAnalytics(v render.AnalyticsView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics = append(s.analytics, v)
}

func (s *fakeSurface) ShowBillDetail(v render.BillDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bill = append(s.bill, v)
}

func (s *fakeSurface) ShowCallDetail(v render.CallDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call = append(s.call, v)
}

type toast struct {
	kind    port.ToastKind
	message string
}

type fakeNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *fakeNotifier) Notify(kind port.ToastKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{kind, message})
}

func (n *fakeNotifier) messages(kind port.ToastKind) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, t := range n.toasts {
		if t.kind == kind {
			out = append(out, t.message)
		}
	}
	return out
}

// MockConfirmer mocks the Confirmer interface
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, message string) bool {
	args := m.Called(message)
	return args.Bool(0)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type fixture struct {
	api        *fakeAPI
	surface    *fakeSurface
	notifier   *fakeNotifier
	confirmer  *MockConfirmer
	controller *Controller
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		api:       &fakeAPI{},
		surface:   &fakeSurface{},
		notifier:  &fakeNotifier{},
		confirmer: &MockConfirmer{},
	}
	f.controller = NewController(Dependencies{
		API:       f.api,
		Surface:   f.surface,
		Notifier:  f.notifier,
		Confirmer: f.confirmer,
		Logger:    &mockLogger{},
	}, opts)
	return f
}

func billsWithStatuses(statuses ...string) []entity.Bill {
	bills := make([]entity.Bill, 0, len(statuses))
	for i, status := range statuses {
		bills = append(bills, entity.Bill{
			ID:           int64(i + 1),
			BillNumber:   "BILL-" + string(rune('A'+i)),
			CustomerName: "Customer",
			Status:       status,
			BillAmount:   100,
		})
	}
	return bills
}
