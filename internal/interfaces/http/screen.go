package http

import (
	"sync"
	"time"

	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/render"
)

// View names a top-level navigation target
type View string

const (
	ViewDashboard View = "dashboard"
	ViewBills     View = "bills"
	ViewCalls     View = "calls"
	ViewAnalytics View = "analytics"
)

// Toast is one notification waiting to be displayed
type Toast struct {
	Kind    port.ToastKind
	Message string
	shownAt time.Time
}

// Screen is the server-side surface every page renders from. It keeps the
// latest view per target and the pending notifications. One Screen is shared
// by all clients.
type Screen struct {
	mu       sync.RWMutex
	toastTTL time.Duration
	now      func() time.Time

	active     View
	stats      *render.StatsView
	activity   *render.ActivityList
	overdue    *render.OverdueList
	bills      *render.BillTable
	calls      *render.CallTable
	analytics  *render.AnalyticsView
	billDetail *render.BillDetail
	callDetail *render.CallDetail
	toasts     []Toast
}

// NewScreen creates a Screen whose toasts expire after toastTTL
func NewScreen(toastTTL time.Duration) *Screen {
	return &Screen{
		toastTTL: toastTTL,
		now:      time.Now,
		active:   ViewDashboard,
	}
}

// SetActive records the view the user navigated to
func (s *Screen) SetActive(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = v
}

// Active returns the current view
func (s *Screen) Active() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ShowStats replaces the summary cards
func (s *Screen) ShowStats(v render.StatsView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = &v
}

// ShowRecentActivity replaces the recent activity panel
func (s *Screen) ShowRecentActivity(v render.ActivityList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = &v
}

// ShowOverdueBills replaces the overdue panel
func (s *Screen) ShowOverdueBills(v render.OverdueList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overdue = &v
}

// ShowBillsTable replaces the bills table
func (s *Screen) ShowBillsTable(v render.BillTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = &v
}

// ShowCallLogs replaces the call log table
func (s *Screen) ShowCallLogs(v render.CallTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = &v
}

// ShowAnalytics replaces the analytics cards
func (s *Screen) ShowAnalytics(v render.AnalyticsView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics = &v
}

// ShowBillDetail replaces the bill detail page
func (s *Screen) ShowBillDetail(v render.BillDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billDetail = &v
}

// ShowCallDetail replaces the call detail page
func (s *Screen) ShowCallDetail(v render.CallDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callDetail = &v
}

// Notify queues a toast
func (s *Screen) Notify(kind port.ToastKind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, Toast{Kind: kind, Message: message, shownAt: s.now()})
}

// TakeToasts returns the toasts that have not expired and clears the queue.
// Each toast is displayed at most once.
func (s *Screen) TakeToasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.toastTTL)
	var live []Toast
	for _, t := range s.toasts {
		if t.shownAt.After(cutoff) {
			live = append(live, t)
		}
	}
	s.toasts = nil
	return live
}

// Snapshot is a consistent copy of the screen state. Nil fields have not
// been loaded yet.
type Snapshot struct {
	Active     View
	Stats      *render.StatsView
	Activity   *render.ActivityList
	Overdue    *render.OverdueList
	Bills      *render.BillTable
	Calls      *render.CallTable
	Analytics  *render.AnalyticsView
	BillDetail *render.BillDetail
	CallDetail *render.CallDetail
}

// Snapshot returns the current state. Views are replaced, never mutated, so
// sharing the pointers is safe.
func (s *Screen) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Active:     s.active,
		Stats:      s.stats,
		Activity:   s.activity,
		Overdue:    s.overdue,
		Bills:      s.bills,
		Calls:      s.calls,
		Analytics:  s.analytics,
		BillDetail: s.billDetail,
		CallDetail: s.callDetail,
	}
}

// DashboardActive reports whether the dashboard is the current view
func (s *Screen) DashboardActive() bool {
	return s.Active() == ViewDashboard
}

var (
	_ port.Surface   = (*Screen)(nil)
	_ port.Notifier  = (*Screen)(nil)
	_ port.Confirmer = FormConfirmer{}
)
