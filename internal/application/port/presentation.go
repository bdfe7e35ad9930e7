package port

import (
	"context"

	"github.com/garyjia/bill-collection-dashboard/internal/render"
)

// Surface receives rendered view models. Each method replaces the
// previous content of its target.
type Surface interface {
	ShowStats(view render.StatsView)
	ShowRecentActivity(view render.ActivityList)
	ShowOverdueBills(view render.OverdueList)
	ShowBillsTable(view render.BillTable)
	ShowCallLogs(view render.CallTable)
	ShowAnalytics(view render.AnalyticsView)
	ShowBillDetail(view render.BillDetail)
	ShowCallDetail(view render.CallDetail)
}

// ToastKind classifies a notification
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"
)

// Notifier shows transient, non-blocking messages
type Notifier interface {
	Notify(kind ToastKind, message string)
}

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// UserFacingError is implemented by errors whose text may be shown as is
type UserFacingError interface {
	error
	UserMessage() string
}
