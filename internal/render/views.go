// Package render maps entity snapshots to view models. Every string a
// view needs is formatted here so templates and exporters only print.
package render

import "github.com/garyjia/bill-collection-dashboard/internal/format"

// Placeholders shown instead of an empty list or table body
const (
	NoRecentActivity = "No recent activity"
	NoOverdueBills   = "No overdue bills"
	NoBillsFound     = "No bills found"
	NoCallLogsFound  = "No call logs found"
)

// Placeholders shown when a panel or table could not be loaded
const (
	FailedStats          = "Failed to load stats"
	FailedRecentActivity = "Failed to load recent activity"
	FailedOverdueBills   = "Failed to load overdue bills"
	FailedBills          = "Failed to load bills"
	FailedCallLogs       = "Failed to load call logs"
	FailedAnalytics      = "Failed to load analytics"
)

// BillColumns and CallColumns are the table headers; placeholder rows span them.
var (
	BillColumns = []string{"Bill Number", "Customer", "Phone", "Amount", "Due Date", "Status", "Actions"}
	CallColumns = []string{"Call ID", "Bill", "Phone", "Status", "Outcome", "Duration", "Date", "Actions"}
)

// StatsView is the summary card row. Unavailable replaces the cards when set.
type StatsView struct {
	Total          int
	Pending        int
	Paid           int
	Overdue        int
	CollectionRate string
	Unavailable    string
}

// ActivityItem is one recent call
type ActivityItem struct {
	CustomerPhone string
	Status        format.Badge
	CreatedAt     string
	Outcome       string
}

// ActivityList is the recent activity panel
type ActivityList struct {
	Items       []ActivityItem
	Placeholder string
}

// OverdueItem is one overdue bill in the dashboard panel
type OverdueItem struct {
	CustomerName string
	BillNumber   string
	Amount       string
	DueDate      string
}

// OverdueList is the overdue panel
type OverdueList struct {
	Items       []OverdueItem
	Placeholder string
}

// BillRow is one row of the bills table
type BillRow struct {
	ID            int64
	BillNumber    string
	CustomerName  string
	CustomerPhone string
	Amount        string
	DueDate       string
	Status        format.Badge
	CanCall       bool
}

// BillTable is the bills view. Placeholder is set only when Rows is empty.
type BillTable struct {
	Filter      string
	Columns     []string
	Rows        []BillRow
	Placeholder string
}

// CallRow is one row of the call log table
type CallRow struct {
	ID            int64
	CallID        string
	BillRef       string
	CustomerPhone string
	Status        format.Badge
	Outcome       *format.Badge
	Duration      string
	CreatedAt     string
}

// OutcomeLabel returns the outcome text or N/A
func (r CallRow) OutcomeLabel() string {
	if r.Outcome == nil {
		return format.NotAvailable
	}
	return r.Outcome.Label
}

// CallTable is the call logs view. Placeholder is set only when Rows is empty.
type CallTable struct {
	Filter      string
	Columns     []string
	Rows        []CallRow
	Placeholder string
}

// AnalyticsView is the analytics card row. Unavailable replaces the cards when set.
type AnalyticsView struct {
	CallSuccessRate   string
	AvgCallDuration   string
	PaymentConversion string
	TotalCollection   string
	Unavailable       string
}

// PaymentView is the payment block of the bill detail
type PaymentView struct {
	PaymentID     string
	Amount        string
	Status        format.Badge
	Method        string
	TransactionID string
	PaidAt        string
}

// BillDetail is the single bill view
type BillDetail struct {
	Row            BillRow
	CustomerEmail  string
	ConsumerNumber string
	BillingPeriod  string
	CallAttempts   int
	LastCallDate   string
	PaymentLink    string
	Notes          string
	Payment        *PaymentView
}

// CallDetail is the single call view
type CallDetail struct {
	Row          CallRow
	StartedAt    string
	EndedAt      string
	Transcript   string
	RecordingURL string
	SMSSent      bool
	ErrorMessage string
}
