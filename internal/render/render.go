package render

import (
	"fmt"
	"time"

	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/internal/format"
)

// Renderer builds view models. Dates are shown in its location.
type Renderer struct {
	loc *time.Location
}

// NewRenderer creates a Renderer; a nil location means UTC
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{loc: loc}
}

// Location returns the display location
func (r *Renderer) Location() *time.Location {
	return r.loc
}

func (r *Renderer) date(ts entity.Timestamp) string {
	if ts.IsZero() {
		return format.NotAvailable
	}
	return format.Date(ts.In(r.loc))
}

func (r *Renderer) dateTime(ts entity.Timestamp) string {
	if ts.IsZero() {
		return format.NotAvailable
	}
	return format.DateTime(ts.In(r.loc))
}

func (r *Renderer) optDateTime(ts *entity.Timestamp) string {
	if ts == nil {
		return ""
	}
	return r.dateTime(*ts)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Stats renders the summary cards
func (r *Renderer) Stats(stats entity.DashboardStats) StatsView {
	return StatsView{
		Total:          stats.Total,
		Pending:        stats.Pending,
		Paid:           stats.Paid,
		Overdue:        stats.Overdue,
		CollectionRate: format.Percent(stats.CollectionRate),
	}
}

// RecentActivity renders the recent call panel
func (r *Renderer) RecentActivity(logs []entity.CallLog) ActivityList {
	if len(logs) == 0 {
		return ActivityList{Placeholder: NoRecentActivity}
	}
	items := make([]ActivityItem, 0, len(logs))
	for _, log := range logs {
		items = append(items, ActivityItem{
			CustomerPhone: log.CustomerPhone,
			Status:        format.StatusBadge(log.Status),
			CreatedAt:     r.dateTime(log.CreatedAt),
			Outcome:       deref(log.Outcome),
		})
	}
	return ActivityList{Items: items}
}

// OverdueBills renders at most limit overdue bills
func (r *Renderer) OverdueBills(bills []entity.Bill, limit int) OverdueList {
	if len(bills) == 0 {
		return OverdueList{Placeholder: NoOverdueBills}
	}
	if limit > 0 && len(bills) > limit {
		bills = bills[:limit]
	}
	items := make([]OverdueItem, 0, len(bills))
	for _, bill := range bills {
		items = append(items, OverdueItem{
			CustomerName: bill.CustomerName,
			BillNumber:   bill.BillNumber,
			Amount:       format.Currency(bill.BillAmount),
			DueDate:      r.date(bill.DueDate),
		})
	}
	return OverdueList{Items: items}
}

// BillRow renders one bill. Paid bills cannot be called.
func (r *Renderer) BillRow(bill entity.Bill) BillRow {
	return BillRow{
		ID:            bill.ID,
		BillNumber:    bill.BillNumber,
		CustomerName:  bill.CustomerName,
		CustomerPhone: bill.CustomerPhone,
		Amount:        format.Currency(bill.BillAmount),
		DueDate:       r.date(bill.DueDate),
		Status:        format.StatusBadge(bill.Status),
		CanCall:       !bill.IsPaid(),
	}
}

// BillsTable renders the bills view for the given filter
func (r *Renderer) BillsTable(filter string, bills []entity.Bill) BillTable {
	table := BillTable{Filter: filter, Columns: BillColumns}
	if len(bills) == 0 {
		table.Placeholder = NoBillsFound
		return table
	}
	table.Rows = make([]BillRow, 0, len(bills))
	for _, bill := range bills {
		table.Rows = append(table.Rows, r.BillRow(bill))
	}
	return table
}

// FailedBillsTable is the bills table shown when filter could not be loaded
func FailedBillsTable(filter string) BillTable {
	return BillTable{Filter: filter, Columns: BillColumns, Placeholder: FailedBills}
}

// CallRow renders one call log
func (r *Renderer) CallRow(log entity.CallLog) CallRow {
	row := CallRow{
		ID:            log.ID,
		CallID:        format.NotAvailable,
		BillRef:       fmt.Sprintf("Bill #%d", log.BillID),
		CustomerPhone: log.CustomerPhone,
		Status:        format.StatusBadge(log.Status),
		Duration:      format.Duration(log.DurationSeconds()),
		CreatedAt:     r.dateTime(log.CreatedAt),
	}
	if log.VapiCallID != nil && *log.VapiCallID != "" {
		row.CallID = *log.VapiCallID
	}
	if log.Outcome != nil && *log.Outcome != "" {
		badge := format.StatusBadge(*log.Outcome)
		row.Outcome = &badge
	}
	return row
}

// CallLogsTable renders the call logs view for the given filter
func (r *Renderer) CallLogsTable(filter string, logs []entity.CallLog) CallTable {
	table := CallTable{Filter: filter, Columns: CallColumns}
	if len(logs) == 0 {
		table.Placeholder = NoCallLogsFound
		return table
	}
	table.Rows = make([]CallRow, 0, len(logs))
	for _, log := range logs {
		table.Rows = append(table.Rows, r.CallRow(log))
	}
	return table
}

// FailedCallLogsTable is the call log table shown when filter could not be loaded
func FailedCallLogsTable(filter string) CallTable {
	return CallTable{Filter: filter, Columns: CallColumns, Placeholder: FailedCallLogs}
}

// Analytics renders the analytics cards
func (r *Renderer) Analytics(a entity.Analytics) AnalyticsView {
	return AnalyticsView{
		CallSuccessRate:   format.Percent(a.CallSuccessRate),
		AvgCallDuration:   format.Duration(a.AvgCallDuration),
		PaymentConversion: format.Percent(a.PaymentConversion),
		TotalCollection:   format.Currency(a.TotalCollection),
	}
}

// BillDetail renders a bill with its payment, which may be nil
func (r *Renderer) BillDetail(bill entity.Bill, payment *entity.Payment) BillDetail {
	detail := BillDetail{
		Row:            r.BillRow(bill),
		CustomerEmail:  deref(bill.CustomerEmail),
		ConsumerNumber: bill.ConsumerNumber,
		BillingPeriod:  deref(bill.BillingPeriod),
		CallAttempts:   bill.CallAttempts,
		LastCallDate:   r.optDateTime(bill.LastCallDate),
		PaymentLink:    deref(bill.PaymentLink),
		Notes:          deref(bill.Notes),
	}
	if payment != nil {
		detail.Payment = &PaymentView{
			PaymentID:     payment.PaymentID,
			Amount:        format.Currency(payment.Amount),
			Status:        format.StatusBadge(payment.Status),
			Method:        deref(payment.PaymentMethod),
			TransactionID: deref(payment.TransactionID),
			PaidAt:        r.optDateTime(payment.PaymentDate),
		}
	}
	return detail
}

// CallDetail renders a single call log
func (r *Renderer) CallDetail(log entity.CallLog) CallDetail {
	return CallDetail{
		Row:          r.CallRow(log),
		StartedAt:    r.optDateTime(log.StartedAt),
		EndedAt:      r.optDateTime(log.EndedAt),
		Transcript:   deref(log.Transcript),
		RecordingURL: deref(log.RecordingURL),
		SMSSent:      log.SMSSent > 0,
		ErrorMessage: deref(log.ErrorMessage),
	}
}
