package dashboard

import (
	"math"

	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/internal/format"
)

// ComputeStats counts bills by status in one pass
func ComputeStats(bills []entity.Bill) entity.DashboardStats {
	stats := entity.DashboardStats{Total: len(bills)}
	for i := range bills {
		switch bills[i].Status {
		case entity.BillStatusPending:
			stats.Pending++
		case entity.BillStatusPaid:
			stats.Paid++
		case entity.BillStatusOverdue:
			stats.Overdue++
		}
	}
	stats.CollectionRate = format.CollectionRate(stats.Paid, stats.Total)
	return stats
}

// ComputeAnalytics derives the call and collection metrics from one bill
// snapshot and one call log snapshot.
func ComputeAnalytics(bills []entity.Bill, calls []entity.CallLog) entity.Analytics {
	a := entity.Analytics{TotalCalls: len(calls)}

	totalDuration := 0
	for i := range calls {
		if calls[i].Status == entity.CallStatusCompleted {
			a.SuccessfulCalls++
		}
		totalDuration += calls[i].DurationSeconds()
	}
	a.CallSuccessRate = format.Ratio(a.SuccessfulCalls, a.TotalCalls)
	if a.TotalCalls > 0 {
		a.AvgCallDuration = int(math.Round(float64(totalDuration) / float64(a.TotalCalls)))
	}

	for i := range bills {
		if bills[i].CallAttempts > 0 {
			a.CalledBills++
		}
		if bills[i].IsPaid() {
			a.PaidBills++
			a.TotalCollection += bills[i].BillAmount
		}
	}
	a.PaymentConversion = format.Ratio(a.PaidBills, a.CalledBills)

	return a
}
