package entity

// DashboardStats is derived from one bill snapshot and never cached
type DashboardStats struct {
	Total          int
	Pending        int
	Paid           int
	Overdue        int
	CollectionRate float64
}

// Analytics holds the derived call and collection metrics
type Analytics struct {
	TotalCalls        int
	SuccessfulCalls   int
	CallSuccessRate   float64
	AvgCallDuration   int // seconds
	CalledBills       int
	PaidBills         int
	PaymentConversion float64
	TotalCollection   float64
}
