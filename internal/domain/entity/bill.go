package entity

// Bill is a billing record as returned by the backend
type Bill struct {
	ID               int64      `json:"id"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	CustomerEmail    *string    `json:"customer_email,omitempty"`
	ConsumerNumber   string     `json:"consumer_number"`
	BillNumber       string     `json:"bill_number"`
	BillAmount       float64    `json:"bill_amount"`
	DueDate          Timestamp  `json:"due_date"`
	BillingPeriod    *string    `json:"billing_period,omitempty"`
	Status           string     `json:"status"`
	CallAttempts     int        `json:"call_attempts"`
	PaymentLink      *string    `json:"payment_link,omitempty"`
	PaymentID        *string    `json:"payment_id,omitempty"`
	PaymentDate      *Timestamp `json:"payment_date,omitempty"`
	LastCallDate     *Timestamp `json:"last_call_date,omitempty"`
	NextReminderDate *Timestamp `json:"next_reminder_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	CreatedAt        *Timestamp `json:"created_at,omitempty"`
	UpdatedAt        *Timestamp `json:"updated_at,omitempty"`
}

// IsPaid reports whether the backend considers the bill settled
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// BillList is the envelope of every bill listing endpoint
type BillList struct {
	Total int    `json:"total"`
	Bills []Bill `json:"bills"`
}

// BillInput is the create/update payload. Optional strings are sent as
// null when nil.
type BillInput struct {
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	CustomerEmail  *string `json:"customer_email"`
	ConsumerNumber string  `json:"consumer_number"`
	BillNumber     string  `json:"bill_number"`
	BillAmount     float64 `json:"bill_amount"`
	DueDate        string  `json:"due_date"`
	BillingPeriod  *string `json:"billing_period"`
}

// CallInitiation is the backend response to a call request
type CallInitiation struct {
	Message string `json:"message"`
	CallID  string `json:"call_id"`
	BillID  int64  `json:"bill_id"`
}

// DeleteResult is the backend response to a delete request
type DeleteResult struct {
	Message string `json:"message"`
}

// HealthStatus is the backend /health response
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
