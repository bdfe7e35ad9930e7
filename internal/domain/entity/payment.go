package entity

// Payment is a payment record linked to a bill
type Payment struct {
	ID            int64      `json:"id"`
	BillID        int64      `json:"bill_id"`
	PaymentID     string     `json:"payment_id"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	Amount        float64    `json:"amount"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	Status        string     `json:"status"`
	PaymentDate   *Timestamp `json:"payment_date,omitempty"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	CreatedAt     *Timestamp `json:"created_at,omitempty"`
}
