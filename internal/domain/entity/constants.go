package entity

// Bill status values known to the backend. The backend owns transitions;
// unknown values are passed through untouched.
const (
	BillStatusPending   = "pending"
	BillStatusCalled    = "called"
	BillStatusPaid      = "paid"
	BillStatusOverdue   = "overdue"
	BillStatusCancelled = "cancelled"
)

// Call log status values
const (
	CallStatusInitiated  = "initiated"
	CallStatusRinging    = "ringing"
	CallStatusInProgress = "in_progress"
	CallStatusCompleted  = "completed"
	CallStatusFailed     = "failed"
	CallStatusNoAnswer   = "no_answer"
	CallStatusBusy       = "busy"
)

// Call outcome values
const (
	CallOutcomePaymentConfirmed  = "payment_confirmed"
	CallOutcomePaymentPromised   = "payment_promised"
	CallOutcomeCustomerDisputed  = "customer_disputed"
	CallOutcomeNoResponse        = "no_response"
	CallOutcomeWrongNumber       = "wrong_number"
	CallOutcomeCallbackRequested = "callback_requested"
)

// Payment status values
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)
