package port

import (
	"context"
	"errors"

	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
)

// BackendAPI is the remote bill-collection API. List calls pass params
// through as the query string.
type BackendAPI interface {
	ListBills(ctx context.Context, params map[string]string) (*entity.BillList, error)
	GetBill(ctx context.Context, billID int64) (*entity.Bill, error)
	CreateBill(ctx context.Context, input entity.BillInput) (*entity.Bill, error)
	UpdateBill(ctx context.Context, billID int64, input entity.BillInput) (*entity.Bill, error)
	DeleteBill(ctx context.Context, billID int64) (*entity.DeleteResult, error)
	InitiateCall(ctx context.Context, billID int64) (*entity.CallInitiation, error)
	PendingBills(ctx context.Context) (*entity.BillList, error)
	OverdueBills(ctx context.Context) (*entity.BillList, error)

	ListCallLogs(ctx context.Context, params map[string]string) ([]entity.CallLog, error)
	GetCallLog(ctx context.Context, callLogID int64) (*entity.CallLog, error)

	GetPayment(ctx context.Context, paymentID string) (*entity.Payment, error)
	GetPaymentByBill(ctx context.Context, billID int64) (*entity.Payment, error)

	Health(ctx context.Context) (*entity.HealthStatus, error)
}

// NotFoundError is implemented by errors that can tell a missing resource
// apart from other failures.
type NotFoundError interface {
	error
	NotFound() bool
}

// IsNotFound reports whether err, or an error it wraps, is a missing resource
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf) && nf.NotFound()
}
