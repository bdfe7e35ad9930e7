package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
)

// GetPayment calls GET /api/payments/{payment_id}
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*entity.Payment, error) {
	var payment entity.Payment
	endpoint := "/api/payments/" + url.PathEscape(paymentID)
	if err := c.Request(ctx, endpoint, RequestOptions{}, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentByBill calls GET /api/payments/bill/{bill_id}
func (c *Client) GetPaymentByBill(ctx context.Context, billID int64) (*entity.Payment, error) {
	var payment entity.Payment
	if err := c.Request(ctx, fmt.Sprintf("/api/payments/bill/%d", billID), RequestOptions{}, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
