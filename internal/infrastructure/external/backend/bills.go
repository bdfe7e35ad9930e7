package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
)

// ListBills calls GET /api/bills with params as the query string
func (c *Client) ListBills(ctx context.Context, params map[string]string) (*entity.BillList, error) {
	var list entity.BillList
	if err := c.Request(ctx, withQuery("/api/bills", Params(params)), RequestOptions{}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetBill calls GET /api/bills/{id}
func (c *Client) GetBill(ctx context.Context, billID int64) (*entity.Bill, error) {
	var bill entity.Bill
	if err := c.Request(ctx, fmt.Sprintf("/api/bills/%d", billID), RequestOptions{}, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// CreateBill calls POST /api/bills/
func (c *Client) CreateBill(ctx context.Context, input entity.BillInput) (*entity.Bill, error) {
	var bill entity.Bill
	opts := RequestOptions{Method: http.MethodPost, Body: input}
	if err := c.Request(ctx, "/api/bills/", opts, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// UpdateBill calls PUT /api/bills/{id}
func (c *Client) UpdateBill(ctx context.Context, billID int64, input entity.BillInput) (*entity.Bill, error) {
	var bill entity.Bill
	opts := RequestOptions{Method: http.MethodPut, Body: input}
	if err := c.Request(ctx, fmt.Sprintf("/api/bills/%d", billID), opts, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// DeleteBill calls DELETE /api/bills/{id}
func (c *Client) DeleteBill(ctx context.Context, billID int64) (*entity.DeleteResult, error) {
	var result entity.DeleteResult
	opts := RequestOptions{Method: http.MethodDelete}
	if err := c.Request(ctx, fmt.Sprintf("/api/bills/%d", billID), opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InitiateCall calls POST /api/bills/{id}/call. The backend places the call
// and records a call log.
func (c *Client) InitiateCall(ctx context.Context, billID int64) (*entity.CallInitiation, error) {
	var result entity.CallInitiation
	opts := RequestOptions{Method: http.MethodPost}
	if err := c.Request(ctx, fmt.Sprintf("/api/bills/%d/call", billID), opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PendingBills calls GET /api/bills/pending/list
func (c *Client) PendingBills(ctx context.Context) (*entity.BillList, error) {
	var list entity.BillList
	if err := c.Request(ctx, "/api/bills/pending/list", RequestOptions{}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// OverdueBills calls GET /api/bills/overdue/list
func (c *Client) OverdueBills(ctx context.Context) (*entity.BillList, error) {
	var list entity.BillList
	if err := c.Request(ctx, "/api/bills/overdue/list", RequestOptions{}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
