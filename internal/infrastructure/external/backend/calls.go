package backend

import (
	"context"
	"fmt"

	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
)

// ListCallLogs calls GET /api/calls with params as the query string
func (c *Client) ListCallLogs(ctx context.Context, params map[string]string) ([]entity.CallLog, error) {
	var logs []entity.CallLog
	if err := c.Request(ctx, withQuery("/api/calls", Params(params)), RequestOptions{}, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetCallLog calls GET /api/calls/{id}
func (c *Client) GetCallLog(ctx context.Context, callLogID int64) (*entity.CallLog, error) {
	var log entity.CallLog
	if err := c.Request(ctx, fmt.Sprintf("/api/calls/%d", callLogID), RequestOptions{}, &log); err != nil {
		return nil, err
	}
	return &log, nil
}
