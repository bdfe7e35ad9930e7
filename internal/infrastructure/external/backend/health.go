package backend

import (
	"context"

	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
)

// Health calls GET /health
func (c *Client) Health(ctx context.Context) (*entity.HealthStatus, error) {
	var status entity.HealthStatus
	if err := c.Request(ctx, "/health", RequestOptions{}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Ensure Client implements port.BackendAPI (compile-time check)
var _ port.BackendAPI = (*Client)(nil)
