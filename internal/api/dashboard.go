package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) GetMetrics(ctx context.Context) (*Metrics, error) {
	var out Metrics
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrend returns monthly billed totals for the last n months. Months
// with no invoices may be absent; the dashboard package pads them.
func (c *Client) GetTrend(ctx context.Context, months int) ([]TrendPoint, error) {
	var out struct {
		Trend []TrendPoint `json:"trend"`
	}
	path := fmt.Sprintf("/api/dashboard/trend?months=%d", months)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Trend, nil
}

func (c *Client) GetTopItems(ctx context.Context, limit int) ([]TopItem, error) {
	var out struct {
		Items []TopItem `json:"items"`
	}
	path := fmt.Sprintf("/api/dashboard/top-items?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
