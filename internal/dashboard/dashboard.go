// Package dashboard fetches the backend's aggregates and shapes them
// for display. The server owns the math; this side only pads gaps so
// charts get a contiguous month window.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

const monthLayout = "2006-01"

// Service is the slice of the backend the dashboard needs. *api.Client
// satisfies it.
type Service interface {
	GetMetrics(ctx context.Context) (*api.Metrics, error)
	GetTrend(ctx context.Context, months int) ([]api.TrendPoint, error)
	GetTopItems(ctx context.Context, limit int) ([]api.TopItem, error)
}

type Dashboard struct {
	svc Service
	now func() time.Time
}

func New(svc Service) *Dashboard {
	return &Dashboard{svc: svc, now: time.Now}
}

func (d *Dashboard) Metrics(ctx context.Context) (*api.Metrics, error) {
	return d.svc.GetMetrics(ctx)
}

func (d *Dashboard) TopItems(ctx context.Context, limit int) ([]api.TopItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return d.svc.GetTopItems(ctx, limit)
}

// Trend returns one point per month for the trailing window, oldest
// first. Months the server omitted come back zero-valued.
func (d *Dashboard) Trend(ctx context.Context, months int) ([]api.TrendPoint, error) {
	if months <= 0 || months > 36 {
		months = 6
	}
	points, err := d.svc.GetTrend(ctx, months)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byMonth[p.Month] = p.Total
	}

	now := d.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]api.TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0).Format(monthLayout)
		out = append(out, api.TrendPoint{Month: m, Total: byMonth[m]})
	}
	return out, nil
}
