package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/transport"
)

// ChartPeriod selects the granularity of the dashboard revenue chart.
type ChartPeriod string

const (
	ChartDaily   ChartPeriod = "daily"
	ChartWeekly  ChartPeriod = "weekly"
	ChartMonthly ChartPeriod = "monthly"
)

// Dashboard is the typed client for the /Dashboard endpoints. These are the
// only endpoints served without the response envelope.
type Dashboard struct {
	http *transport.Client
}

func NewDashboard(c *transport.Client) *Dashboard {
	return &Dashboard{http: c}
}

func (d *Dashboard) Get(ctx context.Context) (*domain.Dashboard, error) {
	var dashboard domain.Dashboard
	if err := d.http.GetRaw(ctx, "/Dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Chart returns periodCount datapoints at the given granularity. Defaults:
// monthly, 12 points.
func (d *Dashboard) Chart(ctx context.Context, period ChartPeriod, periodCount int) ([]domain.ChartPoint, error) {
	if period == "" {
		period = ChartMonthly
	}
	if periodCount <= 0 {
		periodCount = 12
	}
	q := url.Values{}
	q.Set("period", string(period))
	q.Set("periodCount", strconv.Itoa(periodCount))

	var points []domain.ChartPoint
	if err := d.http.GetRaw(ctx, "/Dashboard/chart", q, &points); err != nil {
		return nil, err
	}
	return points, nil
}
