package listing

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	paging "github.com/nrfta/videohub"
)

// Metrics records page fetches per entity and outcome.
type Metrics struct {
	// PagesTotal counts page requests by entity and outcome.
	PagesTotal *prometheus.CounterVec

	// PageDuration measures page requests in seconds.
	PageDuration *prometheus.HistogramVec

	// PageItems observes the number of items returned per page.
	PageItems *prometheus.HistogramVec
}

// NewMetrics registers the listing metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "videohub",
				Name:      "list_pages_total",
				Help:      "Total number of page requests",
			},
			[]string{"entity", "outcome"},
		),
		PageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "videohub",
				Name:      "list_page_duration_seconds",
				Help:      "Duration of page requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"entity"},
		),
		PageItems: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "videohub",
				Name:      "list_page_items",
				Help:      "Distribution of items returned per page",
				Buckets:   []float64{0, 1, 5, 10, 25, 50},
			},
			[]string{"entity"},
		),
	}
}

func (m *Metrics) observe(entity EntityType, start time.Time, items int, err error) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(string(entity), Outcome(err)).Inc()
	m.PageDuration.WithLabelValues(string(entity)).Observe(time.Since(start).Seconds())
	if err == nil {
		m.PageItems.WithLabelValues(string(entity)).Observe(float64(items))
	}
}

// Outcome names the result of a page request for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, paging.ErrMalformedCursor):
		return "malformed_cursor"
	case errors.Is(err, paging.ErrInvalidLimit):
		return "invalid_limit"
	case errors.Is(err, paging.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, paging.ErrNotFound):
		return "not_found"
	case errors.Is(err, paging.ErrDataStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
