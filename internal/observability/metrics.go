// Package observability provides Prometheus metrics for the dashboard.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Loader metrics
	TableLoads        *prometheus.CounterVec
	TableLoadDuration prometheus.Histogram
	TableRows         *prometheus.GaugeVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Presentation metrics
	PageViews *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "bikeshare_dashboard"
	}
	factory := promauto.With(reg)

	return &Metrics{
		TableLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "table_loads_total",
			Help:      "Total number of data file loads by result",
		}, []string{"result"}),
		TableLoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "table_load_duration_seconds",
			Help:      "Time spent reading and parsing the data file",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		TableRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "table_rows",
			Help:      "Number of rows in the last successful load of each path",
		}, []string{"path"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Table cache lookups by result (hit or miss)",
		}, []string{"result"}),

		PageViews: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "page_views_total",
			Help:      "Dashboard page renders by page",
		}, []string{"page"}),
	}
}

// ObserveLoad records the outcome of one table load.
func (m *Metrics) ObserveLoad(path string, rows int, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.TableLoadDuration.Observe(took.Seconds())
	if err != nil {
		m.TableLoads.WithLabelValues("error").Inc()
		return
	}
	m.TableLoads.WithLabelValues("ok").Inc()
	m.TableRows.WithLabelValues(path).Set(float64(rows))
}

// ObserveCacheLookup records a cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

// ObservePageView records a rendered dashboard page.
func (m *Metrics) ObservePageView(page string) {
	if m == nil {
		return
	}
	m.PageViews.WithLabelValues(page).Inc()
}
