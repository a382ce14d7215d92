// Package observability provides Prometheus metrics for monitoring.
//
// The CLI runs to completion rather than serving, so metrics live on a
// private registry and are written out in the textfile exposition format
// for node_exporter's textfile collector.
package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"perp-hedge-lab/internal/domain"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "perp_hedge_lab"

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Engine metrics
	SeriesGenerated  *prometheus.CounterVec
	SamplePoints     prometheus.Histogram
	SentinelCurves   prometheus.Counter
	ValidationErrors *prometheus.CounterVec

	// Chart metrics
	ChartBuildDuration prometheus.Histogram
	ChartCurves        prometheus.Gauge

	// Output metrics
	ReportsGenerated prometheus.Counter
	PayloadsDecoded  *prometheus.CounterVec

	// Health metrics
	LastRunTimestamp prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		// Engine metrics
		SeriesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "series_generated_total",
			Help:      "Total number of P&L series generated by source",
		}, []string{"source"}),
		SamplePoints: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "series_sample_points",
			Help:      "Number of sampled prices per generated series",
			Buckets:   []float64{10, 25, 50, 100, 200, 500, 1000, 5000},
		}),
		SentinelCurves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "sentinel_curves_total",
			Help:      "Total number of series evaluated with a non-positive entry odd",
		}),
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "validation_errors_total",
			Help:      "Total number of rejected parameter sets by field",
		}, []string{"field"}),

		// Chart metrics
		ChartBuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "build_duration_seconds",
			Help:      "Chart dataset build duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
		ChartCurves: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "curves",
			Help:      "Number of curves in the last chart dataset",
		}),

		// Output metrics
		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),
		PayloadsDecoded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweeps",
			Name:      "payloads_decoded_total",
			Help:      "Total number of sweeps API payloads decoded by kind and status",
		}, []string{"kind", "status"}),

		// Health metrics
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_run_timestamp",
			Help:      "Unix timestamp of the last completed command",
		}),
	}
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

// RecordSeries records one generated series.
func (m *Metrics) RecordSeries(source string, series domain.PnLSeries) {
	if m == nil {
		return
	}
	m.SeriesGenerated.WithLabelValues(source).Inc()
	m.SamplePoints.Observe(float64(len(series.Points)))
	if series.EntryOdd <= 0 {
		m.SentinelCurves.Inc()
	}
}

// RecordValidationError records a rejected parameter set.
func (m *Metrics) RecordValidationError(err error) {
	if m == nil || err == nil {
		return
	}
	m.ValidationErrors.WithLabelValues(ValidationField(err)).Inc()
}

// RecordChartBuild records a chart dataset build.
func (m *Metrics) RecordChartBuild(curves int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ChartCurves.Set(float64(curves))
	m.ChartBuildDuration.Observe(elapsed.Seconds())
}

// RecordReport records a generated report.
func (m *Metrics) RecordReport() {
	if m == nil {
		return
	}
	m.ReportsGenerated.Inc()
}

// RecordPayload records a decoded sweeps payload.
func (m *Metrics) RecordPayload(kind string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.PayloadsDecoded.WithLabelValues(kind, status).Inc()
}

// MarkRun sets the last run timestamp.
func (m *Metrics) MarkRun(now time.Time) {
	if m == nil {
		return
	}
	m.LastRunTimestamp.Set(float64(now.Unix()))
}

var validationFields = []struct {
	err   error
	field string
}{
	{domain.ErrCapitalNotPositive, "capital_polymarket"},
	{domain.ErrSizeNotPositive, "position_size_perp"},
	{domain.ErrEntryNotPositive, "perp_entry_price"},
	{domain.ErrConditionInvalid, "condition_price"},
	{domain.ErrEntryOddRange, "entry_odd"},
	{domain.ErrResolveOddRange, "resolve_odd"},
	{domain.ErrStopLossBelowEntry, "stop_loss_price"},
	{domain.ErrTakeProfitAbove, "take_profit_price"},
	{domain.ErrTakeProfitNegative, "take_profit_price"},
	{domain.ErrDomainMin, "domain"},
	{domain.ErrDomainRange, "domain"},
	{domain.ErrDomainStep, "domain"},
	{domain.ErrDomainDense, "domain"},
}

// ValidationField maps a validation error to the offending field name.
func ValidationField(err error) string {
	for _, v := range validationFields {
		if errors.Is(err, v.err) {
			return v.field
		}
	}
	return "other"
}
