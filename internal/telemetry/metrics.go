// Package telemetry holds the Prometheus collectors shared by the dashboard.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gemdash"

// Surfaces that trigger a render pass.
const (
	SurfacePage  = "page"
	SurfaceChart = "chart"
	SurfaceAPI   = "api"
)

var (
	// renderTotal counts render passes.
	// Labels: surface (page, chart, api)
	renderTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "render_total",
		Help:      "Total dashboard render passes",
	}, []string{"surface"})

	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Time to filter, summarise and build charts for one render pass",
		Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"surface"})

	filteredRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "filtered_rows",
		Help:      "Row count of the most recent filtered view",
	})

	// datasetLoadTotal counts dataset loads.
	// Labels: result (success, error)
	datasetLoadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_load_total",
		Help:      "Dataset load attempts by result",
	}, []string{"result"})

	chartRenderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chart_render_errors_total",
		Help:      "Chart rasterisation failures by chart",
	}, []string{"chart"})
)

// ObserveRender records one render pass and the size of its view.
func ObserveRender(surface string, rows int, elapsed time.Duration) {
	renderTotal.WithLabelValues(surface).Inc()
	renderDuration.WithLabelValues(surface).Observe(elapsed.Seconds())
	filteredRows.Set(float64(rows))
}

// ObserveDatasetLoad records the outcome of a dataset load.
func ObserveDatasetLoad(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	datasetLoadTotal.WithLabelValues(result).Inc()
}

// ObserveChartError records a failed chart rasterisation.
func ObserveChartError(chart string) {
	chartRenderErrors.WithLabelValues(chart).Inc()
}
