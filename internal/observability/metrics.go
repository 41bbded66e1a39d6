package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// bulletin pipeline.
type Metrics struct {
	RunsTotal   *prometheus.CounterVec // labels: outcome={success,error}
	StationRuns *prometheus.CounterVec // labels: station, outcome={success,error}
	RunDuration prometheus.Histogram

	SamplesParsed    *prometheus.CounterVec // labels: instrument={metbk1,metbk2,wavss}
	RowsEncoded      prometheus.Counter
	BulletinsWritten prometheus.Counter
	Uploads          *prometheus.CounterVec // labels: protocol, outcome={success,error}

	PipelineRunning prometheus.Gauge
	LastRunTime     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndbc",
			Name:      "runs_total",
			Help:      "Completed bulletin runs by outcome.",
		}, []string{"outcome"}),
		StationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndbc",
			Name:      "station_runs_total",
			Help:      "Per-station bulletin builds by outcome.",
		}, []string{"station", "outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ndbc",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete bulletin run across all stations.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		SamplesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndbc",
			Name:      "samples_parsed_total",
			Help:      "Decoded instrument samples by instrument.",
		}, []string{"instrument"}),
		RowsEncoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ndbc",
			Name:      "rows_encoded_total",
			Help:      "Merged observation rows written into bulletins.",
		}),
		BulletinsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ndbc",
			Name:      "bulletins_written_total",
			Help:      "Bulletin files written to the output directory.",
		}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndbc",
			Name:      "uploads_total",
			Help:      "Bulletin uploads by protocol and outcome.",
		}, []string{"protocol", "outcome"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ndbc",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ndbc",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.StationRuns,
		m.RunDuration,
		m.SamplesParsed,
		m.RowsEncoded,
		m.BulletinsWritten,
		m.Uploads,
		m.PipelineRunning,
		m.LastRunTime,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RunsTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ndbc", Name: "runs_total"}, []string{"outcome"}),
		StationRuns:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ndbc", Name: "station_runs_total"}, []string{"station", "outcome"}),
		RunDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ndbc", Name: "run_duration_seconds"}),
		SamplesParsed:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ndbc", Name: "samples_parsed_total"}, []string{"instrument"}),
		RowsEncoded:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ndbc", Name: "rows_encoded_total"}),
		BulletinsWritten: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ndbc", Name: "bulletins_written_total"}),
		Uploads:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ndbc", Name: "uploads_total"}, []string{"protocol", "outcome"}),
		PipelineRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ndbc", Name: "pipeline_running"}),
		LastRunTime:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ndbc", Name: "last_run_timestamp_seconds"}),
	}
}
