package reporting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	reportsBuilt  *prometheus.CounterVec
	chartFailures *prometheus.CounterVec
}

// NewMetrics registers the report counters with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		reportsBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "malaria_reports_built_total",
				Help: "Total number of surveillance reports compiled",
			},
			[]string{"region"},
		),
		chartFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "malaria_chart_render_failures_total",
				Help: "Total number of charts replaced by a placeholder",
			},
			[]string{"chart"},
		),
	}
}

func (m *Metrics) observe(region string, failedCharts []string) {
	if m == nil {
		return
	}
	m.reportsBuilt.WithLabelValues(region).Inc()
	for _, title := range failedCharts {
		m.chartFailures.WithLabelValues(title).Inc()
	}
}
