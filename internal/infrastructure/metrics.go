package infrastructure

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "livingwage"

// Lookup outcomes recorded by Metrics.LookupsTotal
const (
	LookupFound     = "found"
	LookupNotFound  = "not_found"
	LookupAmbiguous = "ambiguous"
)

// Metrics holds the counters collected during a run. A CLI run is short lived,
// so the registry is dumped to a node_exporter textfile instead of being scraped.
type Metrics struct {
	Registry *prometheus.Registry

	RowsLoaded       *prometheus.CounterVec
	CoercionFailures *prometheus.CounterVec
	LookupsTotal     *prometheus.CounterVec
	ChartsRendered   *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_loaded_total",
			Help:      "Rows read from tabular input files.",
		}, []string{"dataset"}),
		CoercionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "coercion_failures_total",
			Help:      "Fields that could not be converted to numbers.",
		}, []string{"field"}),
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lookups_total",
			Help:      "State lookups by outcome.",
		}, []string{"outcome"}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "charts_rendered_total",
			Help:      "Charts written, by output format.",
		}, []string{"format"}),
	}

	m.Registry.MustRegister(m.RowsLoaded, m.CoercionFailures, m.LookupsTotal, m.ChartsRendered)
	return m
}

// WriteTextfile writes all collected metrics in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
