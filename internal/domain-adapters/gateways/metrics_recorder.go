package gateways

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// prometheusRecorder counts conversion outcomes and writes them in the
// node_exporter textfile format when the run ends
type prometheusRecorder struct {
	registry   *prometheus.Registry
	textfile   string
	members    *prometheus.CounterVec
	emitted    prometheus.Counter
	suppressed prometheus.Counter
}

// NewPrometheusRecorder creates a recorder; Flush is a no-op when textfile is empty
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewPrometheusRecorder(textfile string) *prometheusRecorder {
	registry := prometheus.NewRegistry()

	r := &prometheusRecorder{
		registry: registry,
		textfile: textfile,
		members: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsasxlsx_members_total",
				Help: "Archive members processed, by outcome",
			},
			[]string{"outcome"},
		),
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rsasxlsx_rows_emitted_total",
			Help: "Risk rows written to spreadsheets",
		}),
		suppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rsasxlsx_rows_suppressed_total",
			Help: "Scanned findings dropped as low risk",
		}),
	}

	registry.MustRegister(r.members, r.emitted, r.suppressed)
	return r
}

// RecordMember counts one processed member
func (r *prometheusRecorder) RecordMember(outcome string) {
	r.members.WithLabelValues(outcome).Inc()
}

// RecordRows counts emitted and suppressed rows of one document
func (r *prometheusRecorder) RecordRows(emitted, suppressed int) {
	r.emitted.Add(float64(emitted))
	r.suppressed.Add(float64(suppressed))
}

// Flush writes all counters to the textfile
func (r *prometheusRecorder) Flush() error {
	if r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", r.textfile, err)
	}
	return nil
}
