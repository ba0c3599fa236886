// Package metrics counts clone, reconcile and submit activity. Metrics live
// on a private registry and can be dumped in text exposition format for a
// node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeCreated  = "created"
	OutcomeExisting = "read_existing"
	OutcomeFailed   = "failed"
)

// Metrics provides observability for clone runs.
type Metrics struct {
	registry *prometheus.Registry

	ClonesTotal      *prometheus.CounterVec
	CloneDuration    prometheus.Histogram
	StoreWritesTotal prometheus.Counter
	NamelistWrites   prometheus.Counter
	SubmissionsTotal *prometheus.CounterVec
	LatticePoints    prometheus.Gauge
	CommandFailures  prometheus.Counter
}

// New creates a Metrics instance with every metric registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ClonesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "latticegen_clones_total",
			Help: "Lattice points processed by outcome",
		}, []string{"outcome"}),
		CloneDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "latticegen_clone_duration_seconds",
			Help:    "Duration of provisioning and reconciling one case",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		StoreWritesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "latticegen_store_writes_total",
			Help: "Structured-store variables written with xmlchange",
		}),
		NamelistWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "latticegen_namelist_writes_total",
			Help: "Namelist files reconciled",
		}),
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "latticegen_submissions_total",
			Help: "Case submissions by kind",
		}, []string{"kind"}),
		LatticePoints: factory.NewGauge(prometheus.GaugeOpts{
			Name: "latticegen_lattice_points",
			Help: "Points in the most recently built lattice",
		}),
		CommandFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "latticegen_command_failures_total",
			Help: "External case commands that exited unsuccessfully",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveClone records one point outcome. Pass the time the point started.
func (m *Metrics) ObserveClone(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.ClonesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCreated {
		m.CloneDuration.Observe(time.Since(start).Seconds())
	}
}

// AddStoreWrites counts structured-store writes.
func (m *Metrics) AddStoreWrites(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.StoreWritesTotal.Add(float64(n))
}

// IncrementNamelistWrites counts a reconciled namelist file.
func (m *Metrics) IncrementNamelistWrites() {
	if m == nil {
		return
	}
	m.NamelistWrites.Inc()
}

// IncrementSubmission counts a submission; kind is "submit" or "resubmit".
func (m *Metrics) IncrementSubmission(kind string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(kind).Inc()
}

// SetLatticePoints records the current lattice size.
func (m *Metrics) SetLatticePoints(n int) {
	if m == nil {
		return
	}
	m.LatticePoints.Set(float64(n))
}

// IncrementCommandFailures counts a failed external command.
func (m *Metrics) IncrementCommandFailures() {
	if m == nil {
		return
	}
	m.CommandFailures.Inc()
}

// WriteTextfile writes every metric to path in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
