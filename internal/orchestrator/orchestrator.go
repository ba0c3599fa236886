// Package orchestrator turns a lattice into provisioned, configured cases and
// drives their submission.
//
// Each point moves through PENDING, NAMED, PROVISIONED, RECONCILED and
// REGISTERED, or PENDING, READ_EXISTING and REGISTERED when existing cases are
// reused. Points are processed strictly in lattice order; the first failure
// aborts the run and already-provisioned cases are left in place.
package orchestrator

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kingrea/namelist-lattice/internal/history"
	"github.com/kingrea/namelist-lattice/internal/logbook"
	"github.com/kingrea/namelist-lattice/internal/metrics"
)

const tracerName = "github.com/kingrea/namelist-lattice/internal/orchestrator"

// ResubmitKey is the structured-store variable holding the pending resubmission count.
const ResubmitKey = "RESUBMIT"

var (
	// ErrRootCaseNotFound is returned when the template case directory is missing.
	ErrRootCaseNotFound = errors.New("orchestrator: root case not found")
	// ErrCaseExists is returned when a target path exists and overwrite is off.
	ErrCaseExists = errors.New("orchestrator: case already exists")
	// ErrNoCases is returned when submission is requested before any case is registered.
	ErrNoCases = errors.New("orchestrator: no cases registered")
	// ErrCleanDeclined is returned when the clean confirmation is refused.
	ErrCleanDeclined = errors.New("orchestrator: clean declined")
)

// Orchestrator sequences provisioning, reconciliation and submission. It is
// not safe for concurrent use.
type Orchestrator struct {
	provisioner Provisioner
	control     CaseControl
	submitter   Submitter
	confirmer   Confirmer

	component string
	journal   *logbook.Logbook
	metrics   *metrics.Metrics
	history   history.Store
	tracer    trace.Tracer

	cases []string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConfirmer sets the prompt used before cleaning.
func WithConfirmer(c Confirmer) Option {
	return func(o *Orchestrator) { o.confirmer = c }
}

// WithComponent selects the user_nl file reconciled in each case.
func WithComponent(component string) Option {
	return func(o *Orchestrator) { o.component = component }
}

// WithLogbook journals state transitions.
func WithLogbook(book *logbook.Logbook) Option {
	return func(o *Orchestrator) { o.journal = book }
}

// WithMetrics records counters for each run.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithHistory persists a manifest after every provisioned point. Runs that
// only read existing cases leave the stored history untouched.
func WithHistory(store history.Store) Option {
	return func(o *Orchestrator) { o.history = store }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// New validates the collaborators and applies options.
func New(provisioner Provisioner, control CaseControl, submitter Submitter, opts ...Option) (*Orchestrator, error) {
	if provisioner == nil {
		return nil, fmt.Errorf("orchestrator: provisioner is required")
	}
	if control == nil {
		return nil, fmt.Errorf("orchestrator: case control is required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("orchestrator: submitter is required")
	}
	o := &Orchestrator{
		provisioner: provisioner,
		control:     control,
		submitter:   submitter,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o, nil
}

// Cases returns the clone registry in registration order.
func (o *Orchestrator) Cases() []string {
	return append([]string(nil), o.cases...)
}

// Register appends previously provisioned cases to the clone registry.
func (o *Orchestrator) Register(cases ...string) {
	o.cases = append(o.cases, cases...)
}
