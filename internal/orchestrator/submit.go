package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kingrea/namelist-lattice/internal/cime"
)

// Submission describes what happened, or would happen, for one case.
type Submission struct {
	Case    string
	Command string
	// Remaining is the RESUBMIT count read before resubmitting; zero for plain submits.
	Remaining int
	Skipped   bool
	Dry       bool
}

// Submit runs the submission entry point of every registered case in order.
// With dry set nothing is executed and the commands are only listed.
func (o *Orchestrator) Submit(ctx context.Context, dry bool) ([]Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(o.cases) == 0 {
		return nil, fmt.Errorf("%w: create or read clones before submitting", ErrNoCases)
	}
	ctx, span := o.tracer.Start(ctx, "orchestrator.Submit", trace.WithAttributes(
		attribute.Int("cases", len(o.cases)),
		attribute.Bool("dry", dry),
	))
	defer span.End()

	out := make([]Submission, 0, len(o.cases))
	for _, casePath := range o.cases {
		sub := Submission{Case: casePath, Command: o.submitter.SubmitCommand(casePath), Dry: dry}
		if err := o.submit(ctx, sub); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return out, err
		}
		o.metrics.IncrementSubmission("submit")
		out = append(out, sub)
	}
	return out, nil
}

// Resubmit re-triggers submission for every registered case whose RESUBMIT
// count is nonzero. The count itself is never modified; callers must ensure
// no case is queued or running elsewhere.
func (o *Orchestrator) Resubmit(ctx context.Context, dry bool) ([]Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(o.cases) == 0 {
		return nil, fmt.Errorf("%w: create or read clones before resubmitting", ErrNoCases)
	}
	ctx, span := o.tracer.Start(ctx, "orchestrator.Resubmit", trace.WithAttributes(
		attribute.Int("cases", len(o.cases)),
		attribute.Bool("dry", dry),
	))
	defer span.End()
	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := make([]Submission, 0, len(o.cases))
	for _, casePath := range o.cases {
		raw, err := o.control.QueryVariable(ctx, casePath, ResubmitKey)
		if err != nil {
			o.countCommandFailure(err)
			return out, fail(fmt.Errorf("orchestrator: query %s in %s: %w", ResubmitKey, casePath, err))
		}
		remaining, err := strconv.Atoi(raw)
		if err != nil {
			return out, fail(fmt.Errorf("%w: %s in %s is %q", cime.ErrUnexpectedOutput, ResubmitKey, casePath, raw))
		}
		sub := Submission{
			Case:      casePath,
			Command:   o.submitter.SubmitCommand(casePath),
			Remaining: remaining,
			Dry:       dry,
		}
		if remaining == 0 {
			sub.Skipped = true
			o.journal.Info("no resubmission needed for %s", casePath)
			out = append(out, sub)
			continue
		}
		if err := o.submit(ctx, sub); err != nil {
			return out, fail(err)
		}
		o.metrics.IncrementSubmission("resubmit")
		out = append(out, sub)
	}
	return out, nil
}

func (o *Orchestrator) submit(ctx context.Context, sub Submission) error {
	if sub.Dry {
		o.journal.Info("DRY: %s", sub.Command)
		return nil
	}
	o.journal.Info("submitting %s", sub.Command)
	if err := o.submitter.Submit(ctx, sub.Case); err != nil {
		o.countCommandFailure(err)
		o.journal.Error("submit %s failed: %v", sub.Case, err)
		return fmt.Errorf("orchestrator: submit %s: %w", sub.Case, err)
	}
	return nil
}

func (o *Orchestrator) countCommandFailure(err error) {
	var cmdErr *cime.ExternalCommandError
	if errors.As(err, &cmdErr) {
		o.metrics.IncrementCommandFailures()
	}
}
