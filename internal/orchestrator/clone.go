package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kingrea/namelist-lattice/internal/history"
	"github.com/kingrea/namelist-lattice/internal/lattice"
	"github.com/kingrea/namelist-lattice/internal/logbook"
	"github.com/kingrea/namelist-lattice/internal/metrics"
	"github.com/kingrea/namelist-lattice/internal/naming"
	"github.com/kingrea/namelist-lattice/internal/reconcile"
)

// CloneOptions controls one CreateClones run.
type CloneOptions struct {
	// RootCase is the template case every clone copies.
	RootCase string
	// CloneDir holds the new cases. Defaults to the root case's parent.
	CloneDir string
	// OutputDir, when set, is passed to create_clone as the output root and
	// receives one directory per case.
	OutputDir string
	// Prefix starts every case name. Defaults to the root case's base name.
	Prefix string
	// Suffixes overrides derived labels: one shared entry or one per point.
	Suffixes []string
	// Overwrite destroys existing case and output paths before provisioning.
	Overwrite bool
	// Clean removes CloneDir and OutputDir entirely after confirmation.
	Clean bool
	// Resubmits is written to RESUBMIT on every fresh clone.
	Resubmits int
	// ReadExisting registers the expected case paths without provisioning.
	ReadExisting bool
}

// Target is the resolved naming for one point.
type Target struct {
	Index      int
	Suffix     string
	CasePath   string
	OutputPath string
	Values     []string
}

// Run summarises a CreateClones invocation.
type Run struct {
	RunID  string
	Points []history.PointRecord
}

// Resolve computes the case and output path of every point without side effects.
func Resolve(reg *lattice.Registry, opts CloneOptions) ([]Target, CloneOptions, error) {
	points, err := reg.Lattice()
	if err != nil {
		return nil, opts, err
	}
	opts, err = normalizeOptions(opts)
	if err != nil {
		return nil, opts, err
	}
	suffixes, err := naming.New(reg).Suffixes(points, opts.Suffixes)
	if err != nil {
		return nil, opts, err
	}
	targets := make([]Target, len(points))
	for i, point := range points {
		name := naming.CaseName(opts.Prefix, suffixes[i])
		targets[i] = Target{
			Index:    i,
			Suffix:   suffixes[i],
			CasePath: filepath.Join(opts.CloneDir, name),
			Values:   pointValues(point),
		}
		if opts.OutputDir != "" {
			targets[i].OutputPath = filepath.Join(opts.OutputDir, name)
		}
	}
	return targets, opts, nil
}

// CreateClones provisions and configures one case per lattice point, or with
// ReadExisting registers the cases a previous run created.
func (o *Orchestrator) CreateClones(ctx context.Context, reg *lattice.Registry, opts CloneOptions) (run Run, retErr error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := o.tracer.Start(ctx, "orchestrator.CreateClones")
	defer func() {
		if retErr != nil {
			span.RecordError(retErr)
			span.SetStatus(codes.Error, retErr.Error())
		}
		span.End()
	}()

	if opts.ReadExisting && (opts.Overwrite || opts.Clean) {
		return run, fmt.Errorf("%w: read-existing cannot be combined with overwrite or clean", lattice.ErrConflictingArguments)
	}
	if opts.Resubmits < 0 {
		return run, fmt.Errorf("%w: resubmits must be >= 0, got %d", lattice.ErrConflictingArguments, opts.Resubmits)
	}
	targets, opts, err := Resolve(reg, opts)
	if err != nil {
		return run, err
	}
	if !opts.ReadExisting {
		if err := checkDistinct(targets); err != nil {
			return run, err
		}
	}
	o.metrics.SetLatticePoints(len(targets))
	span.SetAttributes(
		attribute.String("lattice.root_case", opts.RootCase),
		attribute.Int("lattice.points", len(targets)),
		attribute.Bool("lattice.read_existing", opts.ReadExisting),
	)

	manifest := history.NewManifest(opts.RootCase, opts.Prefix, reg.Mode() == lattice.ModeFill)
	for _, dim := range reg.Dimensions() {
		manifest.Dimensions = append(manifest.Dimensions, dim.Label())
	}
	run.RunID = manifest.RunID
	journal := o.journal.WithRun(manifest.RunID)
	journal.Info("clone run started: root=%s points=%d read_existing=%t", opts.RootCase, len(targets), opts.ReadExisting)

	if opts.Clean {
		if err := o.clean(opts); err != nil {
			journal.Error("clean failed: %v", err)
			return run, err
		}
		journal.Warn("cleaned %s", strings.Join(nonEmpty(opts.CloneDir, opts.OutputDir), ", "))
	}
	if !opts.ReadExisting {
		for _, dir := range nonEmpty(opts.CloneDir, opts.OutputDir) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return run, fmt.Errorf("orchestrator: create %s: %w", dir, err)
			}
		}
	}

	reconciler := reconcile.New(reg, o.control, o.component)
	points, err := reg.Lattice()
	if err != nil {
		return run, err
	}
	for i, target := range targets {
		rec, err := o.processPoint(ctx, journal, reconciler, points[i], target, opts)
		manifest.Record(rec)
		if !opts.ReadExisting {
			o.saveManifest(journal, manifest)
		}
		run.Points = append(run.Points, rec)
		if err != nil {
			return run, err
		}
	}
	journal.Info("clone run finished: %d cases registered", len(targets))
	return run, nil
}

func (o *Orchestrator) processPoint(ctx context.Context, journal *logbook.Logbook, reconciler *reconcile.Reconciler, point lattice.Point, target Target, opts CloneOptions) (rec history.PointRecord, retErr error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "orchestrator.point", trace.WithAttributes(
		attribute.Int("point.index", target.Index),
		attribute.String("point.suffix", target.Suffix),
		attribute.String("point.case", target.CasePath),
	))
	rec = history.PointRecord{
		Index:  target.Index,
		Suffix: target.Suffix,
		Case:   target.CasePath,
		Output: target.OutputPath,
		Values: target.Values,
		State:  history.StatePending,
	}
	defer func() {
		if retErr != nil {
			rec.Error = retErr.Error()
			journal.Error("point %d %s failed in %s: %v", target.Index, target.Suffix, rec.State, retErr)
			rec.State = history.StateFailed
			o.metrics.ObserveClone(metrics.OutcomeFailed, start)
			o.countCommandFailure(retErr)
			span.RecordError(retErr)
			span.SetStatus(codes.Error, retErr.Error())
		}
		span.End()
	}()

	transition := func(state history.State) {
		journal.Info("point %d %s -> %s", target.Index, rec.State, state)
		rec.State = state
		span.AddEvent(string(state))
	}

	if opts.ReadExisting {
		transition(history.StateReadExisting)
		if _, err := os.Stat(target.CasePath); err != nil {
			journal.Warn("point %d: expected case %s is not readable: %v", target.Index, target.CasePath, err)
		}
		o.cases = append(o.cases, target.CasePath)
		transition(history.StateRegistered)
		rec.Reused = true
		o.metrics.ObserveClone(metrics.OutcomeExisting, start)
		return rec, nil
	}

	transition(history.StateNamed)
	for _, path := range nonEmpty(target.CasePath, target.OutputPath) {
		if err := o.clearPath(journal, path, opts.Overwrite); err != nil {
			return rec, err
		}
	}
	if err := o.provisioner.Clone(ctx, opts.RootCase, target.CasePath, target.OutputPath); err != nil {
		return rec, fmt.Errorf("orchestrator: clone %s: %w", target.CasePath, err)
	}
	transition(history.StateProvisioned)

	if err := o.control.SetVariable(ctx, target.CasePath, ResubmitKey, strconv.Itoa(opts.Resubmits)); err != nil {
		return rec, fmt.Errorf("orchestrator: set %s=%d on %s: %w", ResubmitKey, opts.Resubmits, target.CasePath, err)
	}
	plan := reconciler.Plan(target.Index, point, target.Suffix, target.CasePath, target.OutputPath)
	if err := reconciler.Apply(ctx, plan); err != nil {
		return rec, err
	}
	o.metrics.AddStoreWrites(len(plan.Store) + 1)
	o.metrics.IncrementNamelistWrites()
	transition(history.StateReconciled)

	o.cases = append(o.cases, target.CasePath)
	transition(history.StateRegistered)
	o.metrics.ObserveClone(metrics.OutcomeCreated, start)
	return rec, nil
}

// clearPath enforces the collision policy for one path.
func (o *Orchestrator) clearPath(journal *logbook.Logbook, path string, overwrite bool) error {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("orchestrator: stat %s: %w", path, err)
	}
	if !overwrite {
		return fmt.Errorf("%w: %s (enable overwrite to replace it)", ErrCaseExists, path)
	}
	journal.Warn("overwriting %s", path)
	return o.provisioner.Destroy(path)
}

func (o *Orchestrator) clean(opts CloneOptions) error {
	var targets []string
	for _, dir := range nonEmpty(opts.CloneDir, opts.OutputDir) {
		if within(opts.RootCase, dir) {
			return fmt.Errorf("%w: clean would remove the root case %s", lattice.ErrConflictingArguments, opts.RootCase)
		}
		if _, err := os.Stat(dir); err == nil {
			targets = append(targets, dir)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	if o.confirmer == nil {
		return fmt.Errorf("%w: no confirmation prompt available", ErrCleanDeclined)
	}
	ok, err := o.confirmer.ConfirmClean(targets)
	if err != nil {
		return fmt.Errorf("orchestrator: confirm clean: %w", err)
	}
	if !ok {
		return ErrCleanDeclined
	}
	for _, dir := range targets {
		if err := o.provisioner.Destroy(dir); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) saveManifest(journal *logbook.Logbook, manifest history.Manifest) {
	if o.history == nil {
		return
	}
	if err := o.history.Save(manifest); err != nil {
		journal.Warn("history not saved: %v", err)
	}
}

func normalizeOptions(opts CloneOptions) (CloneOptions, error) {
	root := strings.TrimSpace(opts.RootCase)
	if root == "" {
		return opts, fmt.Errorf("%w: no root case given", ErrRootCaseNotFound)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return opts, fmt.Errorf("orchestrator: resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return opts, fmt.Errorf("%w: %s", ErrRootCaseNotFound, abs)
	}
	opts.RootCase = abs
	if strings.TrimSpace(opts.CloneDir) == "" {
		opts.CloneDir = filepath.Dir(abs)
	}
	if opts.CloneDir, err = filepath.Abs(opts.CloneDir); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.OutputDir) != "" {
		if opts.OutputDir, err = filepath.Abs(opts.OutputDir); err != nil {
			return opts, err
		}
	}
	if strings.TrimSpace(opts.Prefix) == "" {
		opts.Prefix = filepath.Base(abs)
	}
	return opts, nil
}

func checkDistinct(targets []Target) error {
	seen := make(map[string]int, len(targets))
	for _, t := range targets {
		if prev, ok := seen[t.CasePath]; ok {
			return fmt.Errorf("%w: points %d and %d both map to %s", ErrCaseExists, prev, t.Index, t.CasePath)
		}
		seen[t.CasePath] = t.Index
	}
	return nil
}

func pointValues(point lattice.Point) []string {
	out := make([]string, len(point))
	for i, tuple := range point {
		out[i] = tuple.Text()
	}
	return out
}

// within reports whether path is dir or lies beneath it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
