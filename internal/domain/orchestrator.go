package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"podify.dev/pkg/podify/internal/adapter"
	"podify.dev/pkg/podify/internal/controller"
	m "podify.dev/pkg/podify/internal/model"
)

// Orchestrator converts a type-first app tree into pods.
type Orchestrator interface {
	// Plan lists every batch a run would execute without touching the tree.
	Plan(ctx context.Context) ([]m.Batch, error)

	// Run executes the conversion phase by phase. Single file failures are
	// reported and counted; only failures that leave nothing to enumerate
	// end the run with an error.
	Run(ctx context.Context) (m.RunSummary, error)
}

type orchestrator struct {
	cfg       m.RunConfig
	fsAdapter adapter.SourceFSAdapter
	walker    TreeWalker
	gate      controller.ConfirmationGate
	reporter  controller.Reporter
	store     adapter.ReportStore

	mu      sync.Mutex
	summary m.RunSummary
}

// NewOrchestrator constructs an Orchestrator. cfg is copied and never changed.
func NewOrchestrator(
	cfg m.RunConfig,
	fsAdapter adapter.SourceFSAdapter,
	gate controller.ConfirmationGate,
	reporter controller.Reporter,
	store adapter.ReportStore,
) Orchestrator {
	return &orchestrator{
		cfg:       cfg,
		fsAdapter: fsAdapter,
		walker:    NewTreeWalker(cfg, fsAdapter, reporter),
		gate:      gate,
		reporter:  reporter,
		store:     store,
	}
}

// batchSource collects the plans of one batch at the moment it is due.
type batchSource struct {
	phase    m.Phase
	category string
	collect  func(ctx context.Context) ([]m.ConversionPlan, error)
}

func (o *orchestrator) batchSources() []batchSource {
	app := o.cfg.AppDir()
	templates := app.Join(CategoryTemplates)
	componentTemplates := templates.Join(CategoryComponents)

	var sources []batchSource

	if !o.cfg.SkipComponents {
		sources = append(sources,
			batchSource{m.PhaseComponents, CategoryComponents, func(ctx context.Context) ([]m.ConversionPlan, error) {
				return o.collectRoot(ctx, app.Join(CategoryComponents), m.ExtensionScript, true)
			}},
			batchSource{m.PhaseComponentTemplates, CategoryComponents, func(ctx context.Context) ([]m.ConversionPlan, error) {
				return o.collectRoot(ctx, componentTemplates, m.ExtensionTemplate, false)
			}},
		)
	}

	sources = append(sources,
		batchSource{m.PhaseRoots, CategoryRoutes, func(ctx context.Context) ([]m.ConversionPlan, error) {
			return o.collectRoot(ctx, app.Join(CategoryRoutes), m.ExtensionScript, true)
		}},
		batchSource{m.PhaseRoots, CategoryControllers, func(ctx context.Context) ([]m.ConversionPlan, error) {
			return o.collectRoot(ctx, app.Join(CategoryControllers), m.ExtensionScript, true)
		}},
		batchSource{m.PhaseRoots, CategoryTemplates, func(ctx context.Context) ([]m.ConversionPlan, error) {
			return o.collectRoot(ctx, templates, m.ExtensionTemplate, false)
		}},
		batchSource{m.PhaseChildren, CategoryRoutes, func(ctx context.Context) ([]m.ConversionPlan, error) {
			return o.collectChildren(ctx, app.Join(CategoryRoutes), m.ExtensionScript)
		}},
		batchSource{m.PhaseChildren, CategoryControllers, func(ctx context.Context) ([]m.ConversionPlan, error) {
			return o.collectChildren(ctx, app.Join(CategoryControllers), m.ExtensionScript)
		}},
		batchSource{m.PhaseChildren, CategoryTemplates, func(ctx context.Context) ([]m.ConversionPlan, error) {
			return o.collectChildren(ctx, templates, m.ExtensionTemplate, componentTemplates)
		}},
	)

	return sources
}

func (o *orchestrator) Plan(ctx context.Context) ([]m.Batch, error) {
	var batches []m.Batch

	for _, source := range o.batchSources() {
		plans, err := source.collect(ctx)
		if err != nil {
			return nil, err
		}

		batches = append(batches, m.Batch{Phase: source.phase, Category: source.category, Plans: plans})
	}

	return batches, nil
}

func (o *orchestrator) Run(ctx context.Context) (m.RunSummary, error) {
	start := time.Now()

	defer func() {
		o.store.ObserveRun(time.Since(start))
	}()

	if err := o.ensureRootPod(ctx); err != nil {
		return o.snapshot(), err
	}

	for _, source := range o.batchSources() {
		plans, err := source.collect(ctx)
		if err != nil {
			slog.Error("Failed to collect batch", "phase", source.phase, "category", source.category, "error", err)
			return o.snapshot(), err
		}

		slog.Debug("Executing batch", "phase", source.phase, "category", source.category, "files", len(plans))

		if err := o.executeBatch(ctx, plans); err != nil {
			return o.snapshot(), err
		}
	}

	summary := o.snapshot()
	o.reporter.ReportSummary(ctx, summary)

	return summary, nil
}

func (o *orchestrator) ensureRootPod(ctx context.Context) error {
	podRoot := o.cfg.PodRoot()

	err := o.fsAdapter.CreateDirectory(ctx, podRoot, false)
	if classifyDirectoryCreationError(err) == unexpected {
		slog.Error("Failed to create pod root", "path", podRoot, "error", err)
		return fmt.Errorf("create pod root %s: %w", podRoot, err)
	}

	return nil
}

// collectRoot builds root level plans for dir. Listing failures other than a
// missing directory end the run when the directory is mandatory.
func (o *orchestrator) collectRoot(ctx context.Context, dir m.Path, kind m.ExtensionKind, mandatory bool) ([]m.ConversionPlan, error) {
	files, err := o.walker.ListConvertibleFiles(ctx, dir, o.cfg.Extensions(kind))
	if err != nil {
		if mandatory {
			return nil, err
		}

		slog.Warn("Failed to list optional directory", "dir", dir, "error", err)
		o.reporter.ReportError(ctx, err)

		return nil, nil
	}

	plans := make([]m.ConversionPlan, 0, len(files))

	for _, file := range files {
		plan, err := MapRootLevelFile(o.cfg, file)
		if err != nil {
			o.reporter.ReportError(ctx, err)
			continue
		}

		plans = append(plans, plan)
	}

	return plans, nil
}

// collectChildren builds child level plans for every resource directory
// below categoryDir.
func (o *orchestrator) collectChildren(ctx context.Context, categoryDir m.Path, kind m.ExtensionKind, skip ...m.Path) ([]m.ConversionPlan, error) {
	dirs, err := o.walker.ListSubdirectories(ctx, categoryDir, skip...)
	if err != nil {
		return nil, err
	}

	var plans []m.ConversionPlan

	for _, dir := range dirs {
		files, err := o.walker.ListConvertibleFiles(ctx, dir, o.cfg.Extensions(kind))
		if err != nil {
			slog.Warn("Failed to list resource directory", "dir", dir, "error", err)
			o.reporter.ReportError(ctx, err)

			continue
		}

		for _, file := range files {
			plan, err := MapChildLevelFile(o.cfg, categoryDir, file)
			if err != nil {
				o.reporter.ReportError(ctx, err)
				continue
			}

			plans = append(plans, plan)
		}
	}

	return plans, nil
}

// executeBatch dispatches every plan and waits until all of them settled.
// Confirmation happens at dispatch time so prompts never overlap. While a
// prompt may be on screen, worker reports are held back until the batch joins.
func (o *orchestrator) executeBatch(ctx context.Context, plans []m.ConversionPlan) error {
	var group errgroup.Group
	group.SetLimit(o.cfg.Parallel)

	workerReporter := controller.Reporter(o.reporter)

	var held *heldReporter
	if _, auto := o.gate.(controller.AlwaysConfirm); !auto {
		held = &heldReporter{Reporter: o.reporter}
		workerReporter = held
	}

	for _, plan := range plans {
		o.reporter.ReportConversion(ctx, plan)

		if !o.gate.Confirm(ctx, controller.ConfirmPrompt) {
			o.reporter.ReportSkipped(ctx, plan.Source.Full(), "declined")
			o.record(plan, m.Declined)

			continue
		}

		group.Go(func() error {
			o.record(plan, o.convert(ctx, plan, workerReporter))
			return nil
		})
	}

	err := group.Wait()

	if held != nil {
		held.flush()
	}

	return err
}

// convert runs the per-file protocol. The move is attempted even when the
// directory could not be created.
func (o *orchestrator) convert(ctx context.Context, plan m.ConversionPlan, reporter controller.Reporter) m.Outcome {
	source := plan.Source.Full()
	destination := plan.Destination.Full()

	if plan.RequiresDirectoryCreation {
		dir := plan.Destination.Directory

		err := o.fsAdapter.CreateDirectory(ctx, dir, plan.CreateParents)
		if classifyDirectoryCreationError(err) == unexpected {
			slog.Warn("Failed to create pod directory", "path", dir, "error", err)
			reporter.ReportError(ctx, fmt.Errorf("create directory %s: %w", dir, err))
		}
	}

	err := o.fsAdapter.Move(ctx, source, destination)

	resolution, reason := classifyMoveError(err, source)
	switch resolution {
	case resolved:
		slog.Info("Converted file", "source", source, "destination", destination, "type", plan.FileType)
		return m.Converted
	case tolerated:
		slog.Debug("Skipped file", "source", source, "reason", reason)
		reporter.ReportSkipped(ctx, source, reason)

		return m.Skipped
	default:
		slog.Warn("Failed to move file", "source", source, "destination", destination, "error", err)
		reporter.ReportError(ctx, fmt.Errorf("move %s: %w", source, err))

		return m.Failed
	}
}

// heldReporter queues skip and error reports from workers and replays them
// in arrival order on flush. Other events pass straight through.
type heldReporter struct {
	controller.Reporter

	mu      sync.Mutex
	pending []func()
}

func (h *heldReporter) ReportSkipped(ctx context.Context, path m.Path, reason string) {
	h.hold(func() { h.Reporter.ReportSkipped(ctx, path, reason) })
}

func (h *heldReporter) ReportError(ctx context.Context, err error) {
	h.hold(func() { h.Reporter.ReportError(ctx, err) })
}

func (h *heldReporter) hold(report func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pending = append(h.pending, report)
}

func (h *heldReporter) flush() {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()

	for _, report := range pending {
		report()
	}
}

func (o *orchestrator) record(plan m.ConversionPlan, outcome m.Outcome) {
	o.mu.Lock()
	o.summary.Add(outcome)
	o.mu.Unlock()

	o.store.RecordOutcome(plan.FileType, outcome)
}

func (o *orchestrator) snapshot() m.RunSummary {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.summary
}

// resolution is the decision taken for a filesystem error.
type resolution int

const (
	resolved   resolution = iota // no error, or one that means the work is done
	tolerated                    // expected condition, reported as a skip
	unexpected                   // anything else
)

// classifyDirectoryCreationError treats an existing directory as success.
func classifyDirectoryCreationError(err error) resolution {
	switch adapter.Classify(err) {
	case m.FailureNone, m.FailureAlreadyExists:
		return resolved
	default:
		return unexpected
	}
}

// classifyMoveError tolerates a vanished source, a missing destination
// directory and an occupied destination.
func classifyMoveError(err error, source m.Path) (resolution, string) {
	switch adapter.Classify(err) {
	case m.FailureNone:
		return resolved, ""
	case m.FailureNotFound:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && pathErr.Path == string(source) {
			return tolerated, "source already moved"
		}

		return tolerated, "destination directory missing"
	case m.FailureAlreadyExists:
		return tolerated, "destination already exists"
	default:
		return unexpected, ""
	}
}
