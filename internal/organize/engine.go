package organize

import (
	"context"

	"mediasort/internal/config"
	"mediasort/internal/errors"
	"mediasort/internal/log"
	"mediasort/internal/report"
	"mediasort/internal/resolve"
	"mediasort/pkg/types"

	"github.com/google/uuid"
)

// Engine drives date resolution, placement and the file operation for each
// input, one file at a time.
type Engine struct {
	action   types.Action
	dryRun   bool
	resolver resolve.Resolver
	placer   *Placer
	executor *Executor
	reporter report.Reporter
	logger   log.Logging
	runner   resolve.Runner
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver replaces the strategy chosen from the configuration.
func WithResolver(r resolve.Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithReporter sets where outcomes are reported.
func WithReporter(r report.Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l log.Logging) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRunner sets the process runner handed to tool-backed resolvers.
func WithRunner(r resolve.Runner) Option {
	return func(e *Engine) { e.runner = r }
}

// NewWithConfig creates an Engine from cfg. cfg is only read here.
func NewWithConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.NewConfigError("no configuration provided", "", nil)
	}

	e := &Engine{
		action: cfg.Action,
		dryRun: cfg.DryRun,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Discard()
	}
	if e.reporter == nil {
		e.reporter = report.Stdio()
	}

	if e.resolver == nil {
		r, err := resolve.New(cfg.Strategy,
			resolve.WithLogger(e.logger),
			resolve.WithRunner(e.runner),
			resolve.WithExiftool(cfg.Tools.Exiftool),
			resolve.WithFFprobe(cfg.Tools.FFprobe),
		)
		if err != nil {
			return nil, errors.NewConfigError("invalid strategy", "strategy", err)
		}
		e.resolver = r
	}

	e.placer = NewPlacer(cfg.TargetDir, cfg.Collision, e.logger)
	e.executor = NewExecutor(cfg.Action, cfg.DryRun, e.logger)
	return e, nil
}

// IsDryRun returns whether the engine is in dry run mode
func (e *Engine) IsDryRun() bool {
	return e.dryRun
}

// Process organizes a single file and reports its outcome.
func (e *Engine) Process(ctx context.Context, path string) types.ProcessingOutcome {
	outcome := e.process(ctx, e.logger, path)
	e.reporter.Report(outcome)
	return outcome
}

// Run processes files in order. A failing file never stops the batch; the
// returned error is ErrNoInput for an empty list and ErrErrorsSeen when
// any file failed.
func (e *Engine) Run(ctx context.Context, files []string) (types.BatchSummary, error) {
	if len(files) == 0 {
		return types.BatchSummary{}, errors.ErrNoInput
	}

	summary := types.BatchSummary{
		RunID:    uuid.NewString(),
		DryRun:   e.dryRun,
		Outcomes: make([]types.ProcessingOutcome, 0, len(files)),
	}
	logger := e.logger.With(log.F("run_id", summary.RunID))
	logger.Debugf("organizing %d files", len(files))

	for _, path := range files {
		outcome := e.process(ctx, logger, path)
		e.reporter.Report(outcome)
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	e.reporter.Summary(summary)

	if failed := summary.Failed(); failed > 0 {
		logger.With(log.F("failed", failed)).Infof("%d of %d files failed", failed, len(files))
		return summary, errors.ErrErrorsSeen
	}
	return summary, nil
}

func (e *Engine) process(ctx context.Context, logger log.Logging, path string) types.ProcessingOutcome {
	outcome := types.ProcessingOutcome{
		SourcePath: path,
		Action:     e.action,
		DryRun:     e.dryRun,
	}
	logger = logger.With(log.F("path", path))

	ts, err := e.resolver.Resolve(ctx, path)
	if err != nil {
		outcome.Error = errors.Wrap(err, "failed to determine capture date")
		logger.WithError(err).Debug("date resolution failed")
		return outcome
	}
	logger.Debugf("resolved date %s", ts.Format("2006-01-02 15:04:05"))

	decision, err := e.placer.Place(path, ts)
	if err != nil {
		outcome.Error = errors.Wrap(err, "failed to choose a destination")
		logger.WithError(err).Debug("placement failed")
		return outcome
	}
	outcome.Decision = decision

	if err := e.executor.Execute(decision); err != nil {
		outcome.Error = errors.Wrapf(err, "failed to %s file", e.action)
		logger.WithError(err).Debug("file operation failed")
		return outcome
	}
	return outcome
}
