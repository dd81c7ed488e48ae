package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
	"github.com/msaeedsaeedi/pagecycler/internal/infra"
	"github.com/msaeedsaeedi/pagecycler/internal/logging"
	"github.com/msaeedsaeedi/pagecycler/internal/ui"
)

// Orchestrator performs one page cycler run: start the instrumentation,
// classify its output, then pull the result file.
type Orchestrator struct {
	validator *domain.ConfigValidator
	runner    infra.Runner
	logger    *slog.Logger
	stdout    io.Writer
	stderr    io.Writer
}

type Option func(*Orchestrator)

// WithRunner replaces the process runner used for bridge invocations.
func WithRunner(r infra.Runner) Option {
	return func(o *Orchestrator) { o.runner = r }
}

// WithOutput sets where the formatters write. JSON reports go to stdout,
// raw progress to stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *Orchestrator) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

func NewOrchestrator(logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		validator: domain.NewConfigValidator(),
		runner:    infra.NewCommandRunner(),
		logger:    logger,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	return o
}

// Execute runs cfg and returns nil only when the instrumentation passed and
// the results directory was usable. A missing pulled file is logged but does
// not make the run fail.
func (o *Orchestrator) Execute(ctx context.Context, cfg *domain.RunConfig) error {
	if err := o.validator.Validate(cfg); err != nil {
		return err
	}

	handler := o.getFormatter(cfg)

	if cfg.Format == domain.FormatTUI {
		tuiHandler, ok := handler.(*ui.TUIFormatter)
		if !ok {
			return fmt.Errorf("tui formatter not available")
		}
		return o.executeTUI(ctx, cfg, tuiHandler)
	}

	_, err := o.run(ctx, cfg, handler, o.logger)
	return err
}

func (o *Orchestrator) executeTUI(ctx context.Context, cfg *domain.RunConfig, tui *ui.TUIFormatter) error {
	ctxRun, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctxRun)

	// The TUI owns the terminal; when it exits the run is cancelled.
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx)
	})

	if err := tui.WaitReady(gctx); err != nil {
		return err
	}

	logger := logging.New(tui.LogWriter(), cfg.Verbose)

	var runErr error
	g.Go(func() error {
		_, runErr = o.run(gctx, cfg, tui, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return runErr
}

func (o *Orchestrator) run(ctx context.Context, cfg *domain.RunConfig, handler ResultHandler, logger *slog.Logger) (*domain.RunReport, error) {
	report := &domain.RunReport{
		Target:      cfg.Target,
		Verdict:     domain.VerdictFail,
		ResultsPath: ResultFilePath(cfg.ResultsDir),
	}

	err := o.runTest(ctx, cfg, handler, logger, report)
	report.Err = err
	if err == nil {
		report.Verdict = domain.VerdictPass
	}
	handler.OnFinish(report)
	return report, err
}

func (o *Orchestrator) runTest(ctx context.Context, cfg *domain.RunConfig, handler ResultHandler, logger *slog.Logger, report *domain.RunReport) error {
	bridge := infra.NewBridge(cfg.BridgePath, cfg.BridgeOptions, o.runner)
	executor := NewPhaseExecutor(handler)

	logger.Info("Running the test ...")

	req := infra.InstrumentRequest{
		Path:      cfg.Target,
		TimeoutMS: cfg.Timeout(),
		DrawTime:  cfg.DrawTime,
		SaveImage: cfg.SaveImage,
	}
	logger.Debug("Starting instrumentation", "command", strings.Join(bridge.InstrumentArgs(req), " "))

	res, err := executor.Execute(ctx, domain.PhaseInstrument, func(ctx context.Context, stdout, stderr io.Writer) domain.CommandResult {
		return bridge.Instrument(ctx, req, stdout, stderr)
	})
	report.Instrument = &res
	if err != nil {
		return err
	}
	if !res.Launched {
		logger.Error("Cannot run adb", "command", strings.Join(res.Args, " "), "error", res.Error)
		return &BridgeError{Phase: domain.PhaseInstrument, Args: res.Args, Err: res.Error}
	}
	if res.ExitCode != 0 {
		logger.Debug("adb exited with non-zero status", "exit_code", res.ExitCode)
	}

	report.Classification = domain.Classify(res.Stdout)
	if report.Classification.Failed {
		logger.Error("Error happened", "marker", report.Classification.Marker, "output", string(res.Stdout))
		return &InstrumentationError{Classification: report.Classification}
	}

	logger.Info("Instrumentation finished", "stdout", string(res.Stdout))
	logger.Info("Instrumentation finished", "stderr", string(res.Stderr))
	logger.Info("Done")

	if err := EnsureResultsDir(cfg.ResultsDir); err != nil {
		logger.Error("Cannot create results dir", "path", cfg.ResultsDir, "error", err)
		return err
	}

	pull, err := executor.Execute(ctx, domain.PhasePull, func(ctx context.Context, stdout, stderr io.Writer) domain.CommandResult {
		return bridge.Pull(ctx, domain.DeviceResultFile, cfg.ResultsDir, stdout, stderr)
	})
	report.Pull = &pull
	if err != nil {
		return err
	}

	report.Pulled = ResultFileExists(cfg.ResultsDir)
	if !report.Pulled {
		attrs := []any{"stdout", string(pull.Stdout), "stderr", string(pull.Stderr)}
		if pull.Error != nil && !errors.Is(pull.Error, context.Canceled) {
			attrs = append(attrs, "error", pull.Error)
		}
		logger.Error("Failed to pull result file.", attrs...)
	}

	logger.Info("Results are stored under: " + report.ResultsPath)
	return nil
}

func (o *Orchestrator) getFormatter(cfg *domain.RunConfig) ResultHandler {
	switch cfg.Format {
	case domain.FormatRaw:
		return ui.NewRawFormatter(o.stderr)
	case domain.FormatJSON:
		return ui.NewJSONFormatter(cfg, o.stdout, o.stderr)
	case domain.FormatTUI:
		return ui.NewTUIFormatter(cfg)
	default:
		return ui.NewRawFormatter(o.stderr)
	}
}
