package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/msaeedsaeedi/pagecycler/internal/app"
	"github.com/msaeedsaeedi/pagecycler/internal/config"
	"github.com/msaeedsaeedi/pagecycler/internal/domain"
	"github.com/msaeedsaeedi/pagecycler/internal/logging"
)

const version = "0.1.0"

const usageHint = "need a URL, e.g. file:///sdcard/android/page_cycler/moz/start.html"

type options struct {
	timeoutMS  string
	verbose    bool
	adbOptions string
	resultsDir string
	drawTime   bool
	saveImage  string
	adb        string
	json       bool
	raw        bool
	tui        bool
	configPath string
}

func outputFormat(opts *options) (domain.OutputFormat, error) {
	n := 0
	format := domain.FormatRaw
	if opts.raw {
		n++
	}
	if opts.json {
		n++
		format = domain.FormatJSON
	}
	if opts.tui {
		n++
		format = domain.FormatTUI
	}
	if n > 1 {
		return "", domain.ErrConflictingFormats
	}
	return format, nil
}

// applyConfig fills every option not given on the command line from the
// config file. An unknown format in the file is an error.
func applyConfig(flags *pflag.FlagSet, opts *options, f *config.File) error {
	setString := func(name string, dst *string, v *string) {
		if v != nil && !flags.Changed(name) {
			*dst = *v
		}
	}
	setBool := func(name string, dst *bool, v *bool) {
		if v != nil && !flags.Changed(name) {
			*dst = *v
		}
	}

	setString("adb", &opts.adb, f.Adb)
	setString("adb-options", &opts.adbOptions, f.AdbOptions)
	setString("results-directory", &opts.resultsDir, f.ResultsDirectory)
	setString("time-out-ms", &opts.timeoutMS, f.TimeOutMS)
	setString("save-image", &opts.saveImage, f.SaveImage)
	setBool("drawtime", &opts.drawTime, f.DrawTime)
	setBool("verbose", &opts.verbose, f.Verbose)

	if f.Format != nil && !flags.Changed("raw") && !flags.Changed("json") && !flags.Changed("tui") {
		switch domain.OutputFormat(*f.Format) {
		case domain.FormatJSON:
			opts.json = true
		case domain.FormatTUI:
			opts.tui = true
		case domain.FormatRaw:
			opts.raw = true
		default:
			return fmt.Errorf("%w: %q in config", domain.ErrInvalidFormat, *f.Format)
		}
	}
	return nil
}

func buildRunConfig(args []string, opts *options) (*domain.RunConfig, error) {
	format, err := outputFormat(opts)
	if err != nil {
		return nil, err
	}
	return &domain.RunConfig{
		Target:        strings.Join(args, " "),
		TimeoutMS:     opts.timeoutMS,
		Verbose:       opts.verbose,
		BridgePath:    opts.adb,
		BridgeOptions: opts.adbOptions,
		ResultsDir:    opts.resultsDir,
		DrawTime:      opts.drawTime,
		SaveImage:     opts.saveImage,
		Format:        format,
	}, nil
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), usageHint)
		return domain.ErrNoTarget
	}

	f, path, err := config.Resolve(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyConfig(cmd.Flags(), opts, f); err != nil {
		return err
	}

	cfg, err := buildRunConfig(args, opts)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	if path != "" {
		logger.Debug("Loaded config", "path", path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator := app.NewOrchestrator(logger, app.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	return orchestrator.Execute(ctx, cfg)
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagecycler [flags] <url>...",
		Short: "Run the Android page cycler load test",
		Long: `pagecycler starts the DumpRenderTree page cycler instrumentation over adb,
fails when the instrumentation reports a failure, and pulls
/sdcard/load_test_result.txt into the results directory.

The URL and --save-image values reach the device shell inside double
quotes, so shell characters such as & need no backslash: write
"...start.html?auto=1&iterations=10", not "...?auto=1\&iterations=10".

Example:
  pagecycler "file:///sdcard/android/page_cycler/moz/start.html?auto=1&iterations=10"`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.timeoutMS, "time-out-ms", "t", "", "set the timeout for each test")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "include debug-level logging")
	flags.StringVarP(&opts.adbOptions, "adb-options", "a", "", "pass options to adb, such as -d -e, etc")
	flags.StringVarP(&opts.resultsDir, "results-directory", "r", domain.DefaultResultsDir, "directory which results are stored")
	flags.BoolVarP(&opts.drawTime, "drawtime", "d", false, "log draw time for each page rendered")
	flags.StringVarP(&opts.saveImage, "save-image", "s", "", "stores rendered page to a location on device")
	flags.StringVar(&opts.adb, "adb", domain.DefaultBridgePath, "adb binary to use")
	flags.BoolVar(&opts.json, "json", false, "Print a JSON report on stdout")
	flags.BoolVar(&opts.raw, "raw", false, "Plain progress output (default)")
	flags.BoolVar(&opts.tui, "tui", false, "Interactive terminal view")
	flags.StringVar(&opts.configPath, "config", "", "config file (default .pagecycler.yaml, then XDG config dir)")
	cmd.Version = version

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return cmd
}

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	rootCmd := newRootCmd(opts)
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// The hint is already printed and the failures below are already logged.
	var (
		instErr   *app.InstrumentationError
		dirErr    *app.ResultsDirError
		bridgeErr *app.BridgeError
		usageErr  *usageError
	)
	switch {
	case errors.Is(err, domain.ErrNoTarget),
		errors.As(err, &instErr),
		errors.As(err, &dirErr),
		errors.As(err, &bridgeErr):
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "\nExecution cancelled")
	case errors.As(err, &usageErr):
		fmt.Fprintln(stderr, "Error:", err)
		fmt.Fprintln(stderr)
		rootCmd.SetOut(stderr)
		_ = rootCmd.Usage()
	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	return 1
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
