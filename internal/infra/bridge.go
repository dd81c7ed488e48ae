package infra

import (
	"context"
	"io"
	"strings"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

// InstrumentRequest carries the per-run values of the page cycler
// instrumentation command.
type InstrumentRequest struct {
	Path      string
	TimeoutMS string
	DrawTime  bool
	SaveImage string
}

// Bridge builds and runs adb command lines.
type Bridge struct {
	path    string
	options []string
	runner  Runner
}

// NewBridge returns a Bridge invoking the binary at path. options is the raw
// --adb-options string; it is split on whitespace and passed through as is.
func NewBridge(path, options string, runner Runner) *Bridge {
	return &Bridge{
		path:    path,
		options: strings.Fields(options),
		runner:  runner,
	}
}

// Prefix returns the bridge binary followed by the extra options.
func (b *Bridge) Prefix() []string {
	return append([]string{b.path}, b.options...)
}

// InstrumentArgs returns the argument vector starting the page cycler test.
// adb shell joins its arguments into one device shell command line, so the
// path and image values are wrapped in double quotes here.
func (b *Bridge) InstrumentArgs(req InstrumentRequest) []string {
	timeout := req.TimeoutMS
	if timeout == "" {
		timeout = domain.DefaultTimeoutMS
	}

	args := b.Prefix()
	args = append(args,
		"shell", "am", "instrument",
		"-e", "class", domain.InstrumentationTest,
		"-e", "path", quote(req.Path),
		"-e", "timeout", timeout,
	)
	if req.DrawTime {
		args = append(args, "-e", "drawtime", "true")
	}
	if req.SaveImage != "" {
		args = append(args, "-e", "saveimage", quote(req.SaveImage))
	}
	return append(args, "-w", domain.InstrumentationRunner)
}

// PullArgs returns the argument vector copying remote into localDir.
func (b *Bridge) PullArgs(remote, localDir string) []string {
	return append(b.Prefix(), "pull", remote, localDir)
}

func (b *Bridge) Instrument(ctx context.Context, req InstrumentRequest, stdout, stderr io.Writer) domain.CommandResult {
	return b.runner.Run(ctx, b.InstrumentArgs(req), stdout, stderr)
}

func (b *Bridge) Pull(ctx context.Context, remote, localDir string, stdout, stderr io.Writer) domain.CommandResult {
	return b.runner.Run(ctx, b.PullArgs(remote, localDir), stdout, stderr)
}

func quote(s string) string {
	return `"` + s + `"`
}
