package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

// RawFormatter prints one banner per bridge phase. Bridge output is captured
// and logged by the runner, not streamed.
type RawFormatter struct {
	w io.Writer
}

func NewRawFormatter(w io.Writer) *RawFormatter {
	return &RawFormatter{w: w}
}

func (f *RawFormatter) GetOutputWriters() (stdout, stderr io.Writer) {
	return nil, nil
}

func (f *RawFormatter) OnStart(phase domain.Phase) {
	fmt.Fprintf(f.w, "[ %s ]\n", phase)
}

func (f *RawFormatter) OnComplete(phase domain.Phase, result domain.CommandResult) {
	fmt.Fprintf(f.w, "[ %s completed in %v", phase, result.Duration.Round(time.Millisecond))

	switch {
	case result.Error != nil && !result.Launched:
		fmt.Fprintf(f.w, " - NOT STARTED: %v", result.Error)
	case result.Error != nil:
		fmt.Fprintf(f.w, " - exit code %d, error: %v", result.ExitCode, result.Error)
	default:
		fmt.Fprintf(f.w, " - exit code %d", result.ExitCode)
	}
	fmt.Fprintln(f.w, " ]")
}

func (f *RawFormatter) OnFinish(report *domain.RunReport) {
	if report.Verdict == domain.VerdictPass {
		fmt.Fprintln(f.w, "[ PASS ]")
		return
	}
	fmt.Fprintln(f.w, "[ FAIL ]")
}
