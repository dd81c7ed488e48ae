package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

type CommandJSON struct {
	Args     []string `json:"args"`
	ExitCode int      `json:"exit_code"`
	Duration float64  `json:"duration_ms"`
	Stdout   string   `json:"stdout,omitempty"`
	Stderr   string   `json:"stderr,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type ReportJSON struct {
	Target         string                 `json:"target"`
	Verdict        domain.Verdict         `json:"verdict"`
	TimeoutMS      string                 `json:"timeout_ms"`
	Classification *domain.Classification `json:"classification,omitempty"`
	Instrument     *CommandJSON           `json:"instrument,omitempty"`
	Pull           *CommandJSON           `json:"pull,omitempty"`
	ResultsPath    string                 `json:"results_path"`
	Pulled         bool                   `json:"pulled"`
	Error          string                 `json:"error,omitempty"`
}

// JSONFormatter writes a single report to w once the run is over. Encoding
// failures are reported on errW.
type JSONFormatter struct {
	config *domain.RunConfig
	w      io.Writer
	errW   io.Writer
}

func NewJSONFormatter(cfg *domain.RunConfig, w, errW io.Writer) *JSONFormatter {
	return &JSONFormatter{
		config: cfg,
		w:      w,
		errW:   errW,
	}
}

func (f *JSONFormatter) GetOutputWriters() (stdout, stderr io.Writer) {
	return nil, nil
}

func (f *JSONFormatter) OnStart(phase domain.Phase) {
	// JSON formatter doesn't output progress
}

func (f *JSONFormatter) OnComplete(phase domain.Phase, result domain.CommandResult) {}

func (f *JSONFormatter) OnFinish(report *domain.RunReport) {
	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewReportJSON(f.config, report)); err != nil {
		fmt.Fprintf(f.errW, "Error encoding JSON output: %v\n", err)
	}
}

// NewReportJSON flattens report into its JSON form.
func NewReportJSON(cfg *domain.RunConfig, report *domain.RunReport) ReportJSON {
	out := ReportJSON{
		Target:      report.Target,
		Verdict:     report.Verdict,
		TimeoutMS:   cfg.Timeout(),
		Instrument:  commandJSON(report.Instrument),
		Pull:        commandJSON(report.Pull),
		ResultsPath: report.ResultsPath,
		Pulled:      report.Pulled,
	}
	if report.Classification.Failed {
		c := report.Classification
		out.Classification = &c
	}
	if report.Err != nil {
		out.Error = report.Err.Error()
	}
	return out
}

func commandJSON(res *domain.CommandResult) *CommandJSON {
	if res == nil {
		return nil
	}
	c := &CommandJSON{
		Args:     res.Args,
		ExitCode: res.ExitCode,
		Duration: float64(res.Duration.Milliseconds()),
		Stdout:   string(res.Stdout),
		Stderr:   string(res.Stderr),
	}
	if res.Error != nil {
		c.Error = res.Error.Error()
	}
	return c
}
