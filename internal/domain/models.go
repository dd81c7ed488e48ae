package domain

import (
	"time"
)

type OutputFormat string

const (
	FormatTUI  OutputFormat = "tui"
	FormatJSON OutputFormat = "json"
	FormatRaw  OutputFormat = "raw"
)

// Fixed coordinates of the page cycler instrumentation inside DumpRenderTree.
const (
	InstrumentationPackage = "com.android.dumprendertree"
	InstrumentationRunner  = InstrumentationPackage + "/.LayoutTestsAutoRunner"
	InstrumentationTest    = InstrumentationPackage + ".LoadTestsAutoTest#runPageCyclerTest"

	DeviceResultFile = "/sdcard/load_test_result.txt"
	ResultFileName   = "load_test_result.txt"
)

const (
	DefaultBridgePath = "adb"
	DefaultResultsDir = "layout-test-results"
	DefaultTimeoutMS  = "0"
)

type Phase string

const (
	PhaseInstrument Phase = "instrument"
	PhasePull       Phase = "pull"
)

// RunConfig holds everything needed for one page cycler run. It is not
// modified once the run has started.
type RunConfig struct {
	Target        string
	TimeoutMS     string
	Verbose       bool
	BridgePath    string
	BridgeOptions string
	ResultsDir    string
	DrawTime      bool
	SaveImage     string
	Format        OutputFormat
}

// Timeout returns the value forwarded to the instrumentation, "0" when unset.
func (c *RunConfig) Timeout() string {
	if c.TimeoutMS == "" {
		return DefaultTimeoutMS
	}
	return c.TimeoutMS
}

// CommandResult is the fully buffered outcome of one bridge invocation.
type CommandResult struct {
	Args       []string
	ExitCode   int
	Stdout     []byte
	Stderr     []byte
	Duration   time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
	Launched   bool
	Error      error
}

type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// RunReport summarizes a run for the output formatters.
type RunReport struct {
	Target         string
	Verdict        Verdict
	Classification Classification
	Instrument     *CommandResult
	Pull           *CommandResult
	ResultsPath    string
	Pulled         bool
	Err            error
}
