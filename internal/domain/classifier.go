package domain

import "strings"

// Marker is one entry of the failure table applied to instrumentation output.
type Marker struct {
	Name  string
	Fails func(line string) bool
}

const (
	codeMarker    = "INSTRUMENTATION_CODE"
	codeOffset    = len(codeMarker + ": ")
	codeSuccess   = "-1"
	failedMarker  = "INSTRUMENTATION_FAILED"
	crashedMarker = "Process crashed."
)

// FailureMarkers lists the failure checks in the order they are applied to
// each line.
var FailureMarkers = []Marker{
	{Name: codeMarker, Fails: nonSuccessCode},
	{Name: failedMarker, Fails: containsMarker(failedMarker)},
	{Name: crashedMarker, Fails: containsMarker(crashedMarker)},
}

// nonSuccessCode fails an INSTRUMENTATION_CODE line whose code is not -1.
// Anything after the fixed-width "INSTRUMENTATION_CODE: " prefix counts as
// the code, so a malformed line fails too.
func nonSuccessCode(line string) bool {
	if !strings.HasPrefix(line, codeMarker) {
		return false
	}
	code := ""
	if len(line) > codeOffset {
		code = line[codeOffset:]
	}
	return code != codeSuccess
}

func containsMarker(marker string) func(string) bool {
	return func(line string) bool {
		return strings.Contains(line, marker)
	}
}

// Classification is the outcome of scanning instrumentation output.
type Classification struct {
	Failed bool   `json:"failed"`
	Marker string `json:"marker,omitempty"`
	Line   string `json:"line,omitempty"`
	LineNo int    `json:"line_no,omitempty"`
}

// lineBreaks folds CRLF and bare CR into LF so that a result code written
// after a carriage-return progress line still starts its own line.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Classify scans output line by line, trimming each line, and stops at the
// first line that trips a failure marker.
func Classify(output []byte) Classification {
	n := 0
	for raw := range strings.Lines(lineBreaks.Replace(string(output))) {
		n++
		line := strings.TrimSpace(raw)
		for _, m := range FailureMarkers {
			if m.Fails(line) {
				return Classification{Failed: true, Marker: m.Name, Line: line, LineNo: n}
			}
		}
	}
	return Classification{}
}
