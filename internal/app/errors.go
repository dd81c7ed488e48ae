package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

// ErrNotDirectory is wrapped by ResultsDirError when the results path exists
// but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// InstrumentationError reports a run classified as failed from the
// instrumentation output.
type InstrumentationError struct {
	Classification domain.Classification
}

func (e *InstrumentationError) Error() string {
	c := e.Classification
	return fmt.Sprintf("instrumentation failed: %s at output line %d: %q", c.Marker, c.LineNo, c.Line)
}

// ResultsDirError reports a results directory that cannot be created or used.
type ResultsDirError struct {
	Path string
	Err  error
}

func (e *ResultsDirError) Error() string {
	return fmt.Sprintf("cannot create results dir %s: %v", e.Path, e.Err)
}

func (e *ResultsDirError) Unwrap() error {
	return e.Err
}

// BridgeError reports a bridge invocation that could not be started.
type BridgeError struct {
	Phase domain.Phase
	Args  []string
	Err   error
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("%s: cannot run %q: %v", e.Phase, strings.Join(e.Args, " "), e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}
