package app

import (
	"context"
	"errors"
	"io"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

type ResultHandler interface {
	OnStart(phase domain.Phase)
	OnComplete(phase domain.Phase, result domain.CommandResult)
	OnFinish(report *domain.RunReport)
	GetOutputWriters() (stdout, stderr io.Writer)
}

// PhaseFunc runs one bridge invocation, copying output to the given writers.
type PhaseFunc func(ctx context.Context, stdout, stderr io.Writer) domain.CommandResult

// PhaseExecutor runs bridge phases one at a time and reports them to a
// ResultHandler.
type PhaseExecutor struct {
	handler ResultHandler
}

func NewPhaseExecutor(handler ResultHandler) *PhaseExecutor {
	return &PhaseExecutor{handler: handler}
}

// Execute runs fn as phase. The returned error is only set for cancellation;
// everything else is left in the result for the caller to judge.
func (e *PhaseExecutor) Execute(ctx context.Context, phase domain.Phase, fn PhaseFunc) (domain.CommandResult, error) {
	select {
	case <-ctx.Done():
		return domain.CommandResult{}, ctx.Err()
	default:
	}

	e.handler.OnStart(phase)

	stdoutWriter, stderrWriter := e.handler.GetOutputWriters()
	result := fn(ctx, stdoutWriter, stderrWriter)

	e.handler.OnComplete(phase, result)

	if errors.Is(result.Error, context.Canceled) {
		return result, context.Canceled
	}
	return result, nil
}
