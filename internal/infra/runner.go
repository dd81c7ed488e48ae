package infra

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

// Runner executes an argument vector and buffers its output.
type Runner interface {
	Run(ctx context.Context, args []string, stdoutWriter, stderrWriter io.Writer) domain.CommandResult
}

// CommandRunner spawns processes directly, never through a shell. Output is
// always captured in full; the optional writers only receive a copy.
type CommandRunner struct{}

func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

func (r *CommandRunner) Run(ctx context.Context, args []string, stdoutWriter, stderrWriter io.Writer) domain.CommandResult {
	result := domain.CommandResult{
		Args:      args,
		StartedAt: time.Now(),
	}

	if len(args) == 0 {
		result.FinishedAt = result.StartedAt
		result.ExitCode = -1
		result.Error = errors.New("empty command")
		return result
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	setupProcessGroup(cmd)
	cmd.Cancel = func() error {
		killProcess(cmd)
		return nil
	}

	var stdout, stderr bytes.Buffer

	if stdoutWriter != nil {
		cmd.Stdout = io.MultiWriter(&stdout, stdoutWriter)
	} else {
		cmd.Stdout = &stdout
	}

	if stderrWriter != nil {
		cmd.Stderr = io.MultiWriter(&stderr, stderrWriter)
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result.FinishedAt = time.Now()
	result.Duration = result.FinishedAt.Sub(result.StartedAt)
	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()
	result.Launched = cmd.Process != nil

	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			result.Error = context.Canceled
		} else {
			result.Error = err
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	return result
}
