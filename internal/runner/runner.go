// Package runner executes a child process with a hard timeout, a fixed
// working directory, and capped output capture.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// Runner executes commands with a bounded runtime.
type Runner struct {
	Timeout   time.Duration
	MaxOutput int // bytes per stream
}

// Run executes argv with dir as the child's working directory. The first
// element is the binary (resolved via PATH unless it contains a path
// separator), the rest are arguments. The directory is passed to the spawn
// call directly; the parent's working directory is never touched.
//
// A child that outlives the timeout is killed and reported as a normal
// result: empty stdout, a diagnostic stderr, and exit code 0. The zero
// exit code is what existing epilog hooks consume; TimedOut is the only
// in-process signal that the run was cut short rather than healthy.
func (r *Runner) Run(ctx context.Context, argv []string, dir string) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	timeout := r.Timeout
	maxOutput := r.MaxOutput

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runID := uuid.New().String()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	// Do not wait on the output pipes forever if a killed child left
	// grandchildren behind holding them open.
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: maxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: maxOutput}

	runErr := cmd.Run()

	if runErr != nil && ctx.Err() == context.DeadlineExceeded {
		return &Result{
			RunID:    runID,
			ExitCode: 0,
			Stderr: fmt.Sprintf(
				"process exceeded timeout threshold after running for more than %v: %v",
				timeout, runErr),
			TimedOut: true,
		}, nil
	}

	truncated := stdout.Len() >= maxOutput || stderr.Len() >= maxOutput

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Binary not found or other spawn error.
			return nil, fmt.Errorf("executing %s: %w", argv[0], runErr)
		}
	}

	return &Result{
		RunID:     runID,
		ExitCode:  exitCode,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: truncated,
	}, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
