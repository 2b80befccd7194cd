// Package burn orchestrates gpu_burn invocations: it validates the burn
// root, runs the binary with a bounded timeout from inside that root, and
// assembles the invocation record consumed by the epilog parser.
package burn

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nodeops/gpuburn/internal/gpu"
	"github.com/nodeops/gpuburn/internal/record"
	"github.com/nodeops/gpuburn/internal/report"
	"github.com/nodeops/gpuburn/internal/runner"
)

const (
	// DefaultRoot is where the gpu_burn RPM installs the binary and its
	// kernel file.
	DefaultRoot = "/usr/lib/gpu_burn"

	// BinaryName is the stress-test executable.
	BinaryName = "gpu_burn"

	// KernelName is the PTX kernel gpu_burn resolves relative to its
	// working directory; the binary does not function without it.
	KernelName = "compare.ptx"
)

// TimeoutMultiplier scales the requested burn duration into the hard
// timeout placed on the child process.
const TimeoutMultiplier = 2

// ValidateRoot confirms root is a directory containing both the gpu_burn
// binary and the compare.ptx kernel. It returns a *RootError or
// *ArtifactError identifying what is missing, and performs no side effects
// beyond filesystem reads.
func ValidateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return &RootError{Path: root}
	}
	for _, name := range []string{BinaryName, KernelName} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			return &ArtifactError{Root: root, Name: name}
		}
	}
	return nil
}

// Harness holds the dependencies for running gpu_burn on a node.
type Harness struct {
	Root   string
	Runner *runner.Runner

	// Store, when non-nil, receives every completed invocation.
	Store report.Store

	// GPUs and MinGPUs gate the run on device inventory. With a nil
	// provider or MinGPUs <= 0 no preflight is performed.
	GPUs    gpu.Provider
	MinGPUs int
}

// Execute runs ./gpu_burn from the burn root with the forwarded arguments
// and the duration appended as the final token. The child is bounded by
// TimeoutMultiplier x timeSecs; a timed-out run yields a record with empty
// stdout, a diagnostic stderr, and returncode 0.
//
// The root is validated before any process is spawned.
func (h *Harness) Execute(ctx context.Context, args []string, timeSecs int) (*report.Invocation, error) {
	if timeSecs <= 0 {
		return nil, fmt.Errorf("burn duration must be positive, got %d", timeSecs)
	}
	if args == nil {
		args = []string{}
	}
	if err := ValidateRoot(h.Root); err != nil {
		return nil, err
	}

	if inv, err := h.preflight(args, timeSecs); err != nil || inv != nil {
		if err != nil {
			return nil, err
		}
		return h.finish(inv)
	}

	r := *h.Runner
	r.Timeout = TimeoutMultiplier * time.Duration(timeSecs) * time.Second

	argv := make([]string, 0, len(args)+2)
	argv = append(argv, "./"+BinaryName)
	argv = append(argv, args...)
	argv = append(argv, strconv.Itoa(timeSecs))

	res, err := r.Run(ctx, argv, h.Root)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", BinaryName, err)
	}

	return h.finish(&report.Invocation{
		ID:       res.RunID,
		When:     time.Now().UTC(),
		TimedOut: res.TimedOut,
		Record: record.InvocationRecord{
			TimeSecs:   float64(timeSecs),
			Arguments:  args,
			Stdout:     res.Stdout,
			Stderr:     res.Stderr,
			Returncode: res.ExitCode,
		},
	})
}

// preflight checks the node's GPU inventory when a provider is attached.
// A device count below MinGPUs short-circuits to a failing record without
// spawning the binary.
func (h *Harness) preflight(args []string, timeSecs int) (*report.Invocation, error) {
	if h.GPUs == nil || h.MinGPUs <= 0 {
		return nil, nil
	}
	if err := h.GPUs.Init(); err != nil {
		return nil, fmt.Errorf("gpu preflight: %w", err)
	}
	defer h.GPUs.Shutdown()

	count, err := h.GPUs.DeviceCount()
	if err != nil {
		return nil, fmt.Errorf("gpu preflight: %w", err)
	}
	if count >= h.MinGPUs {
		return nil, nil
	}

	return &report.Invocation{
		ID:   uuid.New().String(),
		When: time.Now().UTC(),
		Record: record.InvocationRecord{
			TimeSecs:  float64(timeSecs),
			Arguments: args,
			Stderr: fmt.Sprintf("gpu preflight failed: found %d GPUs, need at least %d",
				count, h.MinGPUs),
			Returncode: 1,
		},
	}, nil
}

func (h *Harness) finish(inv *report.Invocation) (*report.Invocation, error) {
	if h.Store != nil {
		if err := h.Store.Save(inv); err != nil {
			return nil, fmt.Errorf("persisting invocation %s: %w", inv.ID, err)
		}
	}
	return inv, nil
}
