// Package report persists completed gpu_burn invocations so they can be
// retrieved later by run ID, e.g. from the diagnostic MCP tools.
package report

import (
	"time"

	"github.com/nodeops/gpuburn/internal/record"
)

// Invocation is one stored gpu_burn run. Record is the exact wire-format
// document handed to the epilog; TimedOut preserves the distinction the
// record itself erases (a timed-out run reports returncode 0).
type Invocation struct {
	ID       string                  `json:"id"`
	When     time.Time               `json:"when"`
	TimedOut bool                    `json:"timed_out,omitempty"`
	Record   record.InvocationRecord `json:"record"`
}

// Store persists and retrieves invocations.
type Store interface {
	Save(inv *Invocation) error
	Load(runID string) (*Invocation, error)
}
