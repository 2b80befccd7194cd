package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nodeops/gpuburn/internal/report"
)

type runParams struct {
	TimeSecs int      `json:"time_secs,omitempty" jsonschema:"burn duration in seconds; the child process timeout is twice this value. Defaults to the configured duration."`
	Args     []string `json:"args,omitempty" jsonschema:"extra arguments forwarded to the gpu_burn binary, before the duration token (e.g. -d for doubles)"`
	Root     string   `json:"root,omitempty" jsonschema:"override the gpu_burn root directory for this run"`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	harness := *h.harness
	if params.Root != "" {
		harness.Root = params.Root
	}

	timeSecs := params.TimeSecs
	if timeSecs <= 0 {
		timeSecs = h.timeSecs
	}

	inv, err := harness.Execute(ctx, params.Args, timeSecs)
	if err != nil {
		return errorResult(fmt.Sprintf("burn run failed: %v", err))
	}

	return textResult(formatInvocation(inv))
}

func formatInvocation(inv *report.Invocation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s (%s)\n", inv.ID, inv.When.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Duration: %gs requested\n", inv.Record.TimeSecs)
	if len(inv.Record.Arguments) > 0 {
		fmt.Fprintf(&b, "Arguments: %s\n", strings.Join(inv.Record.Arguments, " "))
	}
	fmt.Fprintf(&b, "Returncode: %d\n", inv.Record.Returncode)
	if inv.TimedOut {
		fmt.Fprintf(&b, "Timed out: yes (returncode 0 is NOT a health signal for this run)\n")
	}
	fmt.Fprintln(&b)

	if inv.Record.Stdout != "" {
		fmt.Fprintf(&b, "stdout:\n%s\n", strings.TrimRight(inv.Record.Stdout, "\n"))
	}
	if inv.Record.Stderr != "" {
		fmt.Fprintf(&b, "stderr:\n%s\n", strings.TrimRight(inv.Record.Stderr, "\n"))
	}
	return b.String()
}
