// Package mcp provides the gpuburn diagnostic MCP server, exposing the
// burn harness as tools for interactive node triage.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	gpuburn "github.com/nodeops/gpuburn"
	"github.com/nodeops/gpuburn/internal/burn"
	"github.com/nodeops/gpuburn/internal/report"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	harness  *burn.Harness
	store    report.Store
	timeSecs int // default burn duration when a tool call omits one
}

// NewServer creates an MCP server with all gpuburn tools registered.
// defaultTimeSecs is used when a burn_run call does not specify a duration.
func NewServer(h *burn.Harness, store report.Store, defaultTimeSecs int) *mcp.Server {
	hd := &handler{harness: h, store: store, timeSecs: defaultTimeSecs}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "gpuburn", Version: gpuburn.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "burn_validate",
		Description: `Check that a gpu_burn root directory is usable.

Confirms the directory exists and contains both the gpu_burn binary and the
compare.ptx kernel file, and reports exactly which artifact is missing.`,
	}, hd.validateHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "burn_run",
		Description: `Run the gpu_burn stress test and return its invocation record.

The binary runs from inside the burn root with a hard timeout of twice the
requested duration. A timed-out run reports returncode 0 with a diagnostic
stderr. Results are stored for retrieval via burn_report.`,
	}, hd.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "gpu_inventory",
		Description: `List the GPUs visible to the driver on this node.

Returns each device's index, name, UUID, memory, and driver version, and
whether the count meets the configured preflight floor. Useful before a
burn_run to confirm the node sees all of its GPUs.`,
	}, hd.inventoryHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "burn_report",
		Description: `Retrieve a stored gpu_burn invocation by run ID.

Use the run_id from a burn_run result. Returns the record exactly as the
epilog parser would consume it, plus whether the run timed out.`,
	}, hd.reportHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
