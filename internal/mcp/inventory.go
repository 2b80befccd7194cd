package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inventoryParams struct{}

func (h *handler) inventoryHandler(ctx context.Context, req *mcp.CallToolRequest, _ inventoryParams) (*mcp.CallToolResult, any, error) {
	if h.harness.GPUs == nil {
		return errorResult("GPU inventory is not available on this node")
	}
	if err := h.harness.GPUs.Init(); err != nil {
		return errorResult(fmt.Sprintf("GPU inventory failed: %v", err))
	}
	defer h.harness.GPUs.Shutdown()

	devices, err := h.harness.GPUs.Devices()
	if err != nil {
		return errorResult(fmt.Sprintf("GPU inventory failed: %v", err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "GPUs (%d):\n", len(devices))
	for _, d := range devices {
		fmt.Fprintf(&b, "  %d: %s %s (%d MB, driver %s)\n",
			d.Index, d.Name, d.UUID, d.MemoryTotalMB, d.DriverVersion)
	}
	if h.harness.MinGPUs > 0 {
		if len(devices) < h.harness.MinGPUs {
			fmt.Fprintf(&b, "\nBelow the configured floor of %d: burn runs will fail preflight.\n", h.harness.MinGPUs)
		} else {
			fmt.Fprintf(&b, "\nMeets the configured floor of %d.\n", h.harness.MinGPUs)
		}
	}
	return textResult(b.String())
}
