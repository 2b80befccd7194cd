package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nodeops/gpuburn/internal/burn"
)

type validateParams struct {
	Root string `json:"root,omitempty" jsonschema:"gpu_burn root directory to check. Defaults to the configured root."`
}

func (h *handler) validateHandler(ctx context.Context, req *mcp.CallToolRequest, params validateParams) (*mcp.CallToolResult, any, error) {
	root := params.Root
	if root == "" {
		root = h.harness.Root
	}

	err := burn.ValidateRoot(root)
	if err == nil {
		return textResult(fmt.Sprintf("%s is a valid gpu_burn root: %s and %s are present.",
			root, burn.BinaryName, burn.KernelName))
	}

	var rootErr *burn.RootError
	var artErr *burn.ArtifactError
	switch {
	case errors.As(err, &rootErr):
		return errorResult(fmt.Sprintf("Root directory missing: %v", err))
	case errors.As(err, &artErr):
		return errorResult(fmt.Sprintf("Artifact missing: %v", err))
	default:
		return errorResult(err.Error())
	}
}
