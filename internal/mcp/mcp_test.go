package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nodeops/gpuburn/internal/burn"
	"github.com/nodeops/gpuburn/internal/gpu"
	"github.com/nodeops/gpuburn/internal/report"
	"github.com/nodeops/gpuburn/internal/runner"
)

// fakeRoot creates a burn root containing compare.ptx and a gpu_burn shell
// script with the given body.
func fakeRoot(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, burn.KernelName), []byte("// ptx"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, burn.BinaryName), []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// setup creates a gpuburn MCP server + client over in-memory transports.
func setup(t *testing.T, root string, store report.Store) *mcp.ClientSession {
	t.Helper()
	return setupHarness(t, &burn.Harness{
		Root:   root,
		Runner: &runner.Runner{MaxOutput: 1 << 20},
		Store:  store,
	}, store)
}

func setupHarness(t *testing.T, h *burn.Harness, store report.Store) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(h, store, 30)

	ct, st := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}

	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})

	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return res
}

func resultText(r *mcp.CallToolResult) string {
	var parts []string
	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// --- burn_validate ---

func TestBurnValidate_OK(t *testing.T) {
	root := fakeRoot(t, "exit 0\n")
	cs := setup(t, root, nil)

	res := callTool(t, cs, "burn_validate", nil)
	text := resultText(res)
	if res.IsError {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "valid gpu_burn root") {
		t.Errorf("expected validation success, got:\n%s", text)
	}
}

func TestBurnValidate_MissingKernel(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, burn.BinaryName), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	cs := setup(t, root, nil)

	res := callTool(t, cs, "burn_validate", nil)
	text := resultText(res)
	if !res.IsError {
		t.Fatalf("expected error result, got:\n%s", text)
	}
	if !strings.Contains(text, burn.KernelName) {
		t.Errorf("expected missing artifact name in output, got:\n%s", text)
	}
}

func TestBurnValidate_RootOverride(t *testing.T) {
	cs := setup(t, fakeRoot(t, "exit 0\n"), nil)

	res := callTool(t, cs, "burn_validate", map[string]any{"root": "/does/not/exist"})
	text := resultText(res)
	if !res.IsError {
		t.Fatalf("expected error result, got:\n%s", text)
	}
	if !strings.Contains(text, "Root directory missing") {
		t.Errorf("expected root error, got:\n%s", text)
	}
}

// --- burn_run ---

func TestBurnRun(t *testing.T) {
	root := fakeRoot(t, `echo "args: $@"`+"\n")
	store := report.NewLRUStore(5, report.NewDiskStore(t.TempDir()))
	cs := setup(t, root, store)

	res := callTool(t, cs, "burn_run", map[string]any{
		"time_secs": 10,
		"args":      []string{"-d"},
	})
	text := resultText(res)
	if res.IsError {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "Returncode: 0") {
		t.Errorf("expected Returncode: 0, got:\n%s", text)
	}
	if !strings.Contains(text, "args: -d 10") {
		t.Errorf("expected forwarded args and duration in stdout, got:\n%s", text)
	}
	if !strings.Contains(text, "Run:") {
		t.Errorf("expected Run: header, got:\n%s", text)
	}
}

func TestBurnRun_InvalidRoot(t *testing.T) {
	cs := setup(t, filepath.Join(t.TempDir(), "nope"), nil)

	res := callTool(t, cs, "burn_run", map[string]any{"time_secs": 10})
	if !res.IsError {
		t.Fatalf("expected error result, got:\n%s", resultText(res))
	}
}

// --- gpu_inventory ---

func TestGPUInventory(t *testing.T) {
	h := &burn.Harness{
		Root:   fakeRoot(t, "exit 0\n"),
		Runner: &runner.Runner{MaxOutput: 1 << 20},
		GPUs: &gpu.MockProvider{Inventory: []gpu.Device{
			{Index: 0, UUID: "GPU-aaa", Name: "A100-SXM4-80GB", MemoryTotalMB: 81920, DriverVersion: "560.35"},
			{Index: 1, UUID: "GPU-bbb", Name: "A100-SXM4-80GB", MemoryTotalMB: 81920, DriverVersion: "560.35"},
		}},
		MinGPUs: 8,
	}
	cs := setupHarness(t, h, nil)

	res := callTool(t, cs, "gpu_inventory", nil)
	text := resultText(res)
	if res.IsError {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "GPUs (2)") {
		t.Errorf("expected device count header, got:\n%s", text)
	}
	if !strings.Contains(text, "GPU-aaa") || !strings.Contains(text, "A100-SXM4-80GB") {
		t.Errorf("expected device identity in output, got:\n%s", text)
	}
	if !strings.Contains(text, "driver 560.35") {
		t.Errorf("expected driver version in output, got:\n%s", text)
	}
	if !strings.Contains(text, "Below the configured floor of 8") {
		t.Errorf("expected floor warning, got:\n%s", text)
	}
}

func TestGPUInventory_NoProvider(t *testing.T) {
	cs := setup(t, fakeRoot(t, "exit 0\n"), nil)

	res := callTool(t, cs, "gpu_inventory", nil)
	if !res.IsError {
		t.Fatalf("expected error result without a provider, got:\n%s", resultText(res))
	}
}

// --- burn_report ---

func TestBurnReport(t *testing.T) {
	root := fakeRoot(t, "echo ok\n")
	store := report.NewLRUStore(5, report.NewDiskStore(t.TempDir()))
	cs := setup(t, root, store)

	runRes := callTool(t, cs, "burn_run", map[string]any{"time_secs": 10})
	text := resultText(runRes)

	// Extract the run ID from the "Run: <id> (...)" header.
	idx := strings.Index(text, "Run: ")
	if idx < 0 {
		t.Fatalf("no Run: header in output:\n%s", text)
	}
	runID := strings.Fields(text[idx:])[1]

	res := callTool(t, cs, "burn_report", map[string]any{"run_id": runID})
	reportText := resultText(res)
	if res.IsError {
		t.Fatalf("unexpected error: %s", reportText)
	}
	if !strings.Contains(reportText, runID) {
		t.Errorf("expected run ID in report, got:\n%s", reportText)
	}
	if !strings.Contains(reportText, "Returncode: 0") {
		t.Errorf("expected Returncode: 0, got:\n%s", reportText)
	}
}

func TestBurnReport_MissingRunID(t *testing.T) {
	cs := setup(t, fakeRoot(t, "exit 0\n"), nil)

	res := callTool(t, cs, "burn_report", nil)
	if !res.IsError {
		t.Fatalf("expected error result, got:\n%s", resultText(res))
	}
}
