// Command gpuburn-mcp serves the gpu_burn harness over MCP for
// interactive node triage. It speaks stdio by default, or streamable HTTP
// with -http.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nodeops/gpuburn/internal/burn"
	"github.com/nodeops/gpuburn/internal/config"
	"github.com/nodeops/gpuburn/internal/gpu"
	gbmcp "github.com/nodeops/gpuburn/internal/mcp"
	"github.com/nodeops/gpuburn/internal/report"
	"github.com/nodeops/gpuburn/internal/runner"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gpuburn-mcp: ")

	fs := flag.NewFlagSet("gpuburn-mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	configPath := fs.String("config", "", "path to gpuburn.yaml (default "+config.DefaultPath+")")
	_ = fs.Parse(os.Args[1:])

	if *instructions {
		fmt.Print(gbmcp.Instructions)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := serve(ctx, *configPath, *httpAddr); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, configPath, httpAddr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	disk := report.NewDiskStore(cfg.StoreDir)
	store := report.NewLRUStore(5, disk)

	// The provider is always attached here so the gpu_inventory tool
	// works; the burn preflight itself stays gated on min_gpus.
	h := &burn.Harness{
		Root:    cfg.Root(),
		Runner:  &runner.Runner{MaxOutput: cfg.MaxOutputBytes()},
		Store:   store,
		GPUs:    gpu.NewNVMLProvider(),
		MinGPUs: cfg.MinGPUs,
	}

	server := gbmcp.NewServer(h, store, cfg.TimeSecs())

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
