// Command gpuburn wraps the gpu_burn stress-test binary: it validates the
// burn root, runs the binary with a hard timeout from inside that root,
// and prints one JSON invocation record for downstream epilog parsing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	gpuburn "github.com/nodeops/gpuburn"
	"github.com/nodeops/gpuburn/internal/burn"
	"github.com/nodeops/gpuburn/internal/config"
	"github.com/nodeops/gpuburn/internal/gpu"
	"github.com/nodeops/gpuburn/internal/report"
	"github.com/nodeops/gpuburn/internal/runner"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gpuburn: ")

	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gpuburn", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gpuburn [flags] [ARGS...]

Runs the gpu_burn binary from its root directory and prints one JSON
invocation record. Positional ARGS are forwarded to the binary verbatim,
before the duration token. The wrapper always exits 0 when the invocation
completed; the binary's exit code is data in the record, not the wrapper's
exit status.`)
		fs.PrintDefaults()
	}

	var (
		debug      bool
		timeSecs   int
		root       string
		configPath string
		minGPUs    int
		version    bool
	)
	fs.BoolVar(&debug, "d", false, "run in debug mode")
	fs.BoolVar(&debug, "debug", false, "run in debug mode")
	fs.IntVar(&timeSecs, "t", 0, "burn duration in seconds (default 60; timeout is twice this)")
	fs.IntVar(&timeSecs, "time_secs", 0, "burn duration in seconds (default 60)")
	fs.StringVar(&root, "gbr", "", "gpu_burn root directory (default "+config.DefaultRoot+")")
	fs.StringVar(&root, "gpu_burn_root", "", "gpu_burn root directory")
	fs.StringVar(&configPath, "config", "", "path to gpuburn.yaml (default "+config.DefaultPath+")")
	fs.IntVar(&minGPUs, "min-gpus", -1, "fail the run when fewer GPUs are visible (0 disables)")
	fs.BoolVar(&version, "version", false, "print the version and exit")
	_ = fs.Parse(args)

	if version {
		fmt.Println(gpuburn.Version)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if root == "" {
		root = cfg.Root()
	}
	if timeSecs == 0 {
		timeSecs = cfg.TimeSecs()
	}
	if minGPUs < 0 {
		minGPUs = cfg.MinGPUs
	}

	debugf := func(format string, fargs ...any) {
		if debug {
			log.Printf(format, fargs...)
		}
	}
	debugf("root=%s time_secs=%d forwarded args=%q", root, timeSecs, fs.Args())

	h := &burn.Harness{
		Root:    root,
		Runner:  &runner.Runner{MaxOutput: cfg.MaxOutputBytes()},
		MinGPUs: minGPUs,
	}
	if cfg.StoreDir != "" {
		h.Store = report.NewDiskStore(cfg.StoreDir)
	}
	if minGPUs > 0 {
		h.GPUs = gpu.NewNVMLProvider()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inv, err := h.Execute(ctx, fs.Args(), timeSecs)
	if err != nil {
		return err
	}

	debugf("run %s finished: returncode=%d timed_out=%v",
		inv.ID, inv.Record.Returncode, inv.TimedOut)

	return inv.Record.Encode(os.Stdout)
}
