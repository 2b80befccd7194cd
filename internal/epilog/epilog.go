// Package epilog turns a gpu_burn invocation record into a process exit
// code for a scheduler epilog hook. A non-zero exit from the hook drains
// the node.
package epilog

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nodeops/gpuburn/internal/record"
)

// Parse reads the full stream and decodes it as an invocation record.
// Malformed input propagates as an error; there is no recovery.
func Parse(r io.Reader) (*record.InvocationRecord, error) {
	return record.Decode(r)
}

// Emit writes the record to w as a single JSON line with double quotes
// escaped, safe to interpolate into a downstream shell command.
func Emit(w io.Writer, rec *record.InvocationRecord) error {
	line, err := rec.EscapeLine()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

// Run parses flags, loads the record from -p, optionally echoes it, and
// returns the record's returncode for use as the process exit status.
//
// The returncode is passed through without range validation; the host
// platform applies its own truncation (mod 256 on Unix).
func Run(args []string, stdout io.Writer) (int, error) {
	fs := flag.NewFlagSet("gpuburn-epilog", flag.ContinueOnError)
	var (
		debug  bool
		path   string
		output bool
	)
	fs.BoolVar(&debug, "d", false, "run in debug mode")
	fs.BoolVar(&debug, "debug", false, "run in debug mode")
	fs.StringVar(&path, "p", "", "path to the gpu_burn output file")
	fs.StringVar(&path, "path", "", "path to the gpu_burn output file")
	fs.BoolVar(&output, "o", false, "echo the record to stdout")
	fs.BoolVar(&output, "output", false, "echo the record to stdout")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	if path == "" {
		return 0, fmt.Errorf("missing -p: path to the gpu_burn output file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening gpu_burn output: %w", err)
	}
	defer f.Close()

	rec, err := Parse(f)
	if err != nil {
		return 0, err
	}

	if output {
		if err := Emit(stdout, rec); err != nil {
			return 0, err
		}
	}

	if debug {
		log.Printf("using return code %d from %s", rec.Returncode, path)
	}
	return rec.Returncode, nil
}
