// Command gpuburn-epilog converts a gpu_burn invocation record into a
// process exit code for the scheduler's epilog hook. A non-zero exit
// drains the node.
package main

import (
	"log"
	"os"

	"github.com/nodeops/gpuburn/internal/epilog"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gpuburn-epilog: ")

	code, err := epilog.Run(os.Args[1:], os.Stdout)
	if err != nil {
		// Malformed input or unreadable file: fail visibly with a
		// generic error status, never a domain exit code.
		log.Fatal(err)
	}

	// The returncode passes through unmodified; Unix truncates it mod 256.
	os.Exit(code)
}
