// Package gpuburn holds module-wide metadata for the gpu_burn harness.
package gpuburn

// Version is the harness version, stamped into release builds.
const Version = "0.3.0"
