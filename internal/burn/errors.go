package burn

import "fmt"

// RootError reports that the gpu_burn root directory does not exist or is
// not a directory.
type RootError struct {
	Path string
}

func (e *RootError) Error() string {
	return fmt.Sprintf("gpu_burn root directory does not exist: %s", e.Path)
}

// ArtifactError reports that a required file is missing from the gpu_burn
// root. Name identifies exactly which artifact is absent.
type ArtifactError struct {
	Root string
	Name string // BinaryName or KernelName
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("required artifact %s not found in %s", e.Name, e.Root)
}
