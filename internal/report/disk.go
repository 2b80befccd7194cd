package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore writes invocations as JSON files, one per run ID.
type DiskStore struct {
	mu  sync.Mutex
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir. When dir is empty a
// temp directory is created lazily on the first Save.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save writes an invocation as a JSON file to disk.
func (s *DiskStore) Save(inv *Invocation) error {
	dir, err := s.ensureDir()
	if err != nil {
		return err
	}
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("marshalling invocation %s: %w", inv.ID, err)
	}
	path := filepath.Join(dir, inv.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing invocation %s: %w", inv.ID, err)
	}
	return nil
}

// Load reads an invocation from disk.
func (s *DiskStore) Load(runID string) (*Invocation, error) {
	dir, err := s.ensureDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, runID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading invocation %s: %w", runID, err)
	}
	var inv Invocation
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("unmarshalling invocation %s: %w", runID, err)
	}
	return &inv, nil
}

func (s *DiskStore) ensureDir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating invocation directory: %w", err)
		}
		return s.dir, nil
	}
	dir, err := os.MkdirTemp("", "gpuburn-runs-*")
	if err != nil {
		return "", fmt.Errorf("creating invocation directory: %w", err)
	}
	s.dir = dir
	return dir, nil
}
