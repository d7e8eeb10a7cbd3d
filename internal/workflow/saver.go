package workflow

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirSaver writes downloaded packages into a local directory.
type DirSaver struct {
	Dir string
}

// Save writes the payload as Dir/filename, creating the directory if needed.
func (d DirSaver) Save(filename string, payload []byte) error {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
