package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.ExportSink = (*Sink)(nil)

// Sink saves export blobs into a directory.
type Sink struct {
	dir string
}

// NewSink creates a sink writing into dir.
// An empty dir means the current working directory.
func NewSink(dir string) *Sink {
	if dir == "" {
		dir = "."
	}
	return &Sink{dir: dir}
}

// Dir returns the directory exports are written to.
func (s *Sink) Dir() string {
	return s.dir
}

// Save writes data to name inside the sink directory, replacing any
// existing file, and returns the written path.
// The name must be a plain file name; anything with a directory part is rejected.
func (s *Sink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: export file name %q", domain.ErrInvalidInput, name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(s.dir, name)

	// Write to a temp file first so a failed write never leaves a partial export.
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("chmod export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename export: %w", err)
	}

	return path, nil
}
