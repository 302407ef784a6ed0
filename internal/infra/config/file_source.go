package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// Ensure FileSource implements domain.ConfigSource.
var _ domain.ConfigSource = (*FileSource)(nil)

// FileSource reads configuration documents from a directory, usually a repository checkout.
type FileSource struct {
	root string
}

// NewFileSource creates a FileSource rooted at root.
func NewFileSource(root string) *FileSource {
	return &FileSource{root: root}
}

// ReadFile reads path relative to the root; absolute paths are used as-is.
func (s *FileSource) ReadFile(_ context.Context, path string) ([]byte, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(s.root, filepath.FromSlash(path))
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
