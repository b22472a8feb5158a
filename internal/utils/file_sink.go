package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSink writes generated files into a single output directory
type FileSink struct {
	dir string
}

// NewFileSink creates a sink rooted at dir. An empty dir means the working directory.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: filepath.Clean(dir)}
}

// Dir returns the output directory
func (s *FileSink) Dir() string {
	return s.dir
}

// Path returns the path a file name resolves to inside the sink
func (s *FileSink) Path(name string) (string, error) {
	clean, err := validateFileName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, clean), nil
}

// WriteFile creates the output directory if needed and writes content to
// name, replacing any existing file. It returns the written path.
func (s *FileSink) WriteFile(name, content string) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", s.dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// validateFileName accepts plain file names only, so output never escapes the sink
func validateFileName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("file name cannot be empty")
	}
	clean := filepath.Clean(name)
	if clean != filepath.Base(clean) || clean == "." || clean == ".." {
		return "", fmt.Errorf("file name must not contain a directory: %s", name)
	}
	return clean, nil
}
