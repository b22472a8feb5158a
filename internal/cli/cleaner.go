package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/modelmeta/internal/generator"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	extension string
}

// NewCleaner creates a cleaner for files ending in extension. An empty
// extension selects the generator default.
func NewCleaner(extension string) *Cleaner {
	if extension == "" {
		extension = generator.DefaultExtension
	}
	return &Cleaner{
		extension: extension,
	}
}

// CleanGeneratedFiles removes the generated files directly inside each
// directory and returns the removed paths. Missing directories are skipped.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removedFiles []string

	for _, dir := range directories {
		err := c.cleanSingleDirectory(dir, &removedFiles)
		if err != nil {
			return removedFiles, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return removedFiles, nil
}

// cleanSingleDirectory cleans a single directory
func (c *Cleaner) cleanSingleDirectory(dir string, removedFiles *[]string) error {
	// Skip if directory doesn't exist
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && c.isGenerated(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", path, err)
		}
		*removedFiles = append(*removedFiles, path)
	}
	return nil
}

// isGenerated reports whether a file name carries the generated extension
// after a non-empty entity name
func (c *Cleaner) isGenerated(name string) bool {
	return len(name) > len(c.extension) && strings.HasSuffix(name, c.extension)
}
