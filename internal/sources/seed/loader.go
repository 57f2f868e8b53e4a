// Package seed loads initial portfolio content from a YAML file, used to
// populate an empty store on first start.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader reads and parses a seed content file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given file.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the seed file.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return f, nil
}
