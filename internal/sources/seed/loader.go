package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of a seed fixture file.
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed yaml file.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	if len(cfg.Users) == 0 && len(cfg.Wishlists) == 0 {
		return nil, fmt.Errorf("seed file %s declares no users and no wishlists", l.filePath)
	}

	return &cfg, nil
}
