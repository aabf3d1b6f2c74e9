package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Load reads and validates an Options value from a YAML file at path.
// Unset fields keep Default()'s values rather than becoming zero, so a
// config file only needs to mention the options it wants to override.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
