package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadBundle reads a configuration bundle from a YAML file without validating it.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var bundle Bundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &bundle, nil
}

// LoadSourcesBundle loads only the sources section of a YAML file.
func LoadSourcesBundle(path string) (map[string]*SourceConfig, error) {
	bundle, err := LoadBundle(path)
	if err != nil {
		return nil, err
	}
	return indexSources(bundle.Sources)
}

// LoadConfigBundle loads, defaults and validates a job and its sources.
func LoadConfigBundle(path string) (*JobConfig, map[string]*SourceConfig, error) {
	bundle, err := LoadBundle(path)
	if err != nil {
		return nil, nil, err
	}
	sources, err := indexSources(bundle.Sources)
	if err != nil {
		return nil, nil, err
	}

	job := bundle.Job
	job.ApplyDefaults()

	validator := NewValidator(NewMemoryConfigRegistry(sources))
	for _, src := range sources {
		if err := validator.ValidateSource(src); err != nil {
			return nil, nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}
	if err := validator.ValidateJob(&job); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &job, sources, nil
}

func indexSources(list []SourceConfig) (map[string]*SourceConfig, error) {
	sources := make(map[string]*SourceConfig, len(list))
	for i := range list {
		src := &list[i]
		if _, dup := sources[src.Name]; dup {
			return nil, fmt.Errorf("duplicate source %q", src.Name)
		}
		sources[src.Name] = src
	}
	return sources, nil
}
