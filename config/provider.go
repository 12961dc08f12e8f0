package config

import "fmt"

// Provider defines the interface for retrieving configurations.
type Provider interface {
	GetSourceConfig(name string) (*SourceConfig, error)
}

// MemoryConfigRegistry implements Provider using an in-memory map.
type MemoryConfigRegistry struct {
	sources map[string]*SourceConfig
}

// NewMemoryConfigRegistry creates a new registry with the given configurations.
func NewMemoryConfigRegistry(sources map[string]*SourceConfig) *MemoryConfigRegistry {
	return &MemoryConfigRegistry{
		sources: sources,
	}
}

// GetSourceConfig retrieves a SourceConfig by name.
func (r *MemoryConfigRegistry) GetSourceConfig(name string) (*SourceConfig, error) {
	if conf, ok := r.sources[name]; ok {
		return conf, nil
	}
	return nil, fmt.Errorf("source config not found: %s", name)
}
