package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// ParseCatalogYAML parses a Catalog from YAML bytes and validates it.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	if err := validateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &catalog, nil
}

// ParseCatalogYAMLString parses a Catalog from a YAML string and validates it.
func ParseCatalogYAMLString(yamlText string) (*Catalog, error) {
	return ParseCatalogYAML([]byte(yamlText))
}

// DefaultCatalog returns the embedded catalogue of the three UAE scenarios.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalogYAML(defaultCatalogYAML)
}
