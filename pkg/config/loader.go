package config

import (
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

var validArchitectures = map[string]bool{
	"centralized": true,
	"distributed": true,
	"hybrid":      true,
}

// LoadCatalog loads and parses a catalogue file. An empty path selects the
// embedded default catalogue.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	catalog, err := ParseCatalogYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return catalog, nil
}

// validateCatalog checks the catalogue's structure. Numeric capacity values
// are validated per scenario by the topology builder and the partitioner so
// one bad scenario does not block the others.
func validateCatalog(c *Catalog) error {
	if len(c.Campuses) == 0 {
		return fmt.Errorf("at least one campus must be defined")
	}
	campuses := make(map[string]bool)
	for _, campus := range c.Campuses {
		if campus.Name == "" {
			return fmt.Errorf("campus name cannot be empty")
		}
		if campuses[campus.Name] {
			return fmt.Errorf("duplicate campus name: %s", campus.Name)
		}
		campuses[campus.Name] = true
	}

	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category must be defined")
	}
	if err := ValidateCategories(c.Categories); err != nil {
		return fmt.Errorf("categories validation failed: %w", err)
	}

	if err := validateBatches(c.Workload, campuses); err != nil {
		return fmt.Errorf("workload validation failed: %w", err)
	}

	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario must be defined")
	}
	ids := make(map[int]bool)
	for _, s := range c.Scenarios {
		if s.ID <= 0 {
			return fmt.Errorf("scenario %q: id must be positive, got %d", s.Name, s.ID)
		}
		if ids[s.ID] {
			return fmt.Errorf("duplicate scenario id: %d", s.ID)
		}
		ids[s.ID] = true
		if s.Name == "" {
			return fmt.Errorf("scenario %d: name cannot be empty", s.ID)
		}
		if !validArchitectures[s.Architecture] {
			return fmt.Errorf("scenario %d: invalid architecture %s (must be centralized, distributed, or hybrid)", s.ID, s.Architecture)
		}
		if s.VMBudget < 0 {
			return fmt.Errorf("scenario %d: vm_budget cannot be negative", s.ID)
		}
		for i, pool := range s.Pools {
			if !campuses[pool.Campus] {
				return fmt.Errorf("scenario %d, pool %d: unknown campus %s", s.ID, i, pool.Campus)
			}
		}
		if err := validateBatches(s.Batches, campuses); err != nil {
			return fmt.Errorf("scenario %d: %w", s.ID, err)
		}
	}

	return nil
}

// ValidateCategories rejects empty or reserved names, duplicates, inverted
// ranges and overlaps. Every category table is checked here.
func ValidateCategories(categories []Category) error {
	names := make(map[string]bool)
	for i, cat := range categories {
		subject := fmt.Sprintf("category %d", i)
		if cat.Name == "" || cat.Name == UnclassifiedCategory {
			return models.NewConfigurationError(subject, "name", fmt.Sprintf("invalid name %q", cat.Name))
		}
		if names[cat.Name] {
			return models.NewConfigurationError(subject, "name", "duplicate "+cat.Name)
		}
		names[cat.Name] = true
		if cat.Start < 0 || cat.End < cat.Start {
			return models.NewConfigurationError(subject, "range", fmt.Sprintf("invalid range %d-%d", cat.Start, cat.End))
		}
		for _, other := range categories[:i] {
			if cat.Start <= other.End && other.Start <= cat.End {
				return models.NewConfigurationError(subject, "range", "overlaps "+other.Name)
			}
		}
	}
	return nil
}

// validateBatches checks campus references and identifier overlap
func validateBatches(batches []Batch, campuses map[string]bool) error {
	for i, b := range batches {
		if !campuses[b.Campus] {
			return fmt.Errorf("batch %d: unknown campus %s", i, b.Campus)
		}
		if b.Start < 0 {
			return fmt.Errorf("batch %s: start cannot be negative", b.Label)
		}
		for _, other := range batches[:i] {
			if b.Start < other.Start+other.Count && other.Start < b.Start+b.Count {
				return fmt.Errorf("batch %s overlaps batch %s", b.Label, other.Label)
			}
		}
	}
	return nil
}
