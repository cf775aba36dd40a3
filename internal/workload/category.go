package workload

import (
	"fmt"
	"sort"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Unclassified is the category name for identifiers outside every range
const Unclassified = config.UnclassifiedCategory

// Category is a named inclusive identifier range
type Category struct {
	Name  string
	Label string
	Start int
	End   int
}

// Contains reports whether id falls inside the range
func (c Category) Contains(id int) bool {
	return id >= c.Start && id <= c.End
}

// CategoryTable is the single category table shared by the generator and the
// aggregator. Ranges are sorted by start and never overlap.
type CategoryTable struct {
	categories []Category
}

// NewCategoryTable builds a table from catalogue entries
func NewCategoryTable(entries []config.Category) (*CategoryTable, error) {
	if err := config.ValidateCategories(entries); err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(entries))
	for _, e := range entries {
		categories = append(categories, Category{Name: e.Name, Label: e.Label, Start: e.Start, End: e.End})
	}

	sorted := make([]Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return &CategoryTable{categories: sorted}, nil
}

// Classify returns the category containing id, or an Unclassified category
func (t *CategoryTable) Classify(id int) Category {
	i := sort.Search(len(t.categories), func(i int) bool { return t.categories[i].End >= id })
	if i < len(t.categories) && t.categories[i].Contains(id) {
		return t.categories[i]
	}
	return Category{Name: Unclassified, Label: Unclassified, Start: id, End: id}
}

// Categories returns the table in range order
func (t *CategoryTable) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Label returns the display label of a category name, or the name itself
func (t *CategoryTable) Label(name string) string {
	for _, c := range t.categories {
		if c.Name == name && c.Label != "" {
			return c.Label
		}
	}
	return name
}

// CheckAlignment returns the categories a batch's identifier range touches,
// and an error when the range straddles a boundary or leaves the table.
func (t *CategoryTable) CheckAlignment(batch models.WorkloadBatch) ([]string, error) {
	if batch.Count <= 0 {
		return nil, nil
	}

	var names []string
	for id := batch.StartID; id < batch.StartID+batch.Count; {
		c := t.Classify(id)
		if len(names) == 0 || names[len(names)-1] != c.Name {
			names = append(names, c.Name)
		}
		if c.Name == Unclassified {
			id++
			continue
		}
		id = c.End + 1
	}

	if len(names) > 1 {
		return names, fmt.Errorf("batch %s (ids %d-%d) spans categories %v", batch.Label, batch.StartID, batch.StartID+batch.Count-1, names)
	}
	if names[0] == Unclassified {
		return names, fmt.Errorf("batch %s (ids %d-%d) lies outside every category", batch.Label, batch.StartID, batch.StartID+batch.Count-1)
	}
	return names, nil
}
