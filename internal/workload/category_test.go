package workload

import (
	"errors"
	"testing"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

func defaultTable(t *testing.T) *CategoryTable {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	table, err := NewCategoryTable(catalog.Categories)
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}
	return table
}

func TestClassify(t *testing.T) {
	table := defaultTable(t)

	tests := []struct {
		id   int
		want string
	}{
		{0, "LMS"},
		{499, "LMS"},
		{500, "Sciences"},
		{899, "Sciences"},
		{950, "HPC"},
		{1200, "Medical"},
		{1450, "Edge"},
		{1500, "FP"},
		{1659, "FP"},
		{1660, Unclassified},
		{1700, Unclassified},
		{-1, Unclassified},
	}

	for _, tt := range tests {
		if got := table.Classify(tt.id).Name; got != tt.want {
			t.Errorf("Classify(%d): expected %s, got %s", tt.id, tt.want, got)
		}
	}
}

func TestNewCategoryTableSortsRanges(t *testing.T) {
	table, err := NewCategoryTable([]config.Category{
		{Name: "B", Start: 10, End: 19},
		{Name: "A", Start: 0, End: 9, Label: "Alpha"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	cats := table.Categories()
	if cats[0].Name != "A" || cats[1].Name != "B" {
		t.Errorf("Expected categories sorted by start, got %+v", cats)
	}
	if table.Label("A") != "Alpha" {
		t.Errorf("Expected label Alpha, got %s", table.Label("A"))
	}
	if table.Label("B") != "B" {
		t.Errorf("Expected name fallback B, got %s", table.Label("B"))
	}
	if table.Classify(15).Name != "B" {
		t.Errorf("Expected 15 in B")
	}
}

func TestNewCategoryTableRejectsInvalidRanges(t *testing.T) {
	tests := []struct {
		name    string
		entries []config.Category
	}{
		{"empty name", []config.Category{{Name: "", Start: 0, End: 1}}},
		{"reserved name", []config.Category{{Name: Unclassified, Start: 0, End: 1}}},
		{"inverted", []config.Category{{Name: "A", Start: 5, End: 1}}},
		{"duplicate", []config.Category{{Name: "A", Start: 0, End: 1}, {Name: "A", Start: 2, End: 3}}},
		{"overlap", []config.Category{{Name: "A", Start: 0, End: 10}, {Name: "B", Start: 10, End: 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewCategoryTable(tt.entries)
			if !errors.Is(err, models.ErrConfiguration) {
				t.Errorf("Expected configuration error, got %v", err)
			}
			if table != nil {
				t.Error("Expected no table")
			}
		})
	}
}

func TestCheckAlignment(t *testing.T) {
	table := defaultTable(t)

	names, err := table.CheckAlignment(models.WorkloadBatch{Label: "hpc", StartID: 900, Count: 300})
	if err != nil {
		t.Errorf("Expected aligned batch, got %v", err)
	}
	if len(names) != 1 || names[0] != "HPC" {
		t.Errorf("Expected [HPC], got %v", names)
	}

	names, err = table.CheckAlignment(models.WorkloadBatch{Label: "straddle", StartID: 450, Count: 100})
	if err == nil {
		t.Error("Expected straddling batch to be reported")
	}
	if len(names) != 2 || names[0] != "LMS" || names[1] != "Sciences" {
		t.Errorf("Expected [LMS Sciences], got %v", names)
	}

	_, err = table.CheckAlignment(models.WorkloadBatch{Label: "outside", StartID: 2000, Count: 5})
	if err == nil {
		t.Error("Expected batch outside the table to be reported")
	}

	catalog, _ := config.DefaultCatalog()
	for _, b := range catalog.Workload {
		if _, err := table.CheckAlignment(NewBatch(b, 1)); err != nil {
			t.Errorf("Default batch %s not aligned: %v", b.Label, err)
		}
	}
}
