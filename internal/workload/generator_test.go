package workload

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/utils"
)

// fixedSource returns the same factor for every draw
type fixedSource struct {
	factor float64
}

func (f fixedSource) Float64() float64 { return (f.factor - MinVariation) / (MaxVariation - MinVariation) }

func (f fixedSource) UniformFloat64(min, max float64) float64 { return f.factor }

func vmsWithIDs(ids ...int) []models.VM {
	vms := make([]models.VM, 0, len(ids))
	for _, id := range ids {
		vms = append(vms, models.VM{ID: id})
	}
	return vms
}

func TestGenerateBatchBounds(t *testing.T) {
	table := defaultTable(t)
	g := NewGenerator(utils.NewRandSource(12345), table, logger.Discard())

	batch := models.WorkloadBatch{Campus: "Tanger", BrokerID: 2, StartID: 900, Count: 300, BaseLength: 500000, PEs: 8, Label: "HPC_Tanger"}
	units := g.GenerateBatch(batch, vmsWithIDs(10, 11, 12))

	if len(units) != 300 {
		t.Fatalf("Expected 300 units, got %d", len(units))
	}
	lo := float64(batch.BaseLength) * MinVariation
	hi := float64(batch.BaseLength) * MaxVariation
	for i, u := range units {
		if u.ID != 900+i {
			t.Errorf("Unit %d: expected id %d, got %d", i, 900+i, u.ID)
		}
		if float64(u.Length) < lo || float64(u.Length) > hi {
			t.Errorf("Unit %d: length %d outside [%v, %v]", i, u.Length, lo, hi)
		}
		if u.Category != "HPC" {
			t.Errorf("Unit %d: expected category HPC, got %s", i, u.Category)
		}
		if u.BrokerID != 2 || u.PEs != 8 {
			t.Errorf("Unit %d: expected broker 2 and 8 PEs, got %d/%d", i, u.BrokerID, u.PEs)
		}
	}
}

func TestGenerateBatchRoundRobinBinding(t *testing.T) {
	g := NewGenerator(fixedSource{factor: 1.0}, defaultTable(t), logger.Discard())

	units := g.GenerateBatch(models.WorkloadBatch{StartID: 0, Count: 5, BaseLength: 1000, PEs: 1}, vmsWithIDs(7, 8))
	want := []int{7, 8, 7, 8, 7}
	for i, u := range units {
		got, err := u.VMID.Get()
		if err != nil {
			t.Fatalf("Unit %d: expected a bound VM", i)
		}
		if got != want[i] {
			t.Errorf("Unit %d: expected VM %d, got %d", i, want[i], got)
		}
		if u.Length != 1000 {
			t.Errorf("Unit %d: expected length 1000, got %d", i, u.Length)
		}
	}
}

func TestGenerateBatchUnbound(t *testing.T) {
	g := NewGenerator(fixedSource{factor: 1.0}, defaultTable(t), logger.Discard())

	units := g.GenerateBatch(models.WorkloadBatch{StartID: 0, Count: 3, BaseLength: 1000, PEs: 1}, nil)
	if len(units) != 3 {
		t.Fatalf("Expected 3 units, got %d", len(units))
	}
	for i, u := range units {
		if u.VMID.Present() {
			t.Errorf("Unit %d: expected no VM binding", i)
		}
	}
}

func TestGenerateBatchDeterministicWithSeed(t *testing.T) {
	table := defaultTable(t)
	batch := models.WorkloadBatch{StartID: 0, Count: 50, BaseLength: 40000, PEs: 2}

	a := NewGenerator(utils.NewRandSource(7), table, logger.Discard()).GenerateBatch(batch, nil)
	b := NewGenerator(utils.NewRandSource(7), table, logger.Discard()).GenerateBatch(batch, nil)
	for i := range a {
		if a[i].Length != b[i].Length {
			t.Errorf("Unit %d: expected equal lengths for equal seeds, got %d and %d", i, a[i].Length, b[i].Length)
		}
	}
}

func TestGenerateBatchWarnsOnMisalignment(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(fixedSource{factor: 1.0}, defaultTable(t), logger.NewText("info", &buf))

	g.GenerateBatch(models.WorkloadBatch{Label: "mixed", StartID: 490, Count: 20, BaseLength: 1000, PEs: 1}, nil)
	if !strings.Contains(buf.String(), "not aligned") {
		t.Errorf("Expected misalignment warning, got %q", buf.String())
	}
}

func TestVariedLength(t *testing.T) {
	tests := []struct {
		base   int64
		factor float64
		want   int64
	}{
		{1000, 1.0, 1000},
		{1000, 0.7, 700},
		{1000, 1.2999, 1300},
		{1000, 1.0004, 1000},
		{1000, 1.0006, 1001},
		{10002, 0.7, 7002}, // round gives 7001, below 0.7·base
		{3, 0.7, 3},
	}

	for _, tt := range tests {
		if got := VariedLength(tt.base, tt.factor); got != tt.want {
			t.Errorf("VariedLength(%d, %v): expected %d, got %d", tt.base, tt.factor, tt.want, got)
		}
	}
}

func TestValidateBatch(t *testing.T) {
	valid := models.WorkloadBatch{Label: "ok", Count: 1, BaseLength: 1, PEs: 1}
	if err := ValidateBatch(valid); err != nil {
		t.Errorf("Expected valid batch, got %v", err)
	}

	for _, b := range []models.WorkloadBatch{
		{Label: "count", Count: 0, BaseLength: 1, PEs: 1},
		{Label: "length", Count: 1, BaseLength: 0, PEs: 1},
		{Label: "pes", Count: 1, BaseLength: 1, PEs: 0},
		{Label: "size", Count: 1, BaseLength: 1, PEs: 1, FileSize: -1},
	} {
		if err := ValidateBatch(b); !errors.Is(err, models.ErrConfiguration) {
			t.Errorf("Batch %s: expected configuration error, got %v", b.Label, err)
		}
	}
}
