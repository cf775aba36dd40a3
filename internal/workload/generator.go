package workload

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/markphelps/optional"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/utils"
)

const (
	// MinVariation is the lower bound of the per-unit length factor
	MinVariation = 0.7
	// MaxVariation is the exclusive upper bound of the per-unit length factor
	MaxVariation = 1.3
)

// Generator produces workload units from batches
type Generator struct {
	rng   utils.Source
	table *CategoryTable
	log   *slog.Logger
}

// NewGenerator creates a generator drawing variation factors from rng
func NewGenerator(rng utils.Source, table *CategoryTable, log *slog.Logger) *Generator {
	return &Generator{
		rng:   rng,
		table: table,
		log:   logger.OrDefault(log),
	}
}

// NewBatch binds a catalogue batch to its campus broker
func NewBatch(cfg config.Batch, broker models.BrokerID) models.WorkloadBatch {
	return models.WorkloadBatch{
		Campus:     cfg.Campus,
		BrokerID:   broker,
		StartID:    cfg.Start,
		Count:      cfg.Count,
		BaseLength: cfg.BaseLengthMI,
		FileSize:   cfg.FileSize,
		OutputSize: cfg.OutputSize,
		PEs:        cfg.PEs,
		Label:      cfg.Label,
	}
}

// ValidateBatch checks the numeric fields of a batch
func ValidateBatch(batch models.WorkloadBatch) error {
	subject := fmt.Sprintf("workload batch %s", batch.Label)
	switch {
	case batch.Count <= 0:
		return models.NewConfigurationError(subject, "count", fmt.Sprintf("must be positive, got %d", batch.Count))
	case batch.BaseLength <= 0:
		return models.NewConfigurationError(subject, "base length", fmt.Sprintf("must be positive, got %d", batch.BaseLength))
	case batch.PEs <= 0:
		return models.NewConfigurationError(subject, "cores", fmt.Sprintf("must be positive, got %d", batch.PEs))
	case batch.FileSize < 0 || batch.OutputSize < 0:
		return models.NewConfigurationError(subject, "file/output size", "cannot be negative")
	}
	return nil
}

// GenerateBatch produces count units with ids start..start+count-1. Unit i is
// bound to vms[i mod len(vms)]; with no VMs the units stay unbound.
func (g *Generator) GenerateBatch(batch models.WorkloadBatch, vms []models.VM) []models.WorkloadUnit {
	if _, err := g.table.CheckAlignment(batch); err != nil {
		g.log.Warn("workload batch not aligned with categories", "error", err)
	}

	units := make([]models.WorkloadUnit, 0, max(batch.Count, 0))
	for i := 0; i < batch.Count; i++ {
		id := batch.StartID + i
		unit := models.WorkloadUnit{
			ID:         id,
			BrokerID:   batch.BrokerID,
			Campus:     batch.Campus,
			Category:   g.table.Classify(id).Name,
			Length:     VariedLength(batch.BaseLength, g.rng.UniformFloat64(MinVariation, MaxVariation)),
			FileSize:   batch.FileSize,
			OutputSize: batch.OutputSize,
			PEs:        batch.PEs,
		}
		if len(vms) > 0 {
			unit.VMID = optional.NewInt(vms[i%len(vms)].ID)
		}
		units = append(units, unit)
	}

	g.log.Debug("workload batch generated",
		"batch", batch.Label,
		"campus", batch.Campus,
		"count", len(units),
		"bound_vms", len(vms))
	return units
}

// VariedLength returns round(base × factor) kept inside
// [ceil(0.7·base), floor(1.3·base)]
func VariedLength(base int64, factor float64) int64 {
	length := int64(math.Round(float64(base) * factor))
	lo := int64(math.Ceil(float64(base) * MinVariation))
	hi := int64(math.Floor(float64(base) * MaxVariation))
	if length < lo {
		return lo
	}
	if length > hi {
		return hi
	}
	return length
}
