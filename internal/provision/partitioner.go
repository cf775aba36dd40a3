// Package provision splits a scenario's VM capacity into per-campus pools
// with contiguous identifier ranges.
package provision

import (
	"fmt"
	"log/slog"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Partition is the ordered pool list of one scenario
type Partition struct {
	ScenarioID int
	Budget     int
	Pools      []models.CampusPool
}

// Total returns the number of VMs across all pools
func (p *Partition) Total() int {
	total := 0
	for _, pool := range p.Pools {
		total += pool.Count
	}
	return total
}

// BudgetMatched reports whether the pool counts add up to the nominal budget
func (p *Partition) BudgetMatched() bool {
	return p.Total() == p.Budget
}

// CountByCampus returns the VM count per campus
func (p *Partition) CountByCampus() map[string]int {
	counts := make(map[string]int)
	for _, pool := range p.Pools {
		counts[pool.Campus] += pool.Count
	}
	return counts
}

// Partitioner builds pool lists. The logger only observes.
type Partitioner struct {
	log *slog.Logger
}

// NewPartitioner creates a partitioner logging to log, or logger.Default
func NewPartitioner(log *slog.Logger) *Partitioner {
	return &Partitioner{log: logger.OrDefault(log)}
}

// Partition assigns starting identifiers as the running sum of prior counts
// and binds each pool to its campus broker. Counts are kept as configured; a
// mismatch with the scenario budget is logged, not corrected.
func (p *Partitioner) Partition(s *config.Scenario, brokers map[string]models.BrokerID) (*Partition, error) {
	part := &Partition{
		ScenarioID: s.ID,
		Budget:     s.VMBudget,
		Pools:      make([]models.CampusPool, 0, len(s.Pools)),
	}

	nextID := 0
	for i, cfg := range s.Pools {
		if err := validatePool(s.ID, i, cfg, brokers); err != nil {
			return nil, err
		}

		pool := models.CampusPool{
			Campus:    cfg.Campus,
			BrokerID:  brokers[cfg.Campus],
			StartID:   nextID,
			Count:     cfg.Count,
			MIPS:      cfg.MIPS,
			RAM:       cfg.RAMMB,
			PEs:       cfg.PEs,
			Size:      cfg.SizeMB,
			Bandwidth: cfg.Bandwidth,
			Label:     cfg.Label,
		}
		nextID = pool.EndID()
		part.Pools = append(part.Pools, pool)

		p.log.Info("VM pool provisioned",
			"scenario", s.ID,
			"pool", pool.Label,
			"campus", pool.Campus,
			"count", pool.Count,
			"mips", pool.MIPS,
			"ram_mb", pool.RAM,
			"cores", pool.PEs,
			"ids", fmt.Sprintf("%d-%d", pool.StartID, pool.EndID()-1))
	}

	if !part.BudgetMatched() {
		p.log.Warn("VM pool counts do not match scenario budget",
			"scenario", s.ID,
			"budget", part.Budget,
			"total", part.Total())
	}

	return part, nil
}

func validatePool(scenarioID, index int, cfg config.Pool, brokers map[string]models.BrokerID) error {
	subject := fmt.Sprintf("scenario %d pool %d (%s)", scenarioID, index, cfg.Label)
	switch {
	case cfg.Count <= 0:
		return models.NewConfigurationError(subject, "count", fmt.Sprintf("must be positive, got %d", cfg.Count))
	case cfg.MIPS <= 0:
		return models.NewConfigurationError(subject, "mips", fmt.Sprintf("must be positive, got %d", cfg.MIPS))
	case cfg.PEs <= 0:
		return models.NewConfigurationError(subject, "cores", fmt.Sprintf("must be positive, got %d", cfg.PEs))
	case cfg.RAMMB <= 0:
		return models.NewConfigurationError(subject, "ram", fmt.Sprintf("must be positive, got %d", cfg.RAMMB))
	case cfg.SizeMB < 0 || cfg.Bandwidth < 0:
		return models.NewConfigurationError(subject, "size/bandwidth", "cannot be negative")
	}
	if _, ok := brokers[cfg.Campus]; !ok {
		return models.NewConfigurationError(subject, "campus", fmt.Sprintf("no broker for %s", cfg.Campus))
	}
	return nil
}

// MaterializeVMs expands pools into individual VMs with identifiers
// start..start+count-1
func MaterializeVMs(pools []models.CampusPool) []models.VM {
	total := 0
	for _, p := range pools {
		total += p.Count
	}

	vms := make([]models.VM, 0, total)
	for _, p := range pools {
		for id := p.StartID; id < p.EndID(); id++ {
			vms = append(vms, models.VM{
				ID:        id,
				BrokerID:  p.BrokerID,
				Campus:    p.Campus,
				MIPS:      p.MIPS,
				PEs:       p.PEs,
				RAM:       p.RAM,
				Bandwidth: p.Bandwidth,
				Size:      p.Size,
				Pool:      p.Label,
			})
		}
	}
	return vms
}
