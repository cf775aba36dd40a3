// Package topology validates datacenter parameters and materializes the
// datacenter list of a scenario.
package topology

import (
	"fmt"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// BuildDatacenter validates the core capacity parameters and returns a
// datacenter spec with default host bandwidth and storage.
func BuildDatacenter(name string, hostCount, pesPerHost, ramPerHost, mipsPerPE int) (models.DatacenterSpec, error) {
	subject := fmt.Sprintf("datacenter %s", name)
	switch {
	case hostCount <= 0:
		return models.DatacenterSpec{}, models.NewConfigurationError(subject, "host count", fmt.Sprintf("must be positive, got %d", hostCount))
	case pesPerHost <= 0:
		return models.DatacenterSpec{}, models.NewConfigurationError(subject, "pes per host", fmt.Sprintf("must be positive, got %d", pesPerHost))
	case mipsPerPE <= 0:
		return models.DatacenterSpec{}, models.NewConfigurationError(subject, "mips per pe", fmt.Sprintf("must be positive, got %d", mipsPerPE))
	case ramPerHost <= 0:
		return models.DatacenterSpec{}, models.NewConfigurationError(subject, "ram per host", fmt.Sprintf("must be positive, got %d", ramPerHost))
	}

	return models.DatacenterSpec{
		Name:          name,
		HostCount:     hostCount,
		PEsPerHost:    pesPerHost,
		RAMPerHost:    ramPerHost,
		MIPSPerPE:     mipsPerPE,
		HostBandwidth: config.DefaultHostBandwidth,
		HostStorage:   config.DefaultHostStorageMB,
	}, nil
}

// Build materializes one catalogue entry, including power and per-host
// bandwidth and storage overrides.
func Build(cfg config.Datacenter) (models.DatacenterSpec, error) {
	spec, err := BuildDatacenter(cfg.Name, cfg.Hosts, cfg.PEsPerHost, cfg.RAMPerHostMB, cfg.MIPSPerPE)
	if err != nil {
		return models.DatacenterSpec{}, err
	}

	subject := fmt.Sprintf("datacenter %s", cfg.Name)
	if cfg.HostBandwidth < 0 {
		return models.DatacenterSpec{}, models.NewConfigurationError(subject, "host bandwidth", "cannot be negative")
	}
	if cfg.HostStorageMB < 0 {
		return models.DatacenterSpec{}, models.NewConfigurationError(subject, "host storage", "cannot be negative")
	}
	if cfg.MinPowerWatts < 0 || cfg.MaxPowerWatts < cfg.MinPowerWatts {
		return models.DatacenterSpec{}, models.NewConfigurationError(subject, "power range",
			fmt.Sprintf("invalid %.0f-%.0f W", cfg.MinPowerWatts, cfg.MaxPowerWatts))
	}

	if cfg.HostBandwidth > 0 {
		spec.HostBandwidth = cfg.HostBandwidth
	}
	if cfg.HostStorageMB > 0 {
		spec.HostStorage = cfg.HostStorageMB
	}
	spec.MinPowerWatts = cfg.MinPowerWatts
	spec.MaxPowerWatts = cfg.MaxPowerWatts
	return spec, nil
}

// ForScenario materializes the scenario's datacenters in declaration order.
// The first invalid entry aborts the scenario.
func ForScenario(s *config.Scenario) ([]models.DatacenterSpec, error) {
	if len(s.Datacenters) == 0 {
		return nil, &models.ProvisioningEmptyError{ScenarioID: s.ID, Resource: "datacenters"}
	}

	specs := make([]models.DatacenterSpec, 0, len(s.Datacenters))
	for _, dc := range s.Datacenters {
		spec, err := Build(dc)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", s.ID, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Totals is the aggregate capacity of a datacenter list
type Totals struct {
	Datacenters int
	Hosts       int
	PEs         int
	RAM         int64
	MIPS        int64
}

// Summarize adds up the capacity of specs
func Summarize(specs []models.DatacenterSpec) Totals {
	t := Totals{Datacenters: len(specs)}
	for _, s := range specs {
		t.Hosts += s.HostCount
		t.PEs += s.TotalPEs()
		t.RAM += s.TotalRAM()
		t.MIPS += s.TotalMIPS()
	}
	return t
}
