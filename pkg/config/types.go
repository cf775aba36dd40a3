package config

// Catalog is the full set of scenario definitions plus the campus list and
// the workload category table shared by generation and aggregation.
type Catalog struct {
	Campuses   []Campus   `yaml:"campuses"`
	Categories []Category `yaml:"categories"`
	Workload   []Batch    `yaml:"workload,omitempty"`
	Scenarios  []Scenario `yaml:"scenarios"`
}

// Campus is a university site owning one broker per scenario run
type Campus struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
}

// Category is an inclusive workload identifier range
type Category struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// Scenario describes one architecture configuration
type Scenario struct {
	ID           int          `yaml:"id"`
	Name         string       `yaml:"name"`
	Architecture string       `yaml:"architecture"` // centralized, distributed, hybrid
	VMBudget     int          `yaml:"vm_budget"`
	Datacenters  []Datacenter `yaml:"datacenters"`
	Pools        []Pool       `yaml:"pools"`
	Batches      []Batch      `yaml:"batches,omitempty"`
}

// Datacenter is a homogeneous datacenter entry
type Datacenter struct {
	Name          string  `yaml:"name"`
	Hosts         int     `yaml:"hosts"`
	PEsPerHost    int     `yaml:"pes_per_host"`
	RAMPerHostMB  int     `yaml:"ram_per_host_mb"`
	MIPSPerPE     int     `yaml:"mips_per_pe"`
	HostBandwidth int64   `yaml:"host_bandwidth,omitempty"`  // defaults to DefaultHostBandwidth
	HostStorageMB int64   `yaml:"host_storage_mb,omitempty"` // defaults to DefaultHostStorageMB
	MinPowerWatts float64 `yaml:"min_power_watts,omitempty"`
	MaxPowerWatts float64 `yaml:"max_power_watts,omitempty"`
}

// Pool is a block of identical VMs for one campus. Identifiers are assigned
// by the partitioner, not configured.
type Pool struct {
	Campus    string `yaml:"campus"`
	Count     int    `yaml:"count"`
	MIPS      int    `yaml:"mips"`
	RAMMB     int    `yaml:"ram_mb"`
	PEs       int    `yaml:"pes"`
	SizeMB    int64  `yaml:"size_mb"`
	Bandwidth int64  `yaml:"bandwidth"`
	Label     string `yaml:"label"`
}

// Batch is a block of cloudlets for one campus with explicit identifiers
type Batch struct {
	Campus       string `yaml:"campus"`
	Start        int    `yaml:"start"`
	Count        int    `yaml:"count"`
	BaseLengthMI int64  `yaml:"base_length_mi"`
	FileSize     int64  `yaml:"file_size"`
	OutputSize   int64  `yaml:"output_size"`
	PEs          int    `yaml:"pes"`
	Label        string `yaml:"label"`
}

const (
	// DefaultHostBandwidth is the per-host bandwidth when none is configured
	DefaultHostBandwidth int64 = 10000
	// DefaultHostStorageMB is the per-host storage when none is configured
	DefaultHostStorageMB int64 = 2000000

	// UnclassifiedCategory names identifiers outside every category range
	UnclassifiedCategory = "unclassified"
)

// Scenario returns the scenario with the given id
func (c *Catalog) Scenario(id int) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].ID == id {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ScenarioIDs returns scenario ids in catalogue order
func (c *Catalog) ScenarioIDs() []int {
	ids := make([]int, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		ids = append(ids, s.ID)
	}
	return ids
}

// CampusLabel returns the display label for a campus, or its name
func (c *Catalog) CampusLabel(name string) string {
	for _, campus := range c.Campuses {
		if campus.Name == name && campus.Label != "" {
			return campus.Label
		}
	}
	return name
}

// BatchesFor returns the scenario's own batches, or the shared workload when
// it declares none
func (c *Catalog) BatchesFor(s *Scenario) []Batch {
	if len(s.Batches) > 0 {
		return s.Batches
	}
	return c.Workload
}
