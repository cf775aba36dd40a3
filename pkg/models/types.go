package models

import (
	"github.com/markphelps/optional"
)

// RunStatus represents the status of a simulation run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Architecture identifies the datacenter layout a scenario models
type Architecture string

const (
	ArchitectureCentralized Architecture = "centralized"
	ArchitectureDistributed Architecture = "distributed"
	ArchitectureHybrid      Architecture = "hybrid"
)

// BrokerID identifies a campus broker inside one scenario run
type BrokerID int

// NoBroker is the zero broker reference; engines never hand it out
const NoBroker BrokerID = 0

// Broker owns one campus's VM and workload identifier space for a run
type Broker struct {
	ID     BrokerID `json:"id"`
	Name   string   `json:"name"`
	Campus string   `json:"campus"`
}

// DatacenterSpec describes a homogeneous datacenter.
// RAM is in MB, bandwidth in Mbps, storage in MB.
type DatacenterSpec struct {
	Name          string  `json:"name"`
	HostCount     int     `json:"host_count"`
	PEsPerHost    int     `json:"pes_per_host"`
	RAMPerHost    int     `json:"ram_per_host_mb"`
	MIPSPerPE     int     `json:"mips_per_pe"`
	HostBandwidth int64   `json:"host_bandwidth"`
	HostStorage   int64   `json:"host_storage_mb"`
	MinPowerWatts float64 `json:"min_power_watts"`
	MaxPowerWatts float64 `json:"max_power_watts"`
}

// TotalPEs returns the number of processing elements across all hosts
func (d DatacenterSpec) TotalPEs() int {
	return d.HostCount * d.PEsPerHost
}

// TotalMIPS returns the aggregate processing capacity
func (d DatacenterSpec) TotalMIPS() int64 {
	return int64(d.TotalPEs()) * int64(d.MIPSPerPE)
}

// TotalRAM returns the aggregate memory in MB
func (d DatacenterSpec) TotalRAM() int64 {
	return int64(d.HostCount) * int64(d.RAMPerHost)
}

// CampusPool is a contiguous block of identically sized VMs owned by one campus
type CampusPool struct {
	Campus    string   `json:"campus"`
	BrokerID  BrokerID `json:"broker_id"`
	StartID   int      `json:"start_id"`
	Count     int      `json:"count"`
	MIPS      int      `json:"mips"`
	RAM       int      `json:"ram_mb"`
	PEs       int      `json:"pes"`
	Size      int64    `json:"size_mb"`
	Bandwidth int64    `json:"bandwidth"`
	Label     string   `json:"label"`
}

// EndID returns the first identifier after the pool's range
func (p CampusPool) EndID() int {
	return p.StartID + p.Count
}

// VM is a single virtual machine materialized from a pool
type VM struct {
	ID        int      `json:"id"`
	BrokerID  BrokerID `json:"broker_id"`
	Campus    string   `json:"campus"`
	MIPS      int      `json:"mips"`
	PEs       int      `json:"pes"`
	RAM       int      `json:"ram_mb"`
	Bandwidth int64    `json:"bandwidth"`
	Size      int64    `json:"size_mb"`
	Pool      string   `json:"pool"`
}

// Owner returns the broker the VM belongs to
func (v VM) Owner() BrokerID { return v.BrokerID }

// WorkloadBatch declares count cloudlets sharing a resource footprint
type WorkloadBatch struct {
	Campus     string   `json:"campus"`
	BrokerID   BrokerID `json:"broker_id"`
	StartID    int      `json:"start_id"`
	Count      int      `json:"count"`
	BaseLength int64    `json:"base_length_mi"`
	FileSize   int64    `json:"file_size"`
	OutputSize int64    `json:"output_size"`
	PEs        int      `json:"pes"`
	Label      string   `json:"label"`
}

// WorkloadUnit is one cloudlet. VMID is empty when the unit is unbound and
// the engine picks the placement.
type WorkloadUnit struct {
	ID         int          `json:"id"`
	BrokerID   BrokerID     `json:"broker_id"`
	Campus     string       `json:"campus"`
	Category   string       `json:"category"`
	Length     int64        `json:"length_mi"`
	FileSize   int64        `json:"file_size"`
	OutputSize int64        `json:"output_size"`
	PEs        int          `json:"pes"`
	VMID       optional.Int `json:"vm_id"`
}

// Owner returns the broker the unit belongs to
func (w WorkloadUnit) Owner() BrokerID { return w.BrokerID }

// OutcomeStatus is the terminal state of a workload unit
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "SUCCESS"
	OutcomeOther   OutcomeStatus = "OTHER"
)

// WorkloadOutcome is what the engine reports for a finished unit.
// Times are simulated seconds.
type WorkloadOutcome struct {
	WorkloadID int           `json:"workload_id"`
	BrokerID   BrokerID      `json:"broker_id"`
	VMID       int           `json:"vm_id"`
	Status     OutcomeStatus `json:"status"`
	CPUTime    float64       `json:"cpu_time"`
	StartTime  float64       `json:"start_time"`
	FinishTime float64       `json:"finish_time"`
}

// Succeeded reports whether the outcome counts as a success
func (o WorkloadOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

// ExecutionStats summarizes a set of outcomes. Time statistics only cover
// successful outcomes and are zero when there are none.
type ExecutionStats struct {
	Count       int     `json:"count"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
	TotalTime   float64 `json:"total_time"`
	AverageTime float64 `json:"average_time"`
	MinTime     float64 `json:"min_time"`
	MaxTime     float64 `json:"max_time"`
	StdDevTime  float64 `json:"stddev_time"`
}

// CategoryStats holds statistics for one workload category within a campus
type CategoryStats struct {
	Category string         `json:"category"`
	Label    string         `json:"label"`
	Stats    ExecutionStats `json:"stats"`
}

// CampusStats holds statistics for one campus broker
type CampusStats struct {
	Campus        string          `json:"campus"`
	BrokerID      BrokerID        `json:"broker_id"`
	VMCount       int             `json:"vm_count"`
	Stats         ExecutionStats  `json:"stats"`
	Categories    []CategoryStats `json:"categories"`
	Uncategorized int             `json:"uncategorized"`
}

// ScenarioResult is the finalized outcome of one scenario run
type ScenarioResult struct {
	ScenarioID           int           `json:"scenario_id"`
	ScenarioName         string        `json:"scenario_name"`
	Architecture         Architecture  `json:"architecture"`
	DatacenterCount      int           `json:"datacenter_count"`
	TotalVMs             int           `json:"total_vms"`
	TotalWorkload        int           `json:"total_workload"`
	SuccessfulWorkload   int           `json:"successful_workload"`
	SuccessRate          float64       `json:"success_rate"`
	AverageExecutionTime float64       `json:"average_execution_time"`
	MinExecutionTime     float64       `json:"min_execution_time"`
	MaxExecutionTime     float64       `json:"max_execution_time"`
	Makespan             float64       `json:"makespan"`
	CloudletsPerVM       float64       `json:"cloudlets_per_vm"`
	Campuses             []CampusStats `json:"campuses"`
}
