package scenario

import (
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/provision"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/resource"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Record is everything one finished scenario run produced
type Record struct {
	RunID     string
	Plan      *Plan
	Brokers   []models.Broker
	Partition *provision.Partition
	// Workload is the number of generated units per broker
	Workload map[models.BrokerID]int
	// Unassigned counts VMs and units no broker owned
	Unassigned int
	// FailedVMs holds, per broker, the VMs that failed placement
	FailedVMs map[models.BrokerID][]int
	// Usage is the host allocation per datacenter after the run
	Usage  []resource.DatacenterUsage
	Result *models.ScenarioResult
}

// PlacementFailures returns the number of VMs that failed placement
func (rec Record) PlacementFailures() int {
	n := 0
	for _, ids := range rec.FailedVMs {
		n += len(ids)
	}
	return n
}

// Results is an append-only accumulator of scenario records. The zero value
// is empty and ready to use.
type Results struct {
	records []Record
}

// Append returns a new accumulator holding r's records plus rec. r itself is
// left untouched.
func (r Results) Append(rec Record) Results {
	records := make([]Record, len(r.records), len(r.records)+1)
	copy(records, r.records)
	return Results{records: append(records, rec)}
}

// Len returns the number of records
func (r Results) Len() int {
	return len(r.records)
}

// Records returns a copy of the records in completion order
func (r Results) Records() []Record {
	return append([]Record(nil), r.records...)
}

// ScenarioResults returns the finalized results in completion order
func (r Results) ScenarioResults() []models.ScenarioResult {
	results := make([]models.ScenarioResult, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Result != nil {
			results = append(results, *rec.Result)
		}
	}
	return results
}
