// Package scenario plans and runs architecture scenarios against a
// simulation engine and accumulates their results.
package scenario

import (
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/resource"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Simulator is the engine contract a scenario run drives. Implementations
// own VM placement and cloudlet execution; Init resets all prior state.
type Simulator interface {
	Init(userCount int, trace bool) error
	RegisterDatacenter(spec models.DatacenterSpec) (models.DatacenterHandle, error)
	RegisterBroker(name string) (models.BrokerID, error)
	SubmitVMs(broker models.BrokerID, vms []models.VM) error
	SubmitWorkload(broker models.BrokerID, units []models.WorkloadUnit) error
	// Run blocks until every submitted unit finished and returns the final
	// simulation clock in seconds
	Run() (float64, error)
	CompletedWorkload(broker models.BrokerID) []models.WorkloadOutcome
	// FailedVMs returns the ids of the broker's VMs no host could take
	FailedVMs(broker models.BrokerID) []int
	DatacenterUsage() []resource.DatacenterUsage
}
