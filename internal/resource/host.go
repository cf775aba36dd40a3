package resource

import (
	"fmt"
	"sync"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Host is one physical host of a datacenter with PE, RAM, bandwidth and
// storage capacity
type Host struct {
	mu sync.RWMutex

	id         int
	datacenter string
	pes        int
	mipsPerPE  int
	ram        int64
	bandwidth  int64
	storage    int64

	usedPEs       int
	usedRAM       int64
	usedBandwidth int64
	usedStorage   int64

	// VMs placed on this host
	vms []VMRef
}

// NewHost creates a host sized from the datacenter spec
func NewHost(id int, spec models.DatacenterSpec) *Host {
	return &Host{
		id:         id,
		datacenter: spec.Name,
		pes:        spec.PEsPerHost,
		mipsPerPE:  spec.MIPSPerPE,
		ram:        int64(spec.RAMPerHost),
		bandwidth:  spec.HostBandwidth,
		storage:    spec.HostStorage,
		vms:        make([]VMRef, 0),
	}
}

// ID returns the host ID
func (h *Host) ID() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.id
}

// Datacenter returns the name of the owning datacenter
func (h *Host) Datacenter() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.datacenter
}

// PEs returns the number of processing elements
func (h *Host) PEs() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pes
}

// MIPSPerPE returns the capacity of one processing element
func (h *Host) MIPSPerPE() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mipsPerPE
}

// FreePEs returns the number of unallocated processing elements
func (h *Host) FreePEs() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pes - h.usedPEs
}

// VMs returns the VMs placed on this host
func (h *Host) VMs() []VMRef {
	h.mu.RLock()
	defer h.mu.RUnlock()
	vms := make([]VMRef, len(h.vms))
	copy(vms, h.vms)
	return vms
}

// CPUUtilization returns the share of allocated PEs (0.0 to 1.0)
func (h *Host) CPUUtilization() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.pes == 0 {
		return 0
	}
	return float64(h.usedPEs) / float64(h.pes)
}

// MemoryUtilization returns the share of allocated RAM (0.0 to 1.0)
func (h *Host) MemoryUtilization() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.ram == 0 {
		return 0
	}
	return float64(h.usedRAM) / float64(h.ram)
}

// HasCapacity checks whether the VM fits in the remaining capacity
func (h *Host) HasCapacity(vm models.VM) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fitsLocked(vm) == nil
}

func (h *Host) fitsLocked(vm models.VM) error {
	switch {
	case vm.PEs > h.pes-h.usedPEs:
		return fmt.Errorf("needs %d PEs, %d free", vm.PEs, h.pes-h.usedPEs)
	case int64(vm.RAM) > h.ram-h.usedRAM:
		return fmt.Errorf("needs %d MB RAM, %d free", vm.RAM, h.ram-h.usedRAM)
	case vm.Bandwidth > h.bandwidth-h.usedBandwidth:
		return fmt.Errorf("needs %d bandwidth, %d free", vm.Bandwidth, h.bandwidth-h.usedBandwidth)
	case vm.Size > h.storage-h.usedStorage:
		return fmt.Errorf("needs %d MB storage, %d free", vm.Size, h.storage-h.usedStorage)
	}
	return nil
}

// allocate reserves capacity for the VM
func (h *Host) allocate(ref VMRef, vm models.VM) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fitsLocked(vm); err != nil {
		return err
	}
	h.usedPEs += vm.PEs
	h.usedRAM += int64(vm.RAM)
	h.usedBandwidth += vm.Bandwidth
	h.usedStorage += vm.Size
	h.vms = append(h.vms, ref)
	return nil
}

// release frees the VM's capacity
func (h *Host) release(ref VMRef, vm models.VM) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, r := range h.vms {
		if r == ref {
			h.vms = append(h.vms[:i], h.vms[i+1:]...)
			h.usedPEs -= vm.PEs
			h.usedRAM -= int64(vm.RAM)
			h.usedBandwidth -= vm.Bandwidth
			h.usedStorage -= vm.Size
			return
		}
	}
}
