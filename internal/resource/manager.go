package resource

import (
	"fmt"
	"sort"
	"sync"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// VMRef identifies a VM; identifiers are only unique per broker
type VMRef struct {
	Broker models.BrokerID
	ID     int
}

// Placement records where a VM runs and the capacity it got
type Placement struct {
	VM         models.VM
	Datacenter string
	HostID     int
	// MIPS is the per-PE capacity granted, capped at the host's PE MIPS
	MIPS int
}

// DatacenterUsage summarizes the allocation state of one datacenter
type DatacenterUsage struct {
	Name     string
	Hosts    int
	TotalPEs int
	UsedPEs  int
	VMs      int
}

type datacenter struct {
	spec  models.DatacenterSpec
	hosts []*Host
}

// Manager tracks host capacity across datacenters and places VMs
type Manager struct {
	mu          sync.RWMutex
	datacenters []*datacenter
	hosts       map[int]*Host
	placements  map[VMRef]*Placement
	nextHostID  int
}

// NewManager creates a new resource manager
func NewManager() *Manager {
	return &Manager{
		hosts:      make(map[int]*Host),
		placements: make(map[VMRef]*Placement),
	}
}

// AddDatacenter creates the datacenter's hosts and returns its handle.
// Handles start at 1 in registration order.
func (m *Manager) AddDatacenter(spec models.DatacenterSpec) (models.DatacenterHandle, error) {
	if spec.HostCount <= 0 || spec.PEsPerHost <= 0 || spec.MIPSPerPE <= 0 {
		return 0, fmt.Errorf("datacenter %s has no capacity", spec.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dc := &datacenter{spec: spec, hosts: make([]*Host, 0, spec.HostCount)}
	for i := 0; i < spec.HostCount; i++ {
		host := NewHost(m.nextHostID, spec)
		m.nextHostID++
		dc.hosts = append(dc.hosts, host)
		m.hosts[host.ID()] = host
	}
	m.datacenters = append(m.datacenters, dc)
	return models.DatacenterHandle(len(m.datacenters)), nil
}

// Place allocates the VM on the first datacenter, in registration order,
// with a fitting host. Within a datacenter the host with most free PEs wins;
// ties go to the lower host ID.
func (m *Manager) Place(ref VMRef, vm models.VM) (*Placement, error) {
	if vm.PEs <= 0 || vm.MIPS <= 0 {
		return nil, fmt.Errorf("vm %d has no capacity", vm.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.placements[ref]; exists {
		return nil, fmt.Errorf("vm %d of broker %d already placed", ref.ID, ref.Broker)
	}
	if len(m.datacenters) == 0 {
		return nil, fmt.Errorf("no datacenters available for vm %d", vm.ID)
	}

	for _, dc := range m.datacenters {
		candidates := make([]*Host, 0, len(dc.hosts))
		for _, h := range dc.hosts {
			if h.HasCapacity(vm) {
				candidates = append(candidates, h)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].FreePEs() > candidates[j].FreePEs()
		})

		host := candidates[0]
		if err := host.allocate(ref, vm); err != nil {
			return nil, fmt.Errorf("failed to allocate vm %d on host %d: %w", vm.ID, host.ID(), err)
		}
		p := &Placement{
			VM:         vm,
			Datacenter: dc.spec.Name,
			HostID:     host.ID(),
			MIPS:       min(vm.MIPS, host.MIPSPerPE()),
		}
		m.placements[ref] = p
		return p, nil
	}

	return nil, fmt.Errorf("no host can fit vm %d (%d PEs, %d MB RAM)", vm.ID, vm.PEs, vm.RAM)
}

// Release frees the VM's host capacity
func (m *Manager) Release(ref VMRef) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.placements[ref]
	if !ok {
		return
	}
	if host, ok := m.hosts[p.HostID]; ok {
		host.release(ref, p.VM)
	}
	delete(m.placements, ref)
}

// GetPlacement returns the placement of a VM
func (m *Manager) GetPlacement(ref VMRef) (*Placement, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.placements[ref]
	return p, ok
}

// GetHost returns a host by ID
func (m *Manager) GetHost(hostID int) (*Host, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	host, ok := m.hosts[hostID]
	return host, ok
}

// DatacenterCount returns the number of registered datacenters
func (m *Manager) DatacenterCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.datacenters)
}

// Usage reports allocation per datacenter in registration order
func (m *Manager) Usage() []DatacenterUsage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	usage := make([]DatacenterUsage, 0, len(m.datacenters))
	for _, dc := range m.datacenters {
		u := DatacenterUsage{Name: dc.spec.Name, Hosts: len(dc.hosts), TotalPEs: dc.spec.TotalPEs()}
		for _, h := range dc.hosts {
			u.UsedPEs += h.PEs() - h.FreePEs()
			u.VMs += len(h.VMs())
		}
		usage = append(usage, u)
	}
	return usage
}
