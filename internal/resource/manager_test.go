package resource

import (
	"testing"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

func spec(name string, hosts, pes, ram, mips int) models.DatacenterSpec {
	return models.DatacenterSpec{
		Name:          name,
		HostCount:     hosts,
		PEsPerHost:    pes,
		RAMPerHost:    ram,
		MIPSPerPE:     mips,
		HostBandwidth: 10000,
		HostStorage:   2000000,
	}
}

func vm(id, pes, ram, mips int) models.VM {
	return models.VM{ID: id, BrokerID: 1, PEs: pes, RAM: ram, MIPS: mips, Bandwidth: 100, Size: 1000}
}

func TestAddDatacenter(t *testing.T) {
	m := NewManager()

	h1, err := m.AddDatacenter(spec("A", 2, 4, 4096, 1000))
	if err != nil {
		t.Fatalf("AddDatacenter error: %v", err)
	}
	h2, err := m.AddDatacenter(spec("B", 3, 4, 4096, 1000))
	if err != nil {
		t.Fatalf("AddDatacenter error: %v", err)
	}
	if h1 != 1 || h2 != 2 {
		t.Errorf("Expected handles 1 and 2, got %d and %d", h1, h2)
	}
	if m.DatacenterCount() != 2 {
		t.Errorf("Expected 2 datacenters, got %d", m.DatacenterCount())
	}
	if _, ok := m.GetHost(4); !ok {
		t.Error("Expected host 4 to exist")
	}

	if _, err := m.AddDatacenter(spec("C", 0, 4, 4096, 1000)); err == nil {
		t.Error("Expected error for datacenter without hosts")
	}
}

func TestPlaceSpreadsByFreePEs(t *testing.T) {
	m := NewManager()
	if _, err := m.AddDatacenter(spec("A", 2, 4, 8192, 1000)); err != nil {
		t.Fatalf("AddDatacenter error: %v", err)
	}

	p1, err := m.Place(VMRef{1, 0}, vm(0, 2, 1024, 1000))
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	p2, err := m.Place(VMRef{1, 1}, vm(1, 2, 1024, 1000))
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if p1.HostID != 0 || p2.HostID != 1 {
		t.Errorf("Expected VMs on hosts 0 and 1, got %d and %d", p1.HostID, p2.HostID)
	}

	host, _ := m.GetHost(0)
	if host.FreePEs() != 2 {
		t.Errorf("Expected 2 free PEs, got %d", host.FreePEs())
	}
	if host.CPUUtilization() != 0.5 {
		t.Errorf("Expected CPU utilization 0.5, got %v", host.CPUUtilization())
	}
	if host.MemoryUtilization() != 0.125 {
		t.Errorf("Expected memory utilization 0.125, got %v", host.MemoryUtilization())
	}
}

func TestPlaceFallsThroughDatacenters(t *testing.T) {
	m := NewManager()
	_, _ = m.AddDatacenter(spec("small", 1, 2, 1024, 1000))
	_, _ = m.AddDatacenter(spec("large", 1, 16, 65536, 3000))

	p, err := m.Place(VMRef{1, 0}, vm(0, 8, 2048, 2500))
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if p.Datacenter != "large" {
		t.Errorf("Expected placement in large, got %s", p.Datacenter)
	}
	if p.MIPS != 2500 {
		t.Errorf("Expected 2500 MIPS, got %d", p.MIPS)
	}
}

func TestPlaceCapsMIPS(t *testing.T) {
	m := NewManager()
	_, _ = m.AddDatacenter(spec("A", 1, 4, 4096, 1000))

	p, err := m.Place(VMRef{1, 0}, vm(0, 1, 512, 3000))
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if p.MIPS != 1000 {
		t.Errorf("Expected MIPS capped at 1000, got %d", p.MIPS)
	}
}

func TestPlaceFailures(t *testing.T) {
	m := NewManager()
	if _, err := m.Place(VMRef{1, 0}, vm(0, 1, 512, 1000)); err == nil {
		t.Error("Expected error without datacenters")
	}

	_, _ = m.AddDatacenter(spec("A", 1, 4, 1024, 1000))

	tests := []struct {
		name string
		vm   models.VM
	}{
		{"too many PEs", vm(1, 8, 512, 1000)},
		{"too much RAM", vm(2, 1, 4096, 1000)},
		{"too much bandwidth", models.VM{ID: 3, PEs: 1, RAM: 1, MIPS: 1, Bandwidth: 20000}},
		{"too much storage", models.VM{ID: 4, PEs: 1, RAM: 1, MIPS: 1, Size: 3000000}},
		{"no PEs", vm(5, 0, 1, 1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Place(VMRef{1, tt.vm.ID}, tt.vm); err == nil {
				t.Error("Expected placement error")
			}
		})
	}

	if _, err := m.Place(VMRef{1, 9}, vm(9, 4, 1024, 1000)); err != nil {
		t.Fatalf("Expected exact fit, got %v", err)
	}
	if _, err := m.Place(VMRef{1, 9}, vm(9, 1, 1, 1000)); err == nil {
		t.Error("Expected error placing the same VM twice")
	}
}

func TestReleaseFreesCapacity(t *testing.T) {
	m := NewManager()
	_, _ = m.AddDatacenter(spec("A", 1, 4, 4096, 1000))

	ref := VMRef{2, 7}
	if _, err := m.Place(ref, vm(7, 4, 4096, 1000)); err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if _, err := m.Place(VMRef{2, 8}, vm(8, 1, 1, 1000)); err == nil {
		t.Error("Expected full host to reject VM")
	}

	m.Release(ref)
	if _, ok := m.GetPlacement(ref); ok {
		t.Error("Expected placement to be removed")
	}
	if _, err := m.Place(VMRef{2, 8}, vm(8, 1, 1, 1000)); err != nil {
		t.Errorf("Expected capacity after release, got %v", err)
	}
	m.Release(VMRef{5, 5}) // unknown refs are ignored
}

func TestUsage(t *testing.T) {
	m := NewManager()
	_, _ = m.AddDatacenter(spec("A", 2, 4, 4096, 1000))
	_, _ = m.Place(VMRef{1, 0}, vm(0, 2, 512, 1000))
	_, _ = m.Place(VMRef{2, 0}, vm(0, 1, 512, 1000))

	usage := m.Usage()
	if len(usage) != 1 {
		t.Fatalf("Expected 1 datacenter, got %d", len(usage))
	}
	if usage[0].UsedPEs != 3 || usage[0].VMs != 2 || usage[0].TotalPEs != 8 {
		t.Errorf("Unexpected usage %+v", usage[0])
	}
}
