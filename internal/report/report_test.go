package report

import (
	"bytes"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/comparison"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/provision"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/resource"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/scenario"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/topology"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

func sampleResult(id int, avg, perVM, rate float64) models.ScenarioResult {
	return models.ScenarioResult{
		ScenarioID:           id,
		ScenarioName:         "scenario",
		Architecture:         models.ArchitectureHybrid,
		TotalVMs:             10,
		TotalWorkload:        100,
		SuccessfulWorkload:   int(rate),
		SuccessRate:          rate,
		AverageExecutionTime: avg,
		CloudletsPerVM:       perVM,
		Campuses: []models.CampusStats{{
			Campus:     "North",
			BrokerID:   1,
			VMCount:    10,
			Stats:      models.ExecutionStats{Count: 100, Successes: int(rate), AverageTime: avg},
			Categories: []models.CategoryStats{{Category: "A", Label: "Alpha", Stats: models.ExecutionStats{Count: 100}}},
		}},
	}
}

func sampleRecord() scenario.Record {
	dcs := []models.DatacenterSpec{{Name: "DC", HostCount: 2, PEsPerHost: 4, RAMPerHost: 1024, MIPSPerPE: 1000}}
	result := sampleResult(1, 12.5, 10, 100)
	return scenario.Record{
		RunID: "scenario-1-test",
		Plan: &scenario.Plan{
			Scenario:    &config.Scenario{ID: 1, Name: "Central", Architecture: "hybrid"},
			Datacenters: dcs,
			Totals:      topology.Summarize(dcs),
		},
		Brokers: []models.Broker{{ID: 1, Name: "Broker_North", Campus: "North"}},
		Partition: &provision.Partition{
			ScenarioID: 1,
			Budget:     12,
			Pools:      []models.CampusPool{{Campus: "North", BrokerID: 1, Count: 10}},
		},
		Workload:   map[models.BrokerID]int{1: 100},
		Unassigned: 2,
		FailedVMs:  map[models.BrokerID][]int{1: {8, 9}},
		Usage:      []resource.DatacenterUsage{{Name: "DC", Hosts: 2, TotalPEs: 8, UsedPEs: 6, VMs: 8}},
		Result:     &result,
	}
}

func TestReporterScenario(t *testing.T) {
	var buf bytes.Buffer
	r := New(logger.New("info", &buf), func(name string) string { return name + " Campus" })

	r.Scenario(sampleRecord())

	out := buf.String()
	for _, want := range []string{
		`"msg":"Datacenter"`,
		`"msg":"Infrastructure totals"`,
		`"pes":8`,
		`"campus":"North Campus"`,
		`"budget_matched":false`,
		`"msg":"Dead assignments"`,
		`"created":8,"failed":2`,
		`"msg":"VM placement failures","scenario":1,"count":2`,
		`"msg":"Datacenter allocation"`,
		`"used_pes":6`,
		`"msg":"Category results"`,
		`"category":"Alpha"`,
		`"msg":"Scenario summary"`,
		`"performance":"EXCELLENT"`,
		`"msg":"Architecture notes"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %s", want)
		}
	}
}

func TestReporterScenarioWithoutPlacementFailures(t *testing.T) {
	var buf bytes.Buffer
	r := New(logger.New("info", &buf), nil)

	rec := sampleRecord()
	rec.FailedVMs = nil
	r.Scenario(rec)

	out := buf.String()
	if strings.Contains(out, "VM placement failures") {
		t.Errorf("Expected no placement warning, got %s", out)
	}
	if !strings.Contains(out, `"vms":10,"created":10,"failed":0`) {
		t.Errorf("Expected every pool VM created, got %s", out)
	}
}

func TestReporterComparison(t *testing.T) {
	var buf bytes.Buffer
	r := New(logger.New("info", &buf), nil)

	r.Comparison(comparison.Compare([]models.ScenarioResult{sampleResult(1, 10, 5, 90)}))
	if !strings.Contains(buf.String(), "Insufficient data for comparison") {
		t.Errorf("Expected insufficient data notice, got %s", buf.String())
	}

	buf.Reset()
	r.Comparison(comparison.Compare([]models.ScenarioResult{
		sampleResult(1, 10, 5, 90),
		sampleResult(2, 0, 8, 95),
	}))
	out := buf.String()
	if strings.Count(out, `"msg":"Comparison"`) != 2 {
		t.Errorf("Expected one comparison line per result, got %s", out)
	}
	if !strings.Contains(out, `"msg":"Fastest execution","scenario":1`) {
		t.Errorf("Expected scenario 1 to be fastest, got %s", out)
	}
	if !strings.Contains(out, `"msg":"Most reliable","scenario":2`) {
		t.Errorf("Expected scenario 2 to be most reliable, got %s", out)
	}
}

func TestExportJSON(t *testing.T) {
	rep := comparison.Compare([]models.ScenarioResult{
		sampleResult(1, 10, 5, 90),
		sampleResult(2, 20, 8, 95),
	})

	var buf bytes.Buffer
	if err := ExportJSON(&buf, rep); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}

	var doc structpb.Struct
	if err := protojson.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Exported report is not valid JSON: %v", err)
	}
	fields := doc.GetFields()

	if !fields["sufficient"].GetBoolValue() {
		t.Error("Expected sufficient to be true")
	}
	if n := len(fields["results"].GetListValue().GetValues()); n != 2 {
		t.Errorf("Expected 2 results, got %d", n)
	}
	fastest := fields["fastest_execution"].GetStructValue().GetFields()
	if fastest["scenario_id"].GetNumberValue() != 1 {
		t.Errorf("Expected fastest scenario 1, got %v", fastest["scenario_id"])
	}
	best := fields["best_utilization"].GetStructValue().GetFields()
	if best["value"].GetNumberValue() != 8 {
		t.Errorf("Expected best utilization value 8, got %v", best["value"])
	}

	first := fields["results"].GetListValue().GetValues()[0].GetStructValue().GetFields()
	campus := first["campuses"].GetListValue().GetValues()[0].GetStructValue().GetFields()
	if campus["campus"].GetStringValue() != "North" {
		t.Errorf("Expected campus North, got %v", campus["campus"])
	}
}

func TestExportJSONInsufficient(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, comparison.Compare(nil)); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}

	var doc structpb.Struct
	if err := protojson.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Exported report is not valid JSON: %v", err)
	}
	if doc.GetFields()["sufficient"].GetBoolValue() {
		t.Error("Expected sufficient to be false")
	}
	if _, ok := doc.GetFields()["fastest_execution"].GetKind().(*structpb.Value_NullValue); !ok {
		t.Error("Expected fastest_execution to be null")
	}
}
