package report

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/comparison"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// ExportJSON writes the comparison report as JSON
func ExportJSON(w io.Writer, rep *comparison.Report) error {
	doc, err := structpb.NewStruct(reportMap(rep))
	if err != nil {
		return fmt.Errorf("failed to build report document: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func reportMap(rep *comparison.Report) map[string]interface{} {
	results := make([]interface{}, 0, len(rep.Results))
	for i := range rep.Results {
		results = append(results, resultMap(&rep.Results[i]))
	}
	assessments := make([]interface{}, 0, len(rep.Assessments))
	for _, a := range rep.Assessments {
		assessments = append(assessments, map[string]interface{}{
			"scenario_id": a.ScenarioID,
			"efficiency":  a.Efficiency,
			"utilization": string(a.Utilization),
			"performance": string(a.Performance),
			"notes": map[string]interface{}{
				"layout":          a.Notes.Layout,
				"strengths":       a.Notes.Strengths,
				"caveats":         a.Notes.Caveats,
				"recommended_for": a.Notes.RecommendedFor,
			},
		})
	}

	return map[string]interface{}{
		"sufficient":        rep.Sufficient,
		"results":           results,
		"assessments":       assessments,
		"fastest_execution": winnerValue(rep.FastestExecution),
		"best_utilization":  winnerValue(rep.BestUtilization),
		"most_reliable":     winnerValue(rep.MostReliable),
	}
}

func winnerValue(w *comparison.Winner) interface{} {
	if w == nil {
		return nil
	}
	return map[string]interface{}{
		"scenario_id":   w.ScenarioID,
		"scenario_name": w.ScenarioName,
		"value":         w.Value,
	}
}

func resultMap(r *models.ScenarioResult) map[string]interface{} {
	campuses := make([]interface{}, 0, len(r.Campuses))
	for _, c := range r.Campuses {
		categories := make([]interface{}, 0, len(c.Categories))
		for _, cat := range c.Categories {
			categories = append(categories, map[string]interface{}{
				"category": cat.Category,
				"label":    cat.Label,
				"stats":    statsMap(cat.Stats),
			})
		}
		campuses = append(campuses, map[string]interface{}{
			"campus":        c.Campus,
			"broker_id":     int(c.BrokerID),
			"vm_count":      c.VMCount,
			"stats":         statsMap(c.Stats),
			"categories":    categories,
			"uncategorized": c.Uncategorized,
		})
	}

	return map[string]interface{}{
		"scenario_id":            r.ScenarioID,
		"scenario_name":          r.ScenarioName,
		"architecture":           string(r.Architecture),
		"datacenter_count":       r.DatacenterCount,
		"total_vms":              r.TotalVMs,
		"total_workload":         r.TotalWorkload,
		"successful_workload":    r.SuccessfulWorkload,
		"success_rate":           r.SuccessRate,
		"average_execution_time": r.AverageExecutionTime,
		"min_execution_time":     r.MinExecutionTime,
		"max_execution_time":     r.MaxExecutionTime,
		"makespan":               r.Makespan,
		"cloudlets_per_vm":       r.CloudletsPerVM,
		"campuses":               campuses,
	}
}

func statsMap(s models.ExecutionStats) map[string]interface{} {
	return map[string]interface{}{
		"count":        s.Count,
		"successes":    s.Successes,
		"success_rate": s.SuccessRate,
		"total_time":   s.TotalTime,
		"average_time": s.AverageTime,
		"min_time":     s.MinTime,
		"max_time":     s.MaxTime,
		"stddev_time":  s.StdDevTime,
	}
}
