// Package comparison ranks finished scenarios against each other.
package comparison

import (
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// MinResults is the number of results needed for a comparison
const MinResults = 2

// Winner is the best scenario for one criterion
type Winner struct {
	ScenarioID   int     `json:"scenario_id"`
	ScenarioName string  `json:"scenario_name"`
	Value        float64 `json:"value"`
}

// Report is the cross-scenario comparison. Winners are nil when the report
// is not Sufficient, and FastestExecution is also nil when no result has a
// non-zero average execution time.
type Report struct {
	Results          []models.ScenarioResult `json:"results"`
	Assessments      []Assessment            `json:"assessments"`
	Sufficient       bool                    `json:"sufficient"`
	FastestExecution *Winner                 `json:"fastest_execution,omitempty"`
	BestUtilization  *Winner                 `json:"best_utilization,omitempty"`
	MostReliable     *Winner                 `json:"most_reliable,omitempty"`
}

// Compare selects three independent winners: lowest non-zero average
// execution time, highest cloudlets per VM and highest success rate. Ties go
// to the earliest result.
func Compare(results []models.ScenarioResult) *Report {
	report := &Report{
		Results:     append([]models.ScenarioResult(nil), results...),
		Assessments: make([]Assessment, 0, len(results)),
		Sufficient:  len(results) >= MinResults,
	}
	for i := range results {
		report.Assessments = append(report.Assessments, Assess(&results[i]))
	}
	if !report.Sufficient {
		return report
	}

	report.FastestExecution = fastest(results)
	report.BestUtilization = highest(results, func(r *models.ScenarioResult) float64 { return r.CloudletsPerVM })
	report.MostReliable = highest(results, func(r *models.ScenarioResult) float64 { return r.SuccessRate })
	return report
}

// fastest returns the first result with the lowest non-zero average
// execution time
func fastest(results []models.ScenarioResult) *Winner {
	best := -1
	for i := range results {
		avg := results[i].AverageExecutionTime
		if avg <= 0 {
			continue
		}
		if best < 0 || avg < results[best].AverageExecutionTime {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return newWinner(&results[best], results[best].AverageExecutionTime)
}

// highest returns the first result with the highest value
func highest(results []models.ScenarioResult, value func(*models.ScenarioResult) float64) *Winner {
	if len(results) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(results); i++ {
		if value(&results[i]) > value(&results[best]) {
			best = i
		}
	}
	return newWinner(&results[best], value(&results[best]))
}

func newWinner(r *models.ScenarioResult, v float64) *Winner {
	return &Winner{ScenarioID: r.ScenarioID, ScenarioName: r.ScenarioName, Value: v}
}
