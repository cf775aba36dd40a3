// Package metrics turns workload outcomes into per-category, per-campus and
// per-scenario statistics and exports them as Prometheus gauges.
package metrics

import (
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/workload"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/utils"
)

// Stage is the position of an Aggregation in its pipeline
type Stage int

const (
	StageCollecting Stage = iota
	StagePerCategoryAnalyzed
	StagePerCampusSummarized
	StageScenarioFinalized
)

func (s Stage) String() string {
	switch s {
	case StageCollecting:
		return "COLLECTING"
	case StagePerCategoryAnalyzed:
		return "PER_CATEGORY_ANALYZED"
	case StagePerCampusSummarized:
		return "PER_CAMPUS_SUMMARIZED"
	case StageScenarioFinalized:
		return "SCENARIO_FINALIZED"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ErrStageOrder is returned when a stage is called out of order
var ErrStageOrder = errors.New("aggregation stage out of order")

// ScenarioInfo is the scenario-level context the engine does not report
type ScenarioInfo struct {
	ID              int
	Name            string
	Architecture    models.Architecture
	DatacenterCount int
	Makespan        float64
}

// CampusOutcomes are the outcomes returned for one broker
type CampusOutcomes struct {
	Campus   string
	BrokerID models.BrokerID
	VMCount  int
	Outcomes []models.WorkloadOutcome
}

// Aggregation walks one scenario's outcomes through the fixed stage order.
// It is not safe for concurrent use.
type Aggregation struct {
	table *workload.CategoryTable
	info  ScenarioInfo
	stage Stage

	campuses      []CampusOutcomes
	categories    [][]models.CategoryStats
	uncategorized []int
	summaries     []models.CampusStats
	result        *models.ScenarioResult
}

// NewAggregation starts an aggregation in the COLLECTING stage
func NewAggregation(table *workload.CategoryTable, info ScenarioInfo) *Aggregation {
	return &Aggregation{table: table, info: info, stage: StageCollecting}
}

// Stage returns the current stage
func (a *Aggregation) Stage() Stage {
	return a.stage
}

func (a *Aggregation) expect(stage Stage, op string) error {
	if a.stage != stage {
		return fmt.Errorf("%w: %s requires %s, aggregation is %s", ErrStageOrder, op, stage, a.stage)
	}
	return nil
}

// Collect adds one broker's outcomes. The slice is copied.
func (a *Aggregation) Collect(c CampusOutcomes) error {
	if err := a.expect(StageCollecting, "collect"); err != nil {
		return err
	}
	outcomes := make([]models.WorkloadOutcome, len(c.Outcomes))
	copy(outcomes, c.Outcomes)
	c.Outcomes = outcomes
	a.campuses = append(a.campuses, c)
	return nil
}

// AnalyzeCategories refilters each campus's raw outcomes by the category
// table. Outcomes outside every range are only counted.
func (a *Aggregation) AnalyzeCategories() error {
	if err := a.expect(StageCollecting, "analyze categories"); err != nil {
		return err
	}

	a.categories = make([][]models.CategoryStats, len(a.campuses))
	a.uncategorized = make([]int, len(a.campuses))
	for i, c := range a.campuses {
		groups := make(map[string][]models.WorkloadOutcome)
		for _, o := range c.Outcomes {
			name := a.table.Classify(o.WorkloadID).Name
			if name == workload.Unclassified {
				a.uncategorized[i]++
				continue
			}
			groups[name] = append(groups[name], o)
		}

		stats := make([]models.CategoryStats, 0, len(groups))
		for _, cat := range a.table.Categories() {
			outcomes, ok := groups[cat.Name]
			if !ok {
				continue
			}
			stats = append(stats, models.CategoryStats{
				Category: cat.Name,
				Label:    a.table.Label(cat.Name),
				Stats:    computeStats(outcomes),
			})
		}
		a.categories[i] = stats
	}

	a.stage = StagePerCategoryAnalyzed
	return nil
}

// SummarizeCampuses computes campus totals from the raw outcomes, independent
// of the category pass.
func (a *Aggregation) SummarizeCampuses() error {
	if err := a.expect(StagePerCategoryAnalyzed, "summarize campuses"); err != nil {
		return err
	}

	a.summaries = make([]models.CampusStats, 0, len(a.campuses))
	for i, c := range a.campuses {
		a.summaries = append(a.summaries, models.CampusStats{
			Campus:        c.Campus,
			BrokerID:      c.BrokerID,
			VMCount:       c.VMCount,
			Stats:         computeStats(c.Outcomes),
			Categories:    a.categories[i],
			Uncategorized: a.uncategorized[i],
		})
	}

	a.stage = StagePerCampusSummarized
	return nil
}

// Finalize sums campus summaries into the scenario result
func (a *Aggregation) Finalize() (*models.ScenarioResult, error) {
	if err := a.expect(StagePerCampusSummarized, "finalize"); err != nil {
		return nil, err
	}

	parts := make([]models.ExecutionStats, 0, len(a.summaries))
	vms := 0
	for _, s := range a.summaries {
		parts = append(parts, s.Stats)
		vms += s.VMCount
	}
	total := mergeStats(parts)

	a.result = &models.ScenarioResult{
		ScenarioID:           a.info.ID,
		ScenarioName:         a.info.Name,
		Architecture:         a.info.Architecture,
		DatacenterCount:      a.info.DatacenterCount,
		TotalVMs:             vms,
		TotalWorkload:        total.Count,
		SuccessfulWorkload:   total.Successes,
		SuccessRate:          total.SuccessRate,
		AverageExecutionTime: total.AverageTime,
		MinExecutionTime:     total.MinTime,
		MaxExecutionTime:     total.MaxTime,
		Makespan:             utils.Finite(a.info.Makespan),
		CloudletsPerVM:       utils.SafeDivide(float64(total.Count), float64(vms)),
		Campuses:             a.summaries,
	}

	a.stage = StageScenarioFinalized
	return a.result, nil
}

// Result returns the finalized result
func (a *Aggregation) Result() (*models.ScenarioResult, error) {
	if err := a.expect(StageScenarioFinalized, "result"); err != nil {
		return nil, err
	}
	return a.result, nil
}

// Aggregate runs every stage over the given outcomes. It keeps no state
// between calls, so equal inputs give equal results.
func Aggregate(table *workload.CategoryTable, info ScenarioInfo, campuses []CampusOutcomes) (*models.ScenarioResult, error) {
	agg := NewAggregation(table, info)
	for _, c := range campuses {
		if err := agg.Collect(c); err != nil {
			return nil, err
		}
	}
	if err := agg.AnalyzeCategories(); err != nil {
		return nil, err
	}
	if err := agg.SummarizeCampuses(); err != nil {
		return nil, err
	}
	return agg.Finalize()
}
