package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/utils"
)

// computeStats summarizes outcomes. Time statistics cover successes only and
// are zero when there are none.
func computeStats(outcomes []models.WorkloadOutcome) models.ExecutionStats {
	s := models.ExecutionStats{Count: len(outcomes)}

	times := make([]float64, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Succeeded() {
			times = append(times, o.CPUTime)
		}
	}
	s.Successes = len(times)
	s.SuccessRate = utils.Percent(s.Successes, s.Count)
	if len(times) == 0 {
		return s
	}

	s.TotalTime = floats.Sum(times)
	s.AverageTime = s.TotalTime / float64(len(times))
	s.MinTime = floats.Min(times)
	s.MaxTime = floats.Max(times)
	if len(times) > 1 {
		_, s.StdDevTime = stat.PopMeanStdDev(times, nil)
	}
	return s
}

// mergeStats combines already computed stats. StdDevTime is not additive and
// stays zero.
func mergeStats(parts []models.ExecutionStats) models.ExecutionStats {
	var s models.ExecutionStats
	first := true
	for _, p := range parts {
		s.Count += p.Count
		s.Successes += p.Successes
		s.TotalTime += p.TotalTime
		if p.Successes == 0 {
			continue
		}
		if first || p.MinTime < s.MinTime {
			s.MinTime = p.MinTime
		}
		if first || p.MaxTime > s.MaxTime {
			s.MaxTime = p.MaxTime
		}
		first = false
	}
	s.SuccessRate = utils.Percent(s.Successes, s.Count)
	s.AverageTime = utils.SafeDivide(s.TotalTime, float64(s.Successes))
	return s
}
