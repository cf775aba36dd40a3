package comparison

import (
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Rating is a coarse verdict on one metric
type Rating string

const (
	RatingExcellent Rating = "EXCELLENT"
	RatingGood      Rating = "GOOD"
	RatingModerate  Rating = "MODERATE"
)

// Thresholds for the ratings
const (
	excellentUtilization = 15.0 // cloudlets per VM
	goodUtilization      = 10.0
	excellentAvgTime     = 500.0 // seconds
	goodAvgTime          = 1000.0
)

// ArchitectureNotes describe the trade-offs of an architecture
type ArchitectureNotes struct {
	Layout         string `json:"layout"`
	Strengths      string `json:"strengths"`
	Caveats        string `json:"caveats"`
	RecommendedFor string `json:"recommended_for"`
}

// Assessment is the verdict for a single scenario result
type Assessment struct {
	ScenarioID  int               `json:"scenario_id"`
	Efficiency  float64           `json:"efficiency"`
	Utilization Rating            `json:"utilization"`
	Performance Rating            `json:"performance"`
	Notes       ArchitectureNotes `json:"notes"`
}

var architectureNotes = map[models.Architecture]ArchitectureNotes{
	models.ArchitectureCentralized: {
		Layout:         "single centralized datacenter",
		Strengths:      "maximum performance, lower cost, centralized maintenance",
		Caveats:        "higher latency for remote campuses, single point of failure",
		RecommendedFor: "critical applications and compute-intensive work",
	},
	models.ArchitectureDistributed: {
		Layout:         "one datacenter per city",
		Strengths:      "reduced latency, geographic resilience, local autonomy",
		Caveats:        "higher infrastructure cost, distributed management, duplicated resources",
		RecommendedFor: "autonomous campuses and real-time applications",
	},
	models.ArchitectureHybrid: {
		Layout:         "central datacenter plus edge sites and public cloud",
		Strengths:      "cost/performance balance, flexibility, resource optimization",
		Caveats:        "complex multi-tier management, multi-cloud integration",
		RecommendedFor: "heterogeneous multi-campus environments expecting growth",
	},
}

// NotesFor returns the notes for an architecture, or empty notes
func NotesFor(arch models.Architecture) ArchitectureNotes {
	return architectureNotes[arch]
}

// Efficiency scores resource use against speed: cloudletsPerVM·100/(avg+1)
func Efficiency(r *models.ScenarioResult) float64 {
	return r.CloudletsPerVM * 100 / (r.AverageExecutionTime + 1)
}

// UtilizationRating rates cloudlets per VM
func UtilizationRating(cloudletsPerVM float64) Rating {
	switch {
	case cloudletsPerVM > excellentUtilization:
		return RatingExcellent
	case cloudletsPerVM > goodUtilization:
		return RatingGood
	default:
		return RatingModerate
	}
}

// PerformanceRating rates the average execution time
func PerformanceRating(avgTime float64) Rating {
	switch {
	case avgTime < excellentAvgTime:
		return RatingExcellent
	case avgTime < goodAvgTime:
		return RatingGood
	default:
		return RatingModerate
	}
}

// Assess computes the verdict for one result
func Assess(r *models.ScenarioResult) Assessment {
	return Assessment{
		ScenarioID:  r.ScenarioID,
		Efficiency:  Efficiency(r),
		Utilization: UtilizationRating(r.CloudletsPerVM),
		Performance: PerformanceRating(r.AverageExecutionTime),
		Notes:       NotesFor(r.Architecture),
	}
}
