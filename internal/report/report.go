// Package report renders scenario records and the cross-scenario comparison
// as structured log lines and JSON.
package report

import (
	"log/slog"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/comparison"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/scenario"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/utils"
)

// Reporter writes report lines to a logger
type Reporter struct {
	log    *slog.Logger
	labels func(campus string) string
}

// New creates a reporter. labels maps campus names to display labels; nil
// keeps the names.
func New(log *slog.Logger, labels func(string) string) *Reporter {
	if labels == nil {
		labels = func(name string) string { return name }
	}
	return &Reporter{log: logger.OrDefault(log), labels: labels}
}

// Scenario reports provisioning and results of one run
func (r *Reporter) Scenario(rec scenario.Record) {
	id := rec.Plan.Scenario.ID
	log := r.log.With("scenario", id)

	log.Info("Scenario",
		"name", rec.Plan.Scenario.Name,
		"architecture", rec.Plan.Scenario.Architecture,
		"run_id", rec.RunID)

	for _, dc := range rec.Plan.Datacenters {
		log.Info("Datacenter",
			"name", dc.Name,
			"hosts", dc.HostCount,
			"pes_per_host", dc.PEsPerHost,
			"ram_per_host_mb", dc.RAMPerHost,
			"mips_per_pe", dc.MIPSPerPE,
			"power_watts", []float64{dc.MinPowerWatts, dc.MaxPowerWatts})
	}
	t := rec.Plan.Totals
	log.Info("Infrastructure totals",
		"datacenters", t.Datacenters,
		"hosts", t.Hosts,
		"pes", t.PEs,
		"ram_mb", t.RAM,
		"mips", t.MIPS)

	if rec.Partition != nil {
		counts := rec.Partition.CountByCampus()
		for _, b := range rec.Brokers {
			failed := len(rec.FailedVMs[b.ID])
			log.Info("VM pool",
				"campus", r.labels(b.Campus),
				"vms", counts[b.Campus],
				"created", counts[b.Campus]-failed,
				"failed", failed)
		}
		log.Info("VMs provisioned",
			"total", rec.Partition.Total(),
			"budget", rec.Partition.Budget,
			"budget_matched", rec.Partition.BudgetMatched())
	}

	for _, b := range rec.Brokers {
		log.Info("Workload distribution", "campus", r.labels(b.Campus), "units", rec.Workload[b.ID])
	}
	if rec.Unassigned > 0 {
		log.Warn("Dead assignments", "count", rec.Unassigned)
	}
	if n := rec.PlacementFailures(); n > 0 {
		log.Warn("VM placement failures", "count", n)
	}
	for _, u := range rec.Usage {
		log.Info("Datacenter allocation",
			"name", u.Name,
			"vms", u.VMs,
			"used_pes", u.UsedPEs,
			"total_pes", u.TotalPEs)
	}

	if rec.Result == nil {
		return
	}
	for _, c := range rec.Result.Campuses {
		log.Info("Campus results",
			"campus", r.labels(c.Campus),
			"vms", c.VMCount,
			"workload", c.Stats.Count,
			"successful", c.Stats.Successes,
			"avg_time", utils.Round(c.Stats.AverageTime, 2),
			"min_time", utils.Round(c.Stats.MinTime, 2),
			"max_time", utils.Round(c.Stats.MaxTime, 2),
			"stddev_time", utils.Round(c.Stats.StdDevTime, 2),
			"uncategorized", c.Uncategorized)
		for _, cat := range c.Categories {
			log.Info("Category results",
				"campus", r.labels(c.Campus),
				"category", cat.Label,
				"workload", cat.Stats.Count,
				"successful", cat.Stats.Successes,
				"avg_time", utils.Round(cat.Stats.AverageTime, 2))
		}
	}

	res := rec.Result
	a := comparison.Assess(res)
	log.Info("Scenario summary",
		"vms", res.TotalVMs,
		"workload", res.TotalWorkload,
		"successful", res.SuccessfulWorkload,
		"success_rate", utils.Round(res.SuccessRate, 2),
		"avg_time", utils.Round(res.AverageExecutionTime, 2),
		"makespan", utils.Round(res.Makespan, 2),
		"cloudlets_per_vm", utils.Round(res.CloudletsPerVM, 2),
		"efficiency", utils.Round(a.Efficiency, 2),
		"utilization", a.Utilization,
		"performance", a.Performance)
	if a.Notes.Layout != "" {
		log.Info("Architecture notes",
			"layout", a.Notes.Layout,
			"strengths", a.Notes.Strengths,
			"caveats", a.Notes.Caveats,
			"recommended_for", a.Notes.RecommendedFor)
	}
}

// Comparison reports the comparative table and the winners
func (r *Reporter) Comparison(rep *comparison.Report) {
	if !rep.Sufficient {
		r.log.Warn("Insufficient data for comparison",
			"results", len(rep.Results),
			"required", comparison.MinResults)
		return
	}

	for _, res := range rep.Results {
		r.log.Info("Comparison",
			"scenario", res.ScenarioID,
			"name", res.ScenarioName,
			"datacenters", res.DatacenterCount,
			"vms", res.TotalVMs,
			"workload", res.TotalWorkload,
			"success_rate", utils.Round(res.SuccessRate, 2),
			"avg_time", utils.Round(res.AverageExecutionTime, 2),
			"cloudlets_per_vm", utils.Round(res.CloudletsPerVM, 2))
	}

	r.winner("Fastest execution", rep.FastestExecution)
	r.winner("Best utilization", rep.BestUtilization)
	r.winner("Most reliable", rep.MostReliable)
}

func (r *Reporter) winner(title string, w *comparison.Winner) {
	if w == nil {
		r.log.Info(title, "scenario", "none")
		return
	}
	r.log.Info(title,
		"scenario", w.ScenarioID,
		"name", w.ScenarioName,
		"value", utils.Round(w.Value, 2))
}
