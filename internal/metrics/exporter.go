package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

const (
	namespace = "campussim"

	scenarioLabel     = "scenario"
	architectureLabel = "architecture"
	campusLabel       = "campus"
	categoryLabel     = "category"
)

// Exporter publishes scenario results as gauges in a private registry
type Exporter struct {
	registry *prometheus.Registry

	scenarioWorkload    *prometheus.GaugeVec
	scenarioSuccessful  *prometheus.GaugeVec
	scenarioSuccessRate *prometheus.GaugeVec
	scenarioAvgTime     *prometheus.GaugeVec
	scenarioMakespan    *prometheus.GaugeVec
	scenarioPerVM       *prometheus.GaugeVec
	scenarioVMs         *prometheus.GaugeVec

	campusWorkload   *prometheus.GaugeVec
	campusSuccessful *prometheus.GaugeVec
	campusAvgTime    *prometheus.GaugeVec

	categoryWorkload *prometheus.GaugeVec
	categoryAvgTime  *prometheus.GaugeVec
}

func newGaugeVec(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, labels)
}

// NewExporter creates an exporter with its own registry
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),

		scenarioWorkload:    newGaugeVec("scenario", "workload_total", "Number of workload units submitted in the scenario.", scenarioLabel, architectureLabel),
		scenarioSuccessful:  newGaugeVec("scenario", "workload_successful", "Number of workload units that finished successfully.", scenarioLabel, architectureLabel),
		scenarioSuccessRate: newGaugeVec("scenario", "success_rate_percent", "Share of successful workload units in percent.", scenarioLabel, architectureLabel),
		scenarioAvgTime:     newGaugeVec("scenario", "execution_time_avg_seconds", "Average CPU time of successful workload units.", scenarioLabel, architectureLabel),
		scenarioMakespan:    newGaugeVec("scenario", "makespan_seconds", "Simulated time at which the scenario finished.", scenarioLabel, architectureLabel),
		scenarioPerVM:       newGaugeVec("scenario", "cloudlets_per_vm", "Workload units per provisioned VM.", scenarioLabel, architectureLabel),
		scenarioVMs:         newGaugeVec("scenario", "vms", "Number of VMs provisioned in the scenario.", scenarioLabel, architectureLabel),

		campusWorkload:   newGaugeVec("campus", "workload_total", "Number of workload units owned by the campus broker.", scenarioLabel, campusLabel),
		campusSuccessful: newGaugeVec("campus", "workload_successful", "Number of successful workload units of the campus broker.", scenarioLabel, campusLabel),
		campusAvgTime:    newGaugeVec("campus", "execution_time_avg_seconds", "Average CPU time of the campus's successful workload units.", scenarioLabel, campusLabel),

		categoryWorkload: newGaugeVec("category", "workload_total", "Number of workload units per category within a campus.", scenarioLabel, campusLabel, categoryLabel),
		categoryAvgTime:  newGaugeVec("category", "execution_time_avg_seconds", "Average CPU time per category within a campus.", scenarioLabel, campusLabel, categoryLabel),
	}

	e.registry.MustRegister(
		e.scenarioWorkload, e.scenarioSuccessful, e.scenarioSuccessRate, e.scenarioAvgTime,
		e.scenarioMakespan, e.scenarioPerVM, e.scenarioVMs,
		e.campusWorkload, e.campusSuccessful, e.campusAvgTime,
		e.categoryWorkload, e.categoryAvgTime,
	)
	return e
}

// Registry exposes the private registry
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe sets every gauge for one scenario result
func (e *Exporter) Observe(r *models.ScenarioResult) {
	scenario := strconv.Itoa(r.ScenarioID)
	arch := string(r.Architecture)

	e.scenarioWorkload.WithLabelValues(scenario, arch).Set(float64(r.TotalWorkload))
	e.scenarioSuccessful.WithLabelValues(scenario, arch).Set(float64(r.SuccessfulWorkload))
	e.scenarioSuccessRate.WithLabelValues(scenario, arch).Set(r.SuccessRate)
	e.scenarioAvgTime.WithLabelValues(scenario, arch).Set(r.AverageExecutionTime)
	e.scenarioMakespan.WithLabelValues(scenario, arch).Set(r.Makespan)
	e.scenarioPerVM.WithLabelValues(scenario, arch).Set(r.CloudletsPerVM)
	e.scenarioVMs.WithLabelValues(scenario, arch).Set(float64(r.TotalVMs))

	for _, c := range r.Campuses {
		e.campusWorkload.WithLabelValues(scenario, c.Campus).Set(float64(c.Stats.Count))
		e.campusSuccessful.WithLabelValues(scenario, c.Campus).Set(float64(c.Stats.Successes))
		e.campusAvgTime.WithLabelValues(scenario, c.Campus).Set(c.Stats.AverageTime)

		for _, cat := range c.Categories {
			e.categoryWorkload.WithLabelValues(scenario, c.Campus, cat.Category).Set(float64(cat.Stats.Count))
			e.categoryAvgTime.WithLabelValues(scenario, c.Campus, cat.Category).Set(cat.Stats.AverageTime)
		}
	}
}

// WriteText renders the registry in the Prometheus text exposition format
func (e *Exporter) WriteText(w io.Writer) error {
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
