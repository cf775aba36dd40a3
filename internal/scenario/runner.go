package scenario

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/provision"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/routing"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/workload"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/utils"
)

// Options tune a Runner
type Options struct {
	// UserCount is passed to Simulator.Init
	UserCount int
	// Trace turns on per-event engine logging
	Trace bool
	// OnRecord is called after each successful run
	OnRecord func(Record)
}

// Runner drives one scenario at a time through the simulator
type Runner struct {
	sim         Simulator
	rng         utils.Source
	partitioner *provision.Partitioner
	log         *slog.Logger
	opts        Options
}

// NewRunner creates a runner. rng feeds workload length variation.
func NewRunner(sim Simulator, rng utils.Source, log *slog.Logger, opts Options) *Runner {
	log = logger.OrDefault(log)
	return &Runner{
		sim:         sim,
		rng:         rng,
		partitioner: provision.NewPartitioner(log),
		log:         log,
		opts:        opts,
	}
}

func engineError(id int, op string, err error) error {
	return &models.EngineFailureError{ScenarioID: id, Operation: op, Err: err}
}

// Run executes the plan and returns acc with the new record appended. On
// error acc is returned unchanged.
func (r *Runner) Run(plan *Plan, acc Results) (Results, error) {
	id := plan.Scenario.ID
	runID := utils.GenerateRunID(id)
	log := r.log.With("scenario", id, "run_id", runID)

	log.Info("Scenario started",
		"name", plan.Scenario.Name,
		"architecture", plan.Scenario.Architecture)

	if err := r.sim.Init(r.opts.UserCount, r.opts.Trace); err != nil {
		return acc, engineError(id, "init", err)
	}
	for _, dc := range plan.Datacenters {
		if _, err := r.sim.RegisterDatacenter(dc); err != nil {
			return acc, engineError(id, "register datacenter "+dc.Name, err)
		}
	}

	brokers := make([]models.Broker, 0, len(plan.Campuses))
	byCampus := make(map[string]models.BrokerID, len(plan.Campuses))
	ids := make([]models.BrokerID, 0, len(plan.Campuses))
	for _, campus := range plan.Campuses {
		b, err := r.sim.RegisterBroker(utils.BrokerName(campus.Name))
		if err != nil {
			return acc, engineError(id, "register broker "+campus.Name, err)
		}
		brokers = append(brokers, models.Broker{ID: b, Name: utils.BrokerName(campus.Name), Campus: campus.Name})
		byCampus[campus.Name] = b
		ids = append(ids, b)
	}

	part, err := r.partitioner.Partition(plan.Scenario, byCampus)
	if err != nil {
		return acc, errors.Wrapf(err, "scenario %d: partition", id)
	}
	vms := provision.MaterializeVMs(part.Pools)
	if len(vms) == 0 {
		return acc, &models.ProvisioningEmptyError{ScenarioID: id, Resource: "vms"}
	}

	vmRoute := routing.Route(vms, ids)
	unassigned := len(vmRoute.Unassigned)
	if unassigned > 0 {
		log.Warn("VMs without a broker", "unassigned", unassigned, "total", vmRoute.Total())
	}
	for _, b := range ids {
		if err := r.sim.SubmitVMs(b, vmRoute.Bucket(b)); err != nil {
			return acc, engineError(id, "submit vms", err)
		}
	}

	gen := workload.NewGenerator(r.rng, plan.Table, log)
	units := make([]models.WorkloadUnit, 0)
	for _, cfg := range plan.Batches {
		batch := workload.NewBatch(cfg, byCampus[cfg.Campus])
		if err := workload.ValidateBatch(batch); err != nil {
			return acc, errors.Wrapf(err, "scenario %d: workload", id)
		}
		units = append(units, gen.GenerateBatch(batch, vmRoute.Bucket(batch.BrokerID))...)
	}
	if len(units) == 0 {
		return acc, &models.ProvisioningEmptyError{ScenarioID: id, Resource: "workload"}
	}

	unitRoute := routing.Route(units, ids)
	if n := len(unitRoute.Unassigned); n > 0 {
		log.Warn("Workload units without a broker", "unassigned", n, "total", unitRoute.Total())
		unassigned += n
	}
	perBroker := make(map[models.BrokerID]int, len(ids))
	for _, b := range ids {
		bucket := unitRoute.Bucket(b)
		perBroker[b] = len(bucket)
		if err := r.sim.SubmitWorkload(b, bucket); err != nil {
			return acc, engineError(id, "submit workload", err)
		}
	}

	clock, err := r.sim.Run()
	if err != nil {
		return acc, engineError(id, "run", err)
	}

	failed := make(map[models.BrokerID][]int, len(brokers))
	for _, b := range brokers {
		vmIDs := r.sim.FailedVMs(b.ID)
		if len(vmIDs) == 0 {
			continue
		}
		failed[b.ID] = vmIDs
		log.Warn("VMs failed placement",
			"campus", b.Campus,
			"failed", len(vmIDs),
			"requested", len(vmRoute.Bucket(b.ID)))
	}

	campuses := make([]metrics.CampusOutcomes, 0, len(brokers))
	for _, b := range brokers {
		campuses = append(campuses, metrics.CampusOutcomes{
			Campus:   b.Campus,
			BrokerID: b.ID,
			VMCount:  len(vmRoute.Bucket(b.ID)),
			Outcomes: r.sim.CompletedWorkload(b.ID),
		})
	}

	result, err := metrics.Aggregate(plan.Table, metrics.ScenarioInfo{
		ID:              id,
		Name:            plan.Scenario.Name,
		Architecture:    plan.Architecture(),
		DatacenterCount: len(plan.Datacenters),
		Makespan:        clock,
	}, campuses)
	if err != nil {
		return acc, errors.Wrapf(err, "scenario %d: aggregate", id)
	}

	log.Info("Scenario completed",
		"workload", result.TotalWorkload,
		"successful", result.SuccessfulWorkload,
		"makespan", result.Makespan)

	rec := Record{
		RunID:      runID,
		Plan:       plan,
		Brokers:    brokers,
		Partition:  part,
		Workload:   perBroker,
		Unassigned: unassigned,
		FailedVMs:  failed,
		Usage:      r.sim.DatacenterUsage(),
		Result:     result,
	}
	if r.opts.OnRecord != nil {
		r.opts.OnRecord(rec)
	}
	return acc.Append(rec), nil
}

// Failure is a scenario that produced no result
type Failure struct {
	ScenarioID int
	Err        error
}

// IsProvisioning reports whether the scenario failed before reaching the
// engine's execution phase because of its configuration
func (f Failure) IsProvisioning() bool {
	return errors.Is(f.Err, models.ErrProvisioningEmpty) || errors.Is(f.Err, models.ErrConfiguration)
}

// RunAll plans ids in parallel and runs the plans in order. A failed
// scenario is logged and skipped.
func RunAll(ctx context.Context, planner *Planner, runner *Runner, ids []int) (Results, []Failure) {
	var (
		results  Results
		failures []Failure
	)

	plans, planErrs, err := planner.PlanAll(ctx, ids)
	if err != nil {
		for _, id := range ids {
			failures = append(failures, Failure{ScenarioID: id, Err: err})
		}
		return results, failures
	}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			failures = append(failures, Failure{ScenarioID: id, Err: err})
			continue
		}
		if planErrs[i] != nil {
			runner.log.Error("Scenario could not be provisioned", "scenario", id, "error", planErrs[i])
			failures = append(failures, Failure{ScenarioID: id, Err: planErrs[i]})
			continue
		}

		next, err := runner.Run(plans[i], results)
		if err != nil {
			runner.log.Error("Scenario failed", "scenario", id, "error", err)
			failures = append(failures, Failure{ScenarioID: id, Err: err})
			continue
		}
		results = next
	}
	return results, failures
}
