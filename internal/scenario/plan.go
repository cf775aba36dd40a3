package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/topology"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/workload"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Plan is everything a run needs that can be computed without the engine
type Plan struct {
	Scenario    *config.Scenario
	Campuses    []config.Campus
	Datacenters []models.DatacenterSpec
	Totals      topology.Totals
	Batches     []config.Batch
	Table       *workload.CategoryTable
}

// Architecture returns the scenario's architecture kind
func (p *Plan) Architecture() models.Architecture {
	return models.Architecture(p.Scenario.Architecture)
}

// Planner evaluates catalogue scenarios into plans
type Planner struct {
	catalog *config.Catalog
	table   *workload.CategoryTable
	log     *slog.Logger
}

// NewPlanner creates a planner over catalog. The category table is shared by
// every plan.
func NewPlanner(catalog *config.Catalog, table *workload.CategoryTable, log *slog.Logger) *Planner {
	return &Planner{
		catalog: catalog,
		table:   table,
		log:     logger.OrDefault(log),
	}
}

// Plan builds the topology and checks the workload of one scenario
func (p *Planner) Plan(id int) (*Plan, error) {
	s, ok := p.catalog.Scenario(id)
	if !ok {
		return nil, models.NewConfigurationError(fmt.Sprintf("scenario %d", id), "id", "is not in the catalogue")
	}

	datacenters, err := topology.ForScenario(s)
	if err != nil {
		return nil, err
	}
	if len(s.Pools) == 0 {
		return nil, &models.ProvisioningEmptyError{ScenarioID: id, Resource: "vms"}
	}

	batches := p.catalog.BatchesFor(s)
	if len(batches) == 0 {
		return nil, &models.ProvisioningEmptyError{ScenarioID: id, Resource: "workload"}
	}
	for _, b := range batches {
		if err := workload.ValidateBatch(workload.NewBatch(b, models.NoBroker)); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", id, err)
		}
	}

	plan := &Plan{
		Scenario:    s,
		Campuses:    p.catalog.Campuses,
		Datacenters: datacenters,
		Totals:      topology.Summarize(datacenters),
		Batches:     batches,
		Table:       p.table,
	}
	p.log.Debug("Scenario planned",
		"scenario", id,
		"datacenters", plan.Totals.Datacenters,
		"hosts", plan.Totals.Hosts,
		"batches", len(batches))
	return plan, nil
}

// PlanAll plans scenarios in parallel. Plans and errors are index-aligned
// with ids; one failing scenario does not stop the others. The returned
// error is set only when ctx is cancelled before every plan was built.
func (p *Planner) PlanAll(ctx context.Context, ids []int) ([]*Plan, []error, error) {
	plans := make([]*Plan, len(ids))
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			plans[i], errs[i] = p.Plan(id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return plans, errs, err
	}
	return plans, errs, nil
}
