package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/comparison"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/engine"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/report"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/scenario"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/workload"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/utils"
)

type options struct {
	scenario   string
	catalog    string
	seed       int64
	logLevel   string
	logFormat  string
	reportJSON string
	metricsOut string
	users      int
	trace      bool
}

func run(ctx context.Context, opts options) error {
	if opts.logFormat != "text" && opts.logFormat != "json" {
		return fmt.Errorf("invalid log format %q (must be text or json)", opts.logFormat)
	}
	log := logger.NewFormat(opts.logFormat, opts.logLevel, os.Stdout)
	logger.SetDefault(log)

	catalog, err := config.LoadCatalog(opts.catalog)
	if err != nil {
		return err
	}
	table, err := workload.NewCategoryTable(catalog.Categories)
	if err != nil {
		return err
	}
	ids, err := selectScenarios(opts.scenario, catalog)
	if err != nil {
		return err
	}

	rng := utils.NewRandSource(opts.seed)
	log.Info("Starting campus simulation", "scenarios", ids, "seed", rng.Seed(), "users", opts.users)

	reporter := report.New(log, catalog.CampusLabel)
	exporter := metrics.NewExporter()
	runner := scenario.NewRunner(engine.NewEngine(log), rng, log, scenario.Options{
		UserCount: opts.users,
		Trace:     opts.trace,
		OnRecord: func(rec scenario.Record) {
			reporter.Scenario(rec)
			exporter.Observe(rec.Result)
		},
	})
	planner := scenario.NewPlanner(catalog, table, log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, failures := scenario.RunAll(ctx, planner, runner, ids)

	rep := comparison.Compare(results.ScenarioResults())
	if len(ids) > 1 {
		reporter.Comparison(rep)
	}

	if opts.reportJSON != "" {
		if err := writeFile(opts.reportJSON, func(f *os.File) error { return report.ExportJSON(f, rep) }); err != nil {
			return err
		}
		log.Info("Report written", "path", opts.reportJSON)
	}
	if opts.metricsOut != "" {
		if err := writeFile(opts.metricsOut, func(f *os.File) error { return exporter.WriteText(f) }); err != nil {
			return err
		}
		log.Info("Metrics written", "path", opts.metricsOut)
	}

	provisioning := 0
	for _, f := range failures {
		if f.IsProvisioning() {
			provisioning++
		}
	}
	log.Info("Campus simulation finished",
		"completed", results.Len(),
		"failed", len(failures))
	if provisioning > 0 {
		return fmt.Errorf("%d scenario(s) failed to provision", provisioning)
	}
	return nil
}

// selectScenarios resolves the --scenario value against the catalogue
func selectScenarios(value string, catalog *config.Catalog) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return catalog.ScenarioIDs(), nil
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario %q (must be a catalogue id or all)", value)
	}
	if _, ok := catalog.Scenario(id); !ok {
		return nil, fmt.Errorf("scenario %d is not in the catalogue (have %v)", id, catalog.ScenarioIDs())
	}
	return []int{id}, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
