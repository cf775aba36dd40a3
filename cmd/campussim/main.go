package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/config"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := newRootCmd(settings).Execute(); err != nil {
		logger.Error("campussim failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(settings *config.Settings) *cobra.Command {
	opts := options{
		scenario:  "all",
		catalog:   settings.CatalogPath,
		seed:      settings.Seed,
		logLevel:  settings.LogLevel,
		logFormat: settings.LogFormat,
		users:     settings.UserCount,
		trace:     settings.Trace,
	}

	cmd := &cobra.Command{
		Use:   "campussim",
		Short: "Compare campus cloud architectures by simulation",
		Long: `campussim provisions the datacenters, VM pools and workload of each
catalogue scenario, runs them through the discrete-event engine and compares
execution time, utilization and reliability across scenarios.

Flags override the ` + config.EnvPrefix + `_* environment variables.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.scenario, "scenario", opts.scenario, "scenario to run: a catalogue id or all")
	f.StringVar(&opts.catalog, "catalog", opts.catalog, "scenario catalogue YAML (default embedded)")
	f.Int64Var(&opts.seed, "seed", opts.seed, "workload random seed (0 seeds from time)")
	f.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", opts.logFormat, "log format (text, json)")
	f.StringVar(&opts.reportJSON, "report-json", "", "write the comparison report as JSON to this file")
	f.StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus text metrics to this file")
	f.IntVar(&opts.users, "users", opts.users, "user count passed to the engine")
	f.BoolVar(&opts.trace, "trace", opts.trace, "log every engine event")

	return cmd
}
