package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/weeklyfit/internal/config"
	"github.com/2beens/weeklyfit/internal/logging"
	"github.com/2beens/weeklyfit/internal/metrics"
	"github.com/2beens/weeklyfit/internal/tracker"
	"github.com/2beens/weeklyfit/pkg"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type userNames []string

func (u *userNames) String() string {
	return strings.Join(*u, ",")
}

func (u *userNames) Set(name string) error {
	*u = append(*u, name)
	return nil
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	var users userNames
	flag.Var(&users, "user", "user to report on, can be repeated (defaults to the config reports list)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugln("no .env file found, using environment variables only")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if cfg.LogsPath != "" {
		if err := pkg.EnsureDir(filepath.Dir(cfg.LogsPath)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToConsole:     cfg.LogToConsole,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: "weekly-report",
	})
	log.Debugf("running in [%s] environment, config: %s", cfg.Environment, *configPath)

	names := []string(users)
	if len(names) == 0 {
		names = cfg.Reports
	}

	run(context.Background(), os.Stdout, cfg, names)
}

// run registers the configured users and writes a report for every name to out.
// Invalid users are reported as errors and skipped.
func run(ctx context.Context, out io.Writer, cfg *config.Config, names []string) {
	reg := prometheus.NewRegistry()
	metricsManager := metrics.NewManager("weeklyfit", "tracker", reg)

	registryParams := tracker.NewRegistryParams{
		Metrics: metricsManager,
	}
	if cfg.ReportCacheMB > 0 {
		registryParams.Cache = tracker.NewReportCache(cfg.ReportCacheMB)
	}
	registry := tracker.NewRegistry(registryParams)

	if err := tracker.LoadRoster(ctx, registry, cfg.Users); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(out, "Error: %s\n", e)
		}
	}

	for _, name := range names {
		fmt.Fprintln(out)
		fmt.Fprint(out, registry.GenerateUserReport(ctx, name))
	}

	if cfg.MetricsTextfile != "" {
		if err := metricsManager.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Errorf("metrics textfile: %s", err)
		} else {
			log.Debugf("metrics written to %s", cfg.MetricsTextfile)
		}
	}
}
