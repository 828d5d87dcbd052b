// Package app wires configuration, telemetry, upstream clients and the job
// catalog into a runnable collector.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"footstats-collector/internal/collector"
	"footstats-collector/internal/config"
	"footstats-collector/internal/fetch"
	"footstats-collector/internal/jobs"
	"footstats-collector/internal/logging"
	"footstats-collector/internal/metrics"
	"footstats-collector/internal/output"
	"footstats-collector/internal/providers/fbref"
	"footstats-collector/internal/providers/footballdata"
	"footstats-collector/internal/providers/sofifa"
)

var metricsSetup = metrics.Setup

// App runs catalog jobs against the configured upstreams.
type App struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	metricsServer httpServer
	metricsStop   func(context.Context) error
	runner        *collector.Runner
	jobs          []collector.Job
	newRunID      func() string
}

// New builds the collector. Only an invalid jobs file fails construction.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	recorder, metricsSrv, metricsStop := buildMetrics(cfg, logger)

	catalog := jobs.Catalog(cfg, buildClients(cfg, logger, recorder))
	overrides, err := config.LoadJobOverrides(cfg.JobsFile)
	if err != nil {
		return nil, err
	}
	catalog, err = jobs.ApplyOverrides(catalog, overrides)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
		runner:        collector.NewRunner(output.NewWriter(cfg.Output.Root, logger), logger, recorder),
		jobs:          catalog,
		newRunID:      uuid.NewString,
	}, nil
}

// Jobs lists the configured jobs in run order.
func (a *App) Jobs() []collector.Job {
	return a.jobs
}

// Run executes the named jobs (all when names is empty), optionally limited
// to one upstream. Per-target failures never fail the run; a missing
// football-data.org token does, before any request is made.
func (a *App) Run(ctx context.Context, names []string, upstream string) error {
	selected, err := jobs.Select(a.jobs, names, upstream)
	if err != nil {
		return err
	}
	if jobs.NeedsToken(selected) {
		if err := a.cfg.RequireToken(); err != nil {
			return err
		}
	}

	logger := a.logger
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldRunID, a.newRunID()))
	}
	ctx = logging.WithContext(ctx, logger)

	a.startMetrics()
	defer a.shutdown(logger)

	var total collector.Stats
	for _, job := range selected {
		stats, err := a.runner.Run(ctx, job)
		total.Targets += stats.Targets
		total.Written += stats.Written
		total.Empty += stats.Empty
		total.Failed += stats.Failed
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logging.Warn(logger, "run interrupted", slog.String(logging.FieldJob, job.Name))
				break
			}
			logging.Error(logger, "job failed", err, slog.String(logging.FieldJob, job.Name))
		}
	}

	logging.Info(logger, "run finished",
		slog.Int("jobs", len(selected)),
		slog.Int("targets", total.Targets),
		slog.Int("files_written", total.Written),
		slog.Int("empty", total.Empty),
		slog.Int("failed", total.Failed),
	)
	return nil
}

func buildClients(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) jobs.Clients {
	return jobs.Clients{
		FootballData: footballdata.NewClient(footballdata.Config{
			BaseURL: cfg.FootballData.BaseURL,
			Token:   cfg.FootballData.Token,
			Timeout: cfg.FootballData.Timeout,
			Policy: fetch.Policy{
				MaxAttempts: cfg.FootballData.MaxAttempts,
				BaseDelay:   cfg.FootballData.BaseDelay,
			},
			Logger:  logger,
			Metrics: recorder,
		}),
		FBref: fbref.NewClient(fbref.Config{
			BaseURL:   cfg.FBref.BaseURL,
			Timeout:   cfg.FBref.Timeout,
			UserAgent: cfg.FBref.UserAgent,
			Bypass:    cfg.FBref.Bypass,
			PageDelay: cfg.FBref.PageDelay,
			Logger:    logger,
			Metrics:   recorder,
		}),
		SoFIFA: sofifa.NewClient(sofifa.Config{
			BaseURL:      cfg.SoFIFA.BaseURL,
			Timeout:      cfg.SoFIFA.Timeout,
			UserAgent:    cfg.SoFIFA.UserAgent,
			Bypass:       cfg.SoFIFA.Bypass,
			PageDelay:    cfg.SoFIFA.PageDelay,
			VersionLimit: cfg.SoFIFA.VersionLimit,
			Logger:       logger,
			Metrics:      recorder,
		}),
	}
}

func (a *App) startMetrics() {
	if a.metricsServer == nil {
		return
	}
	logging.Info(a.logger, "metrics server starting", slog.String("addr", a.metricsServer.Addr()))
	launchServer("metrics", a.metricsServer, a.logger)
}

func (a *App) shutdown(logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.metricsStop != nil {
		if err := a.metricsStop(shutdownCtx); err != nil {
			logging.Warn(logger, "metrics shutdown failed", "error", err)
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(logger, "metrics server shutdown failed", "error", err)
		}
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
		Textfile:     cfg.Metrics.Textfile,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled && cfg.Metrics.Port != "" {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + cfg.Metrics.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}
	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
		}
	}()
}
