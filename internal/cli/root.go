// Package cli is the collector's command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"footstats-collector/internal/app"
	"footstats-collector/internal/config"
	"footstats-collector/internal/logging"
)

const serviceName = "footstats-collector"

// Options injects process-level dependencies into the command tree.
type Options struct {
	Version string
	// LoadConfig defaults to config.Load.
	LoadConfig func() config.Config
	// Logger replaces the configured logger when set.
	Logger *slog.Logger
}

type rootFlags struct {
	envFile  string
	jobsFile string
	output   string
	logLevel string
}

// NewRootCommand builds the "collector" command.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "collector",
		Short:         "Collects football statistics into CSV files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file to load instead of ./.env")
	root.PersistentFlags().StringVar(&flags.jobsFile, "jobs-file", "", "YAML file with per-job overrides")
	root.PersistentFlags().StringVar(&flags.output, "output", "", "output root directory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newRunCommand(opts, flags),
		newJobsCommand(opts, flags),
		newVersionCommand(opts),
	)
	return root
}

func (f *rootFlags) load(opts Options) (config.Config, error) {
	if f.envFile == "" {
		return opts.LoadConfig(), nil
	}
	cfg, err := config.LoadFile(f.envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load env file: %w", err)
	}
	return cfg, nil
}

func (f *rootFlags) apply(cfg config.Config) config.Config {
	if f.jobsFile != "" {
		cfg.JobsFile = f.jobsFile
	}
	if f.output != "" {
		cfg.Output.Root = f.output
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg
}

func buildApp(opts Options, flags *rootFlags, mutate func(*config.Config)) (*app.App, error) {
	cfg, err := flags.load(opts)
	if err != nil {
		return nil, err
	}
	cfg = flags.apply(cfg)
	if mutate != nil {
		mutate(&cfg)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
			File:    cfg.Log.File,
			Service: serviceName,
			Version: opts.Version,
		})
	}
	return app.New(cfg, logger)
}
