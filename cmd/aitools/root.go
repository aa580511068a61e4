package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aitools-engine/internal/catalog"
	"aitools-engine/internal/config"
	"aitools-engine/internal/logging"
	"aitools-engine/internal/rank"
	"aitools-engine/internal/store"
)

const defaultConfigPath = "config/config.yml"

type cliOptions struct {
	dataDir  string
	cfgPath  string
	logLevel string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "aitools",
		Short:         "AI tools directory engine: import, categorize and search tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default $"+config.EnvDataDir+" or ./data)")
	root.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "config file (default <data-dir>/config.yml, created on first run)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override: debug|info|warn|error")

	root.AddCommand(
		newServeCmd(&opts),
		newImportCmd(&opts),
		newSeedCategoriesCmd(&opts),
		newCategorizeCmd(&opts),
		newReconcileCmd(&opts),
		newFixImagesCmd(&opts),
		newCheckCategoriesCmd(&opts),
	)
	return root
}

func (o *cliOptions) setup() error {
	if o.dataDir == "" {
		o.dataDir = strings.TrimSpace(os.Getenv(config.EnvDataDir))
	}
	if o.dataDir == "" {
		o.dataDir = "data"
	}
	if err := os.MkdirAll(o.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	if o.cfgPath == "" {
		p, err := config.EnsureUserConfig(o.dataDir, defaultConfigPath)
		if err != nil {
			return fmt.Errorf("config bootstrap failed: %w", err)
		}
		o.cfgPath = p
	}
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", o.cfgPath, err)
	}
	if o.logLevel != "" {
		cfg.App.LogLevel = o.logLevel
	}
	cfg.App.DataDir = o.dataDir
	o.cfg = cfg

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

func (o *cliOptions) dbPath() string {
	p := o.cfg.Database.Path
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.dataDir, p)
}

func (o *cliOptions) openStore() (*store.DB, error) {
	db, err := store.Open(o.dbPath(), o.cfg.Database.BusyTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", o.dbPath(), err)
	}
	return db, nil
}

func (o *cliOptions) catalog() (catalog.Catalog, error) {
	c, err := catalog.LoadFile(o.cfg.Ingest.CategoriesFile)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load categories: %w", err)
	}
	return c, nil
}

func (o *cliOptions) mapper(cfg config.Categorize) (rank.Mapper, error) {
	c, err := o.catalog()
	if err != nil {
		return nil, err
	}
	return rank.NewCatalogMapper(cfg, c), nil
}
