package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aitools-engine/internal/categorize"
	"aitools-engine/internal/config"
	"aitools-engine/internal/events"
	"aitools-engine/internal/httpapi"
	"aitools-engine/internal/metrics"
	"aitools-engine/internal/scheduler"
	"aitools-engine/internal/search"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	host := "127.0.0.1"
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts, host)
		},
	}
	cmd.Flags().StringVar(&host, "host", host, "interface to listen on")
	return cmd
}

func serve(parent context.Context, opts *cliOptions, host string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log := opts.logger

	db, err := opts.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cfgVal := &atomic.Value{}
	cfgVal.Store(opts.cfg)
	current := func() config.Config { return cfgVal.Load().(config.Config) }

	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	hub := events.NewHub()

	engine := search.NewEngine(db.Pool, func() config.Search { return current().Search }, log.Named("search"), m)

	runCategorize := func(ctx context.Context) (categorize.Stats, error) {
		unlock, err := categorize.Lock(ctx, opts.dataDir)
		if err != nil {
			return categorize.Stats{}, err
		}
		defer unlock()

		cfg := current().Categorize
		mapper, err := opts.mapper(cfg)
		if err != nil {
			return categorize.Stats{}, err
		}
		return categorize.Runner{
			DB:      db.Pool,
			Mapper:  mapper,
			Cfg:     cfg,
			Log:     log.Named("categorize"),
			Metrics: m,
			Hub:     hub,
		}.Run(ctx)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Store:       db,
		Search:      engine,
		Hub:         hub,
		CfgVal:      cfgVal,
		UserCfgPath: opts.cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(opts.cfgPath) },
		Categorize:  runCategorize,
		Tracker:     &categorize.Tracker{},
		JobCtx:      ctx,
		Log:         log.Named("http"),
		Metrics:     m,
		Gatherer:    reg,
	})

	addr := net.JoinHostPort(host, strconv.Itoa(opts.cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("engine listening", zap.String("addr", "http://"+addr), zap.String("db", opts.dbPath()), zap.String("config", opts.cfgPath))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		every := time.Duration(opts.cfg.Categorize.ReconcileEveryMinutes) * time.Minute
		scheduler.Every(gctx, every, "reconcile", log.Named("scheduler"), func(ctx context.Context) error {
			_, err := categorize.Reconcile(ctx, db.Pool, log.Named("scheduler"), m, hub)
			return err
		})
		return nil
	})
	return g.Wait()
}
