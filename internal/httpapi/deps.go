package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"aitools-engine/internal/categorize"
	"aitools-engine/internal/config"
	"aitools-engine/internal/events"
	"aitools-engine/internal/metrics"
	"aitools-engine/internal/search"
	"aitools-engine/internal/store"
)

type Deps struct {
	Store  *store.DB
	Search *search.Engine
	Hub    *events.Hub

	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Background categorization. JobCtx bounds runs started over HTTP.
	Categorize func(ctx context.Context) (categorize.Stats, error)
	Tracker    *categorize.Tracker
	JobCtx     context.Context

	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func (d Deps) cfg() config.Config {
	if d.CfgVal == nil {
		return config.Default()
	}
	if c, ok := d.CfgVal.Load().(config.Config); ok {
		return c
	}
	return config.Default()
}

func (d Deps) db() *sql.DB { return d.Store.Pool }
