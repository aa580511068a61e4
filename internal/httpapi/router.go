package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. Read routes are rate limited per client;
// admin and config routes only answer loopback callers.
func NewRouter(d Deps) http.Handler {
	cfg := d.cfg().HTTP

	r := chi.NewRouter()
	r.Use(RequestID(d.Log))
	r.Use(AccessLog(d.Metrics))
	r.Use(Recover)
	r.Use(middleware.CleanPath)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	timeout := time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	limiter := NewClientLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst)

	th := ToolsHandler{D: d}
	sh := SearchHandler{D: d}
	ch := CategoriesHandler{D: d}

	r.Group(func(r chi.Router) {
		if timeout > 0 {
			r.Use(middleware.Timeout(timeout))
		}

		r.Get("/health", HealthHandler{DB: d.Store}.Health)

		r.Route("/api", func(r chi.Router) {
			r.Use(limiter.Middleware)

			r.Get("/search", sh.Search)
			r.Route("/tools", func(r chi.Router) {
				r.Get("/", th.List)
				r.Get("/{slug}", th.Get)
				r.Get("/{slug}/similar", th.Similar)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", ch.List)
				r.Get("/{slug}", ch.Get)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(LocalOnly)
			ah := AdminHandler{D: d}
			r.Post("/categorize", ah.Categorize)
			r.Get("/categorize/status", ah.CategorizeStatus)
			r.Post("/reconcile", ah.Reconcile)
		})

		r.Route("/config", func(r chi.Router) {
			r.Use(LocalOnly)
			cfh := ConfigHandler{
				CfgVal:      d.CfgVal,
				UserCfgPath: d.UserCfgPath,
				LoadCfg:     d.LoadCfg,
				Hub:         d.Hub,
			}
			r.Get("/", cfh.Get)
			r.Put("/", cfh.Put)
			r.Get("/path", cfh.Path)
			r.Get("/validate", cfh.Validate)
		})
	})

	// long-lived, no request timeout
	r.Get("/events", EventsHandler{Hub: d.Hub}.ServeSSE)

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}
