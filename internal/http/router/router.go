package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-partner/internal/http/handlers"
	mw "service-partner/internal/http/middleware"
	"service-partner/internal/http/middleware/ratelimit"
	"service-partner/internal/logx"
)

// Deps groups everything the router mounts.
type Deps struct {
	Base        *handlers.Handlers
	Partners    *handlers.PartnerHandler
	Logger      logx.Logger
	HTTPMetrics *mw.HTTPMetrics
	RateLimit   *ratelimit.Middleware
	Gatherer    prometheus.Gatherer
	Timeout     time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(d.Logger, d.HTTPMetrics))
	r.Use(middleware.Recoverer)

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1/partners", func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Handler())
		}
		r.Use(middleware.Timeout(d.Timeout))

		r.Post("/", d.Partners.Create)
		r.Get("/", d.Partners.Search)
		r.Get("/{id}", d.Partners.GetByID)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
