// Package httpapi exposes the lease schedule calculator over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/noel97chan-creator/IFRS16calculator/internal/gate"
	"github.com/noel97chan-creator/IFRS16calculator/internal/logging"
	"github.com/noel97chan-creator/IFRS16calculator/internal/tools"
)

// LeadCapturer registers an email and unlocks exports for it.
type LeadCapturer interface {
	Capture(ctx context.Context, email string) (gate.Token, error)
}

// TokenVerifier checks a download token and returns the email it was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Deps groups everything the router needs.
type Deps struct {
	Tools       map[string]tools.ToolHandler
	Leads       LeadCapturer
	Tokens      TokenVerifier
	LeadLimiter *RateLimiter
	Logger      *zap.Logger
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.AccessLog(d.Logger))
	r.Use(logging.TraceContext)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/healthz", healthzHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/schedule", toolHandler(d.Tools[tools.LeaseScheduleTool], d.Logger))
		r.Post("/schedule/compare", toolHandler(d.Tools[tools.CompareLeaseTimingsTool], d.Logger))
		r.Post("/schedule/export", exportHandler(d.Tools[tools.LeaseScheduleTool], d.Tokens, d.Logger))
		r.Post("/tools/{name}", namedToolHandler(d.Tools, d.Logger))

		r.With(RateLimit(d.LeadLimiter)).Post("/leads", leadHandler(d.Leads, d.Logger))
	})

	return r
}
