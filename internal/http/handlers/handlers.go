package handlers

import (
	"context"
	"net/http"
	"time"

	"service-partner/internal/logx"
)

// ReadinessCheck reports whether the partner store can serve requests.
type ReadinessCheck func(ctx context.Context) error

const readinessTimeout = 2 * time.Second

// Handlers serves the service-level endpoints that sit outside /api/v1.
type Handlers struct {
	Logger logx.Logger
	ready  ReadinessCheck
}

// New creates Handlers. A nil check reports the service as always ready.
func New(logger logx.Logger, ready ReadinessCheck) *Handlers {
	return &Handlers{Logger: logger, ready: ready}
}

// Ping handles GET /ping.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead answers 204 while the store responds and 503 otherwise.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			logx.OrNop(h.Logger).Warn("store not ready", logx.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// NotFound writes a JSON 404 for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
}
