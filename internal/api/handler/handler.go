// Package handler provides HTTP handlers for all API endpoints.
// Handlers read path parameters, run one aggregator operation and write the
// resulting envelope; the envelope decides the status code.
package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/aggregate"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/api/respond"
)

// HealthMessage is the fixed liveness message served by /api/health.
const HealthMessage = "Painel de Monitoramento de Tênis está online"

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	agg *aggregate.Aggregator
}

// New creates a Handler backed by agg.
func New(agg *aggregate.Aggregator) *Handler {
	return &Handler{agg: agg}
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Liveness probe. Does not contact the upstream provider.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"message":  HealthMessage,
		"provider": h.agg.Provider(),
	})
}

func writeEnvelope(w http.ResponseWriter, env aggregate.Envelope) {
	respond.WriteJSONObject(w, env.Status(), env)
}

// pathParam returns the decoded value of a route parameter. chi matches on
// RawPath when the request carries one, leaving its params escaped; otherwise
// they are already decoded.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
