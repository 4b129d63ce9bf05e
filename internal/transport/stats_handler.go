package transport

import (
	"net/http"

	"glamify/internal/middleware"
	"glamify/internal/service"

	"github.com/go-chi/chi/v5"
)

// StatsHandler serves the admin dashboard counters
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// RegisterRoutes registers the stats route
func (h *StatsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/api/admin/stats", h.GetStats)
}

// GetStats always answers 200; failures are reported as zero counts
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.statsService.Get(r.Context()))
}
