// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/pitwall/pitwall/internal/domain/types"
)

// StatisticsDependencies defines the interface for model statistics operations.
type StatisticsDependencies interface {
	Statistics(ctx context.Context) (*types.StatisticsView, error)
}

// StatisticsHandler handles model statistics requests.
type StatisticsHandler struct {
	deps StatisticsDependencies
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(deps StatisticsDependencies) *StatisticsHandler {
	return &StatisticsHandler{deps: deps}
}

// HandleGetStatistics handles GET /api/statistics requests.
func (h *StatisticsHandler) HandleGetStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
