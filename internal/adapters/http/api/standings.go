// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/pitwall/pitwall/internal/domain/types"
)

// StandingsDependencies defines the interface for standings operations.
type StandingsDependencies interface {
	Standings(ctx context.Context, year int) (*types.StandingsView, error)
}

// StandingsHandler handles championship standings requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleGetStandings handles GET /api/standings/{year} requests.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/standings/")
	year, err := strconv.Atoi(path)
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidID)
		return
	}
	view, err := h.deps.Standings(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
