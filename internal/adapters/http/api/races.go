// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pitwall/pitwall/internal/domain/types"
)

// RacesDependencies defines the interface for race calendar operations.
type RacesDependencies interface {
	Races(ctx context.Context, year int) ([]types.RaceView, error)
	DefaultYear() int
}

// RacesHandler handles race calendar requests.
type RacesHandler struct {
	deps RacesDependencies
}

// NewRacesHandler creates a new races handler.
func NewRacesHandler(deps RacesDependencies) *RacesHandler {
	return &RacesHandler{deps: deps}
}

// HandleListRaces handles GET /api/races requests. An optional "year"
// query parameter selects the season; it defaults to the configured one.
func (h *RacesHandler) HandleListRaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	year := h.deps.DefaultYear()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidYear)
			return
		}
		year = parsed
	}
	races, err := h.deps.Races(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if races == nil {
		races = []types.RaceView{}
	}
	writeJSON(w, http.StatusOK, races)
}
