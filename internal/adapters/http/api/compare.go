// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/pitwall/pitwall/internal/domain/types"
)

// CompareDependencies defines the interface for comparison operations.
type CompareDependencies interface {
	Comparison(ctx context.Context, raceID int) (*types.ComparisonView, error)
}

// CompareHandler handles prediction-versus-result requests.
type CompareHandler struct {
	deps CompareDependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// HandleGetComparison handles GET /api/compare/{race_id} requests. Races
// without published results return HasActuals=false and an empty table
// rather than an error.
func (h *CompareHandler) HandleGetComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/compare/")
	raceID, err := strconv.Atoi(path)
	if err != nil || raceID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidID)
		return
	}
	view, err := h.deps.Comparison(r.Context(), raceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
