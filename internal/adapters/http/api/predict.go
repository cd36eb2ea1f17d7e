// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pitwall/pitwall/internal/domain/model"
	"github.com/pitwall/pitwall/internal/domain/types"
)

// PredictDependencies defines the interface for prediction operations.
type PredictDependencies interface {
	Prediction(ctx context.Context, raceID int) (*types.PredictionView, error)
	CustomPrediction(ctx context.Context, req model.CustomScenarioRequest) (*types.PredictionView, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandleGetPrediction handles GET /api/predict/{race_id} requests.
func (h *PredictHandler) HandleGetPrediction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /api/predict/
	path := strings.TrimPrefix(r.URL.Path, "/api/predict/")
	raceID, err := strconv.Atoi(path)
	if err != nil || raceID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidID)
		return
	}
	view, err := h.deps.Prediction(r.Context(), raceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleCustomPredict handles POST /api/predict/custom requests. The body
// carries a hypothetical grid; validation failures come back as 400 with
// the offending rule in the message.
func (h *PredictHandler) HandleCustomPredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req model.CustomScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidBody)
		return
	}
	view, err := h.deps.CustomPrediction(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
