// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/pitwall/pitwall/internal/domain/types"
)

// DriversDependencies defines the interface for driver roster operations.
type DriversDependencies interface {
	Drivers(ctx context.Context) ([]types.DriverRosterView, error)
	DriverProfile(ctx context.Context, driverRef string) (*types.DriverProfileView, error)
}

// DriversHandler handles driver roster and profile requests.
type DriversHandler struct {
	deps DriversDependencies
}

// NewDriversHandler creates a new drivers handler.
func NewDriversHandler(deps DriversDependencies) *DriversHandler {
	return &DriversHandler{deps: deps}
}

// HandleListDrivers handles GET /api/drivers requests.
func (h *DriversHandler) HandleListDrivers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	drivers, err := h.deps.Drivers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if drivers == nil {
		drivers = []types.DriverRosterView{}
	}
	writeJSON(w, http.StatusOK, drivers)
}

// HandleGetDriver handles GET /api/drivers/{driver_ref} requests.
func (h *DriversHandler) HandleGetDriver(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ref := strings.TrimPrefix(r.URL.Path, "/api/drivers/")
	if ref == "" || strings.Contains(ref, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidID)
		return
	}
	profile, err := h.deps.DriverProfile(r.Context(), ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
