// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pitwall/pitwall/internal/adapters/upstream"
	service "github.com/pitwall/pitwall/internal/app"
	"github.com/pitwall/pitwall/internal/domain/model"
	"github.com/pitwall/pitwall/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Races(ctx context.Context, year int) ([]types.RaceView, error)
	Prediction(ctx context.Context, raceID int) (*types.PredictionView, error)
	CustomPrediction(ctx context.Context, req model.CustomScenarioRequest) (*types.PredictionView, error)
	Comparison(ctx context.Context, raceID int) (*types.ComparisonView, error)
	Standings(ctx context.Context, year int) (*types.StandingsView, error)
	Statistics(ctx context.Context) (*types.StatisticsView, error)
	Drivers(ctx context.Context) ([]types.DriverRosterView, error)
	DriverProfile(ctx context.Context, driverRef string) (*types.DriverProfileView, error)
	DefaultYear() int
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	racesHandler      *RacesHandler
	predictHandler    *PredictHandler
	compareHandler    *CompareHandler
	standingsHandler  *StandingsHandler
	statisticsHandler *StatisticsHandler
	driversHandler    *DriversHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		racesHandler:      NewRacesHandler(deps),
		predictHandler:    NewPredictHandler(deps),
		compareHandler:    NewCompareHandler(deps),
		standingsHandler:  NewStandingsHandler(deps),
		statisticsHandler: NewStatisticsHandler(deps),
		driversHandler:    NewDriversHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/races", MetricsMiddleware(s.racesHandler.HandleListRaces, "races"))
	mux.HandleFunc("/api/predict/custom", MetricsMiddleware(s.predictHandler.HandleCustomPredict, "predict_custom"))
	mux.HandleFunc("/api/predict/", MetricsMiddleware(s.predictHandler.HandleGetPrediction, "predict"))
	mux.HandleFunc("/api/compare/", MetricsMiddleware(s.compareHandler.HandleGetComparison, "compare"))
	mux.HandleFunc("/api/standings/", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/api/statistics", MetricsMiddleware(s.statisticsHandler.HandleGetStatistics, "statistics"))
	mux.HandleFunc("/api/drivers", MetricsMiddleware(s.driversHandler.HandleListDrivers, "drivers"))
	mux.HandleFunc("/api/drivers/", MetricsMiddleware(s.driversHandler.HandleGetDriver, "driver_profile"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer failures onto the wire: local
// validation and upstream 400s become 400, upstream 404s become 404,
// transport and payload problems become 502, anything else 500. Failures
// never escape as panics; every view gets a JSON error it can render inline.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidationError(err) || upstream.IsBadRequest(err):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case upstream.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, upstream.ErrUnreachable):
		writeError(w, http.StatusBadGateway, "upstream_unreachable", err)
	case errors.Is(err, upstream.ErrDecode), errors.Is(err, upstream.ErrStatus):
		writeError(w, http.StatusBadGateway, "upstream_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
