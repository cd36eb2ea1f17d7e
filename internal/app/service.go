// Package service provides the core business service that implements the
// dependencies required by the HTTP API: it fetches raw data from the
// prediction service and turns it into render-ready view models.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pitwall/pitwall/internal/adapters/upstream"
	"github.com/pitwall/pitwall/internal/domain/assets"
	"github.com/pitwall/pitwall/internal/domain/comparison"
	"github.com/pitwall/pitwall/internal/domain/geo"
	"github.com/pitwall/pitwall/internal/domain/model"
	"github.com/pitwall/pitwall/internal/domain/standings"
	"github.com/pitwall/pitwall/internal/domain/types"
	"github.com/pitwall/pitwall/pkg/logger"
	"github.com/pitwall/pitwall/pkg/metrics"
)

const (
	defaultYear          = 2025
	defaultTimeout       = 10 * time.Second
	defaultMaxCustomGrid = 20
	maxGridPosition      = 20
)

// Predictor is the slice of the upstream client the service depends on.
// Tests substitute a stub.
type Predictor interface {
	Races(ctx context.Context, year int) ([]model.RaceInfo, error)
	Drivers(ctx context.Context) ([]model.DriverSummary, error)
	DriverProfile(ctx context.Context, driverRef string) (*model.DriverProfile, error)
	Predict(ctx context.Context, raceID int) (*model.PredictionResult, error)
	PredictCustom(ctx context.Context, req model.CustomScenarioRequest) (*model.PredictionResult, error)
	Compare(ctx context.Context, raceID int) (*model.Comparison, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
	Standings(ctx context.Context, year int) (*model.SeasonStandings, error)
	Health(ctx context.Context) error
}

// Service implements the API dependencies for the prediction dashboard.
type Service struct {
	mu sync.RWMutex

	client      Predictor
	upstreamURL string
	timeout     time.Duration
	year        int
	maxDrivers  int

	started         bool
	upstreamHealthy bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithUpstreamURL sets the prediction service base URL.
func WithUpstreamURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.upstreamURL = u
		}
	}
}

// WithUpstreamTimeout bounds each prediction service request.
func WithUpstreamTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDefaultYear sets the season used when a request names none.
func WithDefaultYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.year = year
		}
	}
}

// WithMaxCustomDrivers caps the grid size of a custom scenario.
func WithMaxCustomDrivers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDrivers = n
		}
	}
}

// WithClient injects a Predictor directly, bypassing URL-based construction.
func WithClient(c Predictor) Option {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		upstreamURL: "http://localhost:8000",
		timeout:     defaultTimeout,
		year:        defaultYear,
		maxDrivers:  defaultMaxCustomGrid,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the upstream client and probes its health. A failed
// probe is logged, not fatal: the dashboard still serves and shows the
// retryable error banner per view.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.client == nil {
		s.client = upstream.New(s.upstreamURL, upstream.WithTimeout(s.timeout))
	}

	s.started = true
	s.logger.Info(ctx, "pitwall service started",
		logger.String("upstream", s.upstreamURL),
		logger.Int("defaultYear", s.year),
	)

	if err := s.client.Health(ctx); err != nil {
		s.upstreamHealthy = false
		s.logger.Warn(ctx, "prediction service not reachable at startup", logger.Error(err))
	} else {
		s.upstreamHealthy = true
	}
	metrics.UpdateUpstreamUp(s.upstreamHealthy)
	return nil
}

// Stop shuts the service down. There is nothing to drain: the service keeps
// no state beyond the in-flight request.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "pitwall service stopped")
}

// DefaultYear returns the season shown when a request names none.
func (s *Service) DefaultYear() int {
	return s.year
}

// Races lists a season's races with map coordinates resolved and labels
// filled in when the upstream service omitted them.
func (s *Service) Races(ctx context.Context, year int) ([]types.RaceView, error) {
	if year == 0 {
		year = s.year
	}
	races, err := s.client.Races(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}

	views := make([]types.RaceView, len(races))
	for i, r := range races {
		if r.Label == "" {
			r.Label = raceLabel(r)
		}
		coord := geo.Locate(r)
		if coord == geo.DefaultCoordinate {
			metrics.RecordResolverMiss("geo")
		}
		views[i] = types.RaceView{RaceInfo: r, Coordinate: coord}
	}
	return views, nil
}

// Prediction fetches the pre-computed prediction for a race and resolves
// display assets for every driver row.
func (s *Service) Prediction(ctx context.Context, raceID int) (*types.PredictionView, error) {
	pred, err := s.client.Predict(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("predict race %d: %w", raceID, err)
	}
	return s.predictionView(pred), nil
}

// CustomPrediction validates a what-if grid locally, then asks the
// prediction service to score it.
func (s *Service) CustomPrediction(ctx context.Context, req model.CustomScenarioRequest) (*types.PredictionView, error) {
	if err := s.validateScenario(req); err != nil {
		return nil, err
	}
	pred, err := s.client.PredictCustom(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("predict custom scenario: %w", err)
	}
	return s.predictionView(pred), nil
}

// Comparison fetches predictions and actuals for a race and builds the
// comparison records and accuracy summary locally. Races that have not run
// yield a predictions-only view, which is not an error.
func (s *Service) Comparison(ctx context.Context, raceID int) (*types.ComparisonView, error) {
	cmp, err := s.client.Compare(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("compare race %d: %w", raceID, err)
	}

	records, summary := comparison.Build(cmp.Predictions, cmp.ActualResults)
	metrics.RecordComparisonBuilt()

	return &types.ComparisonView{
		RaceID:      cmp.RaceID,
		RaceName:    cmp.RaceName,
		Predictions: s.driverViews(cmp.Predictions),
		Records:     records,
		Accuracy:    summary,
		HasActuals:  cmp.ActualResults != nil,
	}, nil
}

// Standings serves the championship tables for a year. When the upstream
// service has no standings it falls back to tabulating them locally from
// per-race predictions.
func (s *Service) Standings(ctx context.Context, year int) (*types.StandingsView, error) {
	if year == 0 {
		year = s.year
	}

	st, err := s.client.Standings(ctx, year)
	switch {
	case err == nil && len(st.DriverStandings) > 0:
		return &types.StandingsView{SeasonStandings: *st, Source: types.StandingsSourceUpstream}, nil
	case err != nil && !upstream.IsNotFound(err):
		return nil, fmt.Errorf("standings for %d: %w", year, err)
	}

	computed, err := s.tabulateStandings(ctx, year)
	if err != nil {
		return nil, err
	}
	return computed, nil
}

// tabulateStandings rebuilds standings from per-race predictions. Races whose
// prediction is unavailable are skipped rather than failing the whole table.
func (s *Service) tabulateStandings(ctx context.Context, year int) (*types.StandingsView, error) {
	races, err := s.client.Races(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("standings fallback for %d: %w", year, err)
	}

	perRace := make([][]model.DriverPrediction, 0, len(races))
	for _, r := range races {
		pred, err := s.client.Predict(ctx, r.RaceID)
		if err != nil {
			s.logger.Debug(ctx, "skipping race in standings fallback",
				logger.Int("raceID", r.RaceID), logger.Error(err))
			continue
		}
		perRace = append(perRace, pred.FullPredictions)
	}

	metrics.RecordStandingsTabulated()
	st := standings.Tabulate(year, perRace)
	return &types.StandingsView{SeasonStandings: st, Source: types.StandingsSourceComputed}, nil
}

// Statistics serves the season-wide statistics view with assets resolved for
// the top-N tables.
func (s *Service) Statistics(ctx context.Context) (*types.StatisticsView, error) {
	stats, err := s.client.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	view := &types.StatisticsView{
		TotalRaces:        stats.TotalRaces,
		TotalPredictions:  stats.TotalPredictions,
		AverageConfidence: stats.AverageConfidence,
		TopDrivers:        make([]types.TopDriverView, len(stats.TopDrivers)),
		TopTeams:          make([]types.TopTeamView, len(stats.TopTeams)),
	}
	for i, d := range stats.TopDrivers {
		view.TopDrivers[i] = types.TopDriverView{
			DriverWinCount: d,
			DisplayName:    assets.DisplayName(d.Driver),
			Portrait:       s.portrait(d.Driver),
		}
	}
	for i, t := range stats.TopTeams {
		view.TopTeams[i] = types.TopTeamView{
			TeamWinCount: t,
			TeamLogo:     s.teamLogo(t.Team),
		}
	}
	return view, nil
}

// Drivers lists the roster with display assets resolved.
func (s *Service) Drivers(ctx context.Context) ([]types.DriverRosterView, error) {
	drivers, err := s.client.Drivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	views := make([]types.DriverRosterView, len(drivers))
	for i, d := range drivers {
		name := d.DriverName
		if name == "" {
			name = assets.DisplayName(d.DriverRef)
		}
		views[i] = types.DriverRosterView{
			DriverSummary: d,
			DisplayName:   name,
			Portrait:      s.portrait(d.DriverRef),
			TeamLogo:      s.teamLogo(d.CurrentTeam),
		}
	}
	return views, nil
}

// DriverProfile fetches one driver's profile with assets resolved.
func (s *Service) DriverProfile(ctx context.Context, driverRef string) (*types.DriverProfileView, error) {
	profile, err := s.client.DriverProfile(ctx, driverRef)
	if err != nil {
		return nil, fmt.Errorf("driver profile %q: %w", driverRef, err)
	}

	name := profile.DriverName
	if name == "" {
		name = assets.DisplayName(profile.DriverRef)
	}
	return &types.DriverProfileView{
		DriverProfile: *profile,
		DisplayName:   name,
		Portrait:      s.portrait(profile.DriverRef),
		TeamLogo:      s.teamLogo(profile.CurrentTeam),
	}, nil
}

// ProbeHealth checks the prediction service and records the result. Called
// periodically by the metrics updater in cmd.
func (s *Service) ProbeHealth(ctx context.Context) bool {
	err := s.client.Health(ctx)

	s.mu.Lock()
	s.upstreamHealthy = err == nil
	s.mu.Unlock()

	metrics.UpdateUpstreamUp(err == nil)
	return err == nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":         s.started,
		"upstreamURL":     s.upstreamURL,
		"upstreamHealthy": s.upstreamHealthy,
		"defaultYear":     s.year,
	}
}

// validateScenario applies the custom-scenario rules before anything goes
/// upstream: a non-empty grid, refs and teams present, positions in range and
// unique.
func (s *Service) validateScenario(req model.CustomScenarioRequest) error {
	if len(req.Drivers) == 0 {
		return ErrNoDrivers
	}
	if len(req.Drivers) > s.maxDrivers {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyDrivers, len(req.Drivers), s.maxDrivers)
	}

	seen := make(map[int]bool, len(req.Drivers))
	for _, d := range req.Drivers {
		if d.DriverRef == "" || d.Team == "" {
			return ErrMissingDriver
		}
		if d.GridPosition < 1 || d.GridPosition > maxGridPosition {
			return fmt.Errorf("%w: got %d", ErrGridRange, d.GridPosition)
		}
		if seen[d.GridPosition] {
			return fmt.Errorf("%w: position %d appears twice", ErrDuplicateGrid, d.GridPosition)
		}
		seen[d.GridPosition] = true
	}
	return nil
}

// IsValidationError reports whether err came from scenario validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoDrivers) ||
		errors.Is(err, ErrTooManyDrivers) ||
		errors.Is(err, ErrGridRange) ||
		errors.Is(err, ErrDuplicateGrid) ||
		errors.Is(err, ErrMissingDriver)
}

func (s *Service) predictionView(pred *model.PredictionResult) *types.PredictionView {
	race := model.RaceInfo{
		Circuit:  pred.CircuitName,
		Location: pred.Location,
		Country:  pred.Country,
	}
	return &types.PredictionView{
		PredictionResult: *pred,
		FullPredictions:  s.driverViews(pred.FullPredictions),
		Coordinate:       geo.Locate(race),
	}
}

func (s *Service) driverViews(preds []model.DriverPrediction) []types.PredictedDriverView {
	views := make([]types.PredictedDriverView, len(preds))
	for i, p := range preds {
		name := p.DriverName
		if name == "" {
			name = assets.DisplayName(p.DriverRef)
		}
		views[i] = types.PredictedDriverView{
			DriverPrediction: p,
			DisplayName:      name,
			Portrait:         s.portrait(p.DriverRef),
			TeamLogo:         s.teamLogo(p.Team),
		}
	}
	return views
}

func (s *Service) portrait(driverRef string) string {
	ref, ok := assets.DriverPortrait(driverRef)
	if !ok {
		metrics.RecordResolverMiss("portrait")
		return ""
	}
	return string(ref)
}

func (s *Service) teamLogo(team string) string {
	if team == "" {
		return ""
	}
	ref, ok := assets.TeamLogo(team)
	if !ok {
		metrics.RecordResolverMiss("logo")
		return ""
	}
	return string(ref)
}

// raceLabel rebuilds the dropdown label the upstream service usually
// provides: "01 | Bahrain Grand Prix — Sakhir (Sakhir, Bahrain)".
func raceLabel(r model.RaceInfo) string {
	return fmt.Sprintf("%02d | %s — %s (%s, %s)", r.Round, r.Name, r.Circuit, r.Location, r.Country)
}
