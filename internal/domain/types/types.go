// Package types contains the view models served to the browser. Each type is
// an upstream payload enriched with resolved assets, display names, and map
// coordinates so pages can render without further lookups.
package types

import (
	"github.com/pitwall/pitwall/internal/domain/comparison"
	"github.com/pitwall/pitwall/internal/domain/geo"
	"github.com/pitwall/pitwall/internal/domain/model"
)

// RaceView is a race with its map coordinate resolved.
type RaceView struct {
	model.RaceInfo
	Coordinate geo.Coordinate `json:"coordinate"`
}

// PredictedDriverView is one predicted driver with display assets resolved.
// Portrait and TeamLogo are empty when the resolver missed; the page shows a
// placeholder then.
type PredictedDriverView struct {
	model.DriverPrediction
	DisplayName string `json:"display_name"`
	Portrait    string `json:"portrait,omitempty"`
	TeamLogo    string `json:"team_logo,omitempty"`
}

// PredictionView is a full race prediction ready to render. FullPredictions
// shadows the raw list with the asset-resolved rows.
type PredictionView struct {
	model.PredictionResult
	FullPredictions []PredictedDriverView `json:"full_predictions"`
	Coordinate      geo.Coordinate        `json:"coordinate"`
}

// ComparisonView pairs predictions with outcomes. Records and Accuracy are
// nil until the race has run; pages fall back to a predictions-only layout.
type ComparisonView struct {
	RaceID      int                   `json:"race_id"`
	RaceName    string                `json:"race_name"`
	Predictions []PredictedDriverView `json:"predictions"`
	Records     []comparison.Record   `json:"records,omitempty"`
	Accuracy    *comparison.Summary   `json:"accuracy,omitempty"`
	HasActuals  bool                  `json:"has_actuals"`
}

// DriverRosterView is one roster row with assets resolved.
type DriverRosterView struct {
	model.DriverSummary
	DisplayName string `json:"display_name"`
	Portrait    string `json:"portrait,omitempty"`
	TeamLogo    string `json:"team_logo,omitempty"`
}

// DriverProfileView is a driver profile with assets resolved.
type DriverProfileView struct {
	model.DriverProfile
	DisplayName string `json:"display_name"`
	Portrait    string `json:"portrait,omitempty"`
	TeamLogo    string `json:"team_logo,omitempty"`
}

// TopDriverView is a statistics leaderboard row for a driver.
type TopDriverView struct {
	model.DriverWinCount
	DisplayName string `json:"display_name"`
	Portrait    string `json:"portrait,omitempty"`
}

// TopTeamView is a statistics leaderboard row for a constructor.
type TopTeamView struct {
	model.TeamWinCount
	TeamLogo string `json:"team_logo,omitempty"`
}

// StatisticsView is the statistics page payload.
type StatisticsView struct {
	TotalRaces        int             `json:"total_races"`
	TotalPredictions  int             `json:"total_predictions"`
	AverageConfidence float64         `json:"average_confidence"`
	TopDrivers        []TopDriverView `json:"top_drivers"`
	TopTeams          []TopTeamView   `json:"top_teams"`
}

// StandingsView is the championship page payload. Source says whether the
// tables came from the upstream service or were tabulated locally from
// per-race predictions.
type StandingsView struct {
	model.SeasonStandings
	Source string `json:"source"`
}

// Standings sources.
const (
	StandingsSourceUpstream = "upstream"
	StandingsSourceComputed = "computed"
)
