// Package model contains domain models passed between layers.
//
// Field names and JSON tags mirror the upstream prediction API. Everything
// beyond identifiers and positions is optional: the upstream service may omit
// or null any of it, so optional fields are pointers and consumers must
// tolerate zero values.
package model

// RaceInfo describes one race of a season as returned by GET /races.
type RaceInfo struct {
	RaceID   int    `json:"raceId"`
	Label    string `json:"label"`
	Name     string `json:"name"`
	Circuit  string `json:"circuit"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Round    int    `json:"round"`
	Date     string `json:"date"`
	Year     int    `json:"year"`
}

// DriverPrediction is one driver's predicted finishing position.
type DriverPrediction struct {
	DriverRef         string `json:"driverRef"`
	DriverName        string `json:"driver_name"`
	Team              string `json:"team"`
	PredictedPosition int    `json:"predicted_position"`
	GridPosition      *int   `json:"grid_position,omitempty"`
}

// ActualResult is one driver's actual finishing position once a race has run.
type ActualResult struct {
	DriverRef      string `json:"driverRef"`
	DriverName     string `json:"driver_name"`
	Team           string `json:"team"`
	FinishPosition int    `json:"finish_position"`
	GridPosition   *int   `json:"grid_position,omitempty"`
}

// TopThreeEntry is a podium slot inside a prediction result. The upstream API
// serializes the position as a string.
type TopThreeEntry struct {
	Driver   string `json:"driver"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

// PredictionResult is the full prediction for a race as returned by
// GET /predict/{raceID} and POST /predict/custom.
type PredictionResult struct {
	RaceName            string             `json:"race_name"`
	RaceID              int                `json:"race_id"`
	PredictedWinner     string             `json:"predicted_winner"`
	PredictedWinnerTeam string             `json:"predicted_winner_team"`
	TopThree            []TopThreeEntry    `json:"top_3"`
	FullPredictions     []DriverPrediction `json:"full_predictions"`
	Confidence          float64            `json:"confidence"`
	CircuitName         string             `json:"circuit_name,omitempty"`
	RaceDate            string             `json:"race_date,omitempty"`
	Round               *int               `json:"round,omitempty"`
	Location            string             `json:"location,omitempty"`
	Country             string             `json:"country,omitempty"`
}

// CustomDriverInput is one row of a custom-scenario request.
type CustomDriverInput struct {
	DriverRef    string   `json:"driverRef"`
	Team         string   `json:"team"`
	GridPosition int      `json:"grid_position"`
	RecentForm   *float64 `json:"recent_form,omitempty"`
}

// CustomScenarioRequest is the body of POST /predict/custom.
type CustomScenarioRequest struct {
	Drivers     []CustomDriverInput `json:"drivers"`
	RaceName    string              `json:"race_name,omitempty"`
	CircuitName string              `json:"circuit_name,omitempty"`
	RaceDate    string              `json:"race_date,omitempty"`
}

// DriverSummary is one roster row from GET /drivers.
type DriverSummary struct {
	DriverRef     string `json:"driverRef"`
	DriverName    string `json:"driver_name"`
	TotalRaces    int    `json:"total_races"`
	PredictedWins int    `json:"predicted_wins"`
	CurrentTeam   string `json:"current_team,omitempty"`
}

// CircuitPerformance aggregates a driver's predictions at one circuit.
type CircuitPerformance struct {
	Circuit      string  `json:"circuit"`
	AvgPosition  float64 `json:"avg_position"`
	BestPosition int     `json:"best_position"`
	Races        int     `json:"races"`
}

// FormEntry is one race of a driver's recent form.
type FormEntry struct {
	RaceID   int    `json:"race_id"`
	Position int    `json:"position"`
	Team     string `json:"team"`
}

// DriverProfile is the detailed view from GET /drivers/{ref}.
type DriverProfile struct {
	DriverRef                string               `json:"driverRef"`
	DriverName               string               `json:"driver_name"`
	TotalRaces               int                  `json:"total_races"`
	PredictedWins            int                  `json:"predicted_wins"`
	PredictedPodiums         int                  `json:"predicted_podiums"`
	PredictedTopFive         int                  `json:"predicted_top_5"`
	PredictedTopTen          int                  `json:"predicted_top_10"`
	AveragePredictedPosition float64              `json:"average_predicted_position"`
	BestPredictedPosition    int                  `json:"best_predicted_position"`
	WorstPredictedPosition   int                  `json:"worst_predicted_position"`
	CurrentTeam              string               `json:"current_team,omitempty"`
	RacesByTeam              map[string]int       `json:"races_by_team,omitempty"`
	PerformanceByCircuit     []CircuitPerformance `json:"performance_by_circuit,omitempty"`
	PositionDistribution     map[int]int          `json:"position_distribution,omitempty"`
	RecentForm               []FormEntry          `json:"recent_form,omitempty"`
}

// DriverWinCount and TeamWinCount are the top-N rows of GET /statistics.
type DriverWinCount struct {
	Driver        string `json:"driver"`
	PredictedWins int    `json:"predicted_wins"`
}

// TeamWinCount counts predicted wins per constructor.
type TeamWinCount struct {
	Team          string `json:"team"`
	PredictedWins int    `json:"predicted_wins"`
}

// Statistics aggregates prediction coverage across the season.
type Statistics struct {
	TotalRaces        int              `json:"total_races"`
	TotalPredictions  int              `json:"total_predictions"`
	AverageConfidence float64          `json:"average_confidence"`
	TopDrivers        []DriverWinCount `json:"top_drivers"`
	TopTeams          []TeamWinCount   `json:"top_teams"`
}

// DriverStanding is one row of the championship driver table.
type DriverStanding struct {
	Driver  string `json:"driver"`
	Points  int    `json:"points"`
	Wins    int    `json:"wins"`
	Podiums int    `json:"podiums"`
	Races   int    `json:"races"`
}

// TeamStanding is one row of the constructor table.
type TeamStanding struct {
	Team    string `json:"team"`
	Points  int    `json:"points"`
	Wins    int    `json:"wins"`
	Podiums int    `json:"podiums"`
}

// SeasonStandings is the shape of GET /standings/{year}.
type SeasonStandings struct {
	Year            int              `json:"year"`
	DriverStandings []DriverStanding `json:"driver_standings"`
	TeamStandings   []TeamStanding   `json:"team_standings"`
	TotalRaces      int              `json:"total_races"`
	CompletedRaces  int              `json:"completed_races"`
}

// AccuracySummary carries the upstream accuracy block of GET /compare/{id}.
// The locally computed equivalent lives in the comparison package; this type
// only mirrors the wire shape.
type AccuracySummary struct {
	MAE             float64 `json:"mae"`
	RMSE            float64 `json:"rmse"`
	ExactMatches    int     `json:"exact_matches"`
	ExactMatchRate  float64 `json:"exact_match_rate"`
	WithinOne       int     `json:"within_one"`
	WithinOneRate   float64 `json:"within_one_rate"`
	WithinThree     int     `json:"within_three"`
	WithinThreeRate float64 `json:"within_three_rate"`
	TotalDrivers    int     `json:"total_drivers"`
}

// Comparison is the shape of GET /compare/{raceID}. ActualResults and
// Accuracy are nil until the race has run.
type Comparison struct {
	RaceID        int                `json:"race_id"`
	RaceName      string             `json:"race_name"`
	Predictions   []DriverPrediction `json:"predictions"`
	ActualResults []ActualResult     `json:"actual_results,omitempty"`
	Accuracy      *AccuracySummary   `json:"accuracy,omitempty"`
}
