// Package comparison joins predicted finishing positions with actual race
// results and aggregates accuracy statistics over the matched set.
package comparison

import (
	"math"
	"sort"

	"github.com/pitwall/pitwall/internal/domain/model"
)

// Record is one driver's prediction set against the actual outcome. Error
// keeps its sign (predicted minus actual); AbsError is its magnitude.
type Record struct {
	DriverRef         string `json:"driverRef"`
	DriverName        string `json:"driver_name"`
	Team              string `json:"team"`
	PredictedPosition int    `json:"predicted_position"`
	ActualPosition    int    `json:"actual_position"`
	Error             int    `json:"error"`
	AbsError          int    `json:"abs_error"`
	GridPosition      *int   `json:"grid_position,omitempty"`
}

// Summary aggregates accuracy over the matched drivers. With zero matches all
// fields are zero; rates are never NaN.
type Summary struct {
	TotalDrivers    int     `json:"total_drivers"`
	MAE             float64 `json:"mae"`
	RMSE            float64 `json:"rmse"`
	ExactMatches    int     `json:"exact_matches"`
	ExactMatchRate  float64 `json:"exact_match_rate"`
	WithinOne       int     `json:"within_one"`
	WithinOneRate   float64 `json:"within_one_rate"`
	WithinThree     int     `json:"within_three"`
	WithinThreeRate float64 `json:"within_three_rate"`
}

// Build joins predictions with actual results by driver ref and computes the
// accuracy summary over the matched set.
//
// A nil actuals slice means the race has not run; the caller renders a
// predictions-only view, so Build returns (nil, nil) and that is not an
// error. Predictions with no matching actual result are dropped without
// comment: a driver who retired or was omitted from the results simply does
// not appear in the comparison. Driver refs are assumed unique within a race;
// the first matching actual wins.
func Build(preds []model.DriverPrediction, actuals []model.ActualResult) ([]Record, *Summary) {
	if actuals == nil {
		return nil, nil
	}

	byRef := make(map[string]model.ActualResult, len(actuals))
	for _, a := range actuals {
		if _, seen := byRef[a.DriverRef]; !seen {
			byRef[a.DriverRef] = a
		}
	}

	records := make([]Record, 0, len(preds))
	for _, p := range preds {
		a, ok := byRef[p.DriverRef]
		if !ok {
			continue
		}
		err := p.PredictedPosition - a.FinishPosition
		records = append(records, Record{
			DriverRef:         p.DriverRef,
			DriverName:        p.DriverName,
			Team:              p.Team,
			PredictedPosition: p.PredictedPosition,
			ActualPosition:    a.FinishPosition,
			Error:             err,
			AbsError:          abs(err),
			GridPosition:      p.GridPosition,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ActualPosition < records[j].ActualPosition
	})

	return records, summarize(records)
}

// summarize computes the accuracy block over already-matched records.
func summarize(records []Record) *Summary {
	s := &Summary{TotalDrivers: len(records)}
	if len(records) == 0 {
		return s
	}

	var sumAbs, sumSq float64
	for _, r := range records {
		sumAbs += float64(r.AbsError)
		sumSq += float64(r.AbsError * r.AbsError)
		if r.AbsError == 0 {
			s.ExactMatches++
		}
		if r.AbsError <= 1 {
			s.WithinOne++
		}
		if r.AbsError <= 3 {
			s.WithinThree++
		}
	}

	n := float64(len(records))
	s.MAE = sumAbs / n
	s.RMSE = math.Sqrt(sumSq / n)
	s.ExactMatchRate = float64(s.ExactMatches) / n
	s.WithinOneRate = float64(s.WithinOne) / n
	s.WithinThreeRate = float64(s.WithinThree) / n
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
