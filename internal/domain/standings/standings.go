// Package standings tabulates championship standings from per-race predicted
// finishing positions. It backs the standings view when the upstream service
// has no standings data of its own.
package standings

import (
	"sort"

	"github.com/pitwall/pitwall/internal/domain/model"
)

// pointsByPosition is the championship points table: P1 through P10 score,
// everyone else scores zero.
var pointsByPosition = map[int]int{
	1: 25, 2: 18, 3: 15, 4: 12, 5: 10, 6: 8, 7: 6, 8: 4, 9: 2, 10: 1,
}

const podiumCutoff = 3

// Points returns the championship points for a finishing position.
func Points(position int) int {
	return pointsByPosition[position]
}

// Tabulate folds per-race predictions into driver and team standings for a
// season. Each element of racePredictions is the full prediction list of one
// race. Both tables are sorted by points descending; ties keep relative
// insertion order so repeated runs over the same input agree.
func Tabulate(year int, racePredictions [][]model.DriverPrediction) model.SeasonStandings {
	type tally struct {
		points  int
		wins    int
		podiums int
		races   int
	}

	driverOrder := make([]string, 0)
	teamOrder := make([]string, 0)
	drivers := make(map[string]*tally)
	teams := make(map[string]*tally)

	for _, preds := range racePredictions {
		for _, p := range preds {
			pts := Points(p.PredictedPosition)

			d, ok := drivers[p.DriverRef]
			if !ok {
				d = &tally{}
				drivers[p.DriverRef] = d
				driverOrder = append(driverOrder, p.DriverRef)
			}
			d.points += pts
			d.races++
			if p.PredictedPosition == 1 {
				d.wins++
			}
			if p.PredictedPosition <= podiumCutoff {
				d.podiums++
			}

			t, ok := teams[p.Team]
			if !ok {
				t = &tally{}
				teams[p.Team] = t
				teamOrder = append(teamOrder, p.Team)
			}
			t.points += pts
			if p.PredictedPosition == 1 {
				t.wins++
			}
			if p.PredictedPosition <= podiumCutoff {
				t.podiums++
			}
		}
	}

	driverStandings := make([]model.DriverStanding, 0, len(driverOrder))
	for _, ref := range driverOrder {
		d := drivers[ref]
		driverStandings = append(driverStandings, model.DriverStanding{
			Driver:  ref,
			Points:  d.points,
			Wins:    d.wins,
			Podiums: d.podiums,
			Races:   d.races,
		})
	}
	sort.SliceStable(driverStandings, func(i, j int) bool {
		return driverStandings[i].Points > driverStandings[j].Points
	})

	teamStandings := make([]model.TeamStanding, 0, len(teamOrder))
	for _, name := range teamOrder {
		t := teams[name]
		teamStandings = append(teamStandings, model.TeamStanding{
			Team:    name,
			Points:  t.points,
			Wins:    t.wins,
			Podiums: t.podiums,
		})
	}
	sort.SliceStable(teamStandings, func(i, j int) bool {
		return teamStandings[i].Points > teamStandings[j].Points
	})

	return model.SeasonStandings{
		Year:            year,
		DriverStandings: driverStandings,
		TeamStandings:   teamStandings,
		TotalRaces:      len(racePredictions),
		CompletedRaces:  len(racePredictions),
	}
}
