package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pitwall/pitwall/internal/adapters/http/api"
	"github.com/pitwall/pitwall/internal/adapters/upstream"
	service "github.com/pitwall/pitwall/internal/app"
	"github.com/pitwall/pitwall/internal/domain/comparison"
	"github.com/pitwall/pitwall/internal/domain/geo"
	"github.com/pitwall/pitwall/internal/domain/model"
	"github.com/pitwall/pitwall/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps fakes the app service behind the handlers.
type mockDeps struct {
	races      []types.RaceView
	racesErr   error
	prediction *types.PredictionView
	predictErr error
	customErr  error
	cmpView    *types.ComparisonView
	cmpErr     error
	standings  *types.StandingsView
	stats      *types.StatisticsView
	roster     []types.DriverRosterView
	profile    *types.DriverProfileView
	profileErr error
	year       int
}

func (m *mockDeps) Races(ctx context.Context, year int) ([]types.RaceView, error) {
	return m.races, m.racesErr
}

func (m *mockDeps) Prediction(ctx context.Context, raceID int) (*types.PredictionView, error) {
	return m.prediction, m.predictErr
}

func (m *mockDeps) CustomPrediction(ctx context.Context, req model.CustomScenarioRequest) (*types.PredictionView, error) {
	if m.customErr != nil {
		return nil, m.customErr
	}
	return m.prediction, nil
}

func (m *mockDeps) Comparison(ctx context.Context, raceID int) (*types.ComparisonView, error) {
	return m.cmpView, m.cmpErr
}

func (m *mockDeps) Standings(ctx context.Context, year int) (*types.StandingsView, error) {
	return m.standings, nil
}

func (m *mockDeps) Statistics(ctx context.Context) (*types.StatisticsView, error) {
	return m.stats, nil
}

func (m *mockDeps) Drivers(ctx context.Context) ([]types.DriverRosterView, error) {
	return m.roster, nil
}

func (m *mockDeps) DriverProfile(ctx context.Context, ref string) (*types.DriverProfileView, error) {
	return m.profile, m.profileErr
}

func (m *mockDeps) DefaultYear() int {
	if m.year == 0 {
		return 2025
	}
	return m.year
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(deps, mockStats{})
	server.Register(context.Background(), mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestRacesEndpoint(t *testing.T) {
	Convey("Given the races endpoint", t, func() {
		deps := &mockDeps{
			races: []types.RaceView{
				{
					RaceInfo:   model.RaceInfo{RaceID: 1100, Name: "Bahrain Grand Prix", Round: 1, Year: 2025},
					Coordinate: geo.Coordinate{Lat: 26.0325, Lng: 50.5106},
				},
			},
		}
		mux := newMux(deps)

		Convey("When listing races", func() {
			w := doRequest(mux, http.MethodGet, "/api/races", "")

			Convey("Then it should return the view models as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var got []map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0]["raceId"], ShouldAlmostEqual, 1100)
				coord := got[0]["coordinate"].(map[string]any)
				So(coord["lat"], ShouldAlmostEqual, 26.0325, 0.0001)
			})
		})

		Convey("When the year parameter is not a number", func() {
			w := doRequest(mux, http.MethodGet, "/api/races?year=abc", "")

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the upstream is unreachable", func() {
			deps.racesErr = upstream.ErrUnreachable
			w := doRequest(mux, http.MethodGet, "/api/races", "")

			Convey("Then it should answer 502 with an error body", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)

				var got map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got["code"], ShouldEqual, "upstream_unreachable")
			})
		})

		Convey("When the method is wrong", func() {
			w := doRequest(mux, http.MethodPost, "/api/races", "{}")

			Convey("Then it should 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestPredictEndpoints(t *testing.T) {
	Convey("Given the predict endpoints", t, func() {
		deps := &mockDeps{
			prediction: &types.PredictionView{
				PredictionResult: model.PredictionResult{RaceID: 1100, PredictedWinner: "max_verstappen", Confidence: 0.87},
			},
		}
		mux := newMux(deps)

		Convey("When fetching a race prediction", func() {
			w := doRequest(mux, http.MethodGet, "/api/predict/1100", "")

			Convey("Then it should return the prediction view", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got["predicted_winner"], ShouldEqual, "max_verstappen")
			})
		})

		Convey("When the race id is not numeric", func() {
			w := doRequest(mux, http.MethodGet, "/api/predict/abc", "")

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the race does not exist upstream", func() {
			deps.predictErr = &upstream.StatusError{Code: http.StatusNotFound, Detail: "race not found"}
			w := doRequest(mux, http.MethodGet, "/api/predict/9999", "")

			Convey("Then the 404 should pass through", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When posting a custom scenario", func() {
			body := `{"drivers":[{"driverRef":"max_verstappen","team":"Red Bull","grid_position":1}]}`
			w := doRequest(mux, http.MethodPost, "/api/predict/custom", body)

			Convey("Then it should return the scored scenario", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the custom scenario body is not JSON", func() {
			w := doRequest(mux, http.MethodPost, "/api/predict/custom", "{nope")

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the custom scenario fails validation", func() {
			deps.customErr = service.ErrNoDrivers
			w := doRequest(mux, http.MethodPost, "/api/predict/custom", `{"drivers":[]}`)

			Convey("Then the validation error should map to 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var got map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got["code"], ShouldEqual, "bad_request")
			})
		})
	})
}

func TestCompareEndpoint(t *testing.T) {
	Convey("Given the compare endpoint", t, func() {
		deps := &mockDeps{
			cmpView: &types.ComparisonView{
				RaceID:     1100,
				RaceName:   "Bahrain Grand Prix",
				HasActuals: true,
				Accuracy:   &comparison.Summary{TotalDrivers: 2, MAE: 1.0},
			},
		}
		mux := newMux(deps)

		Convey("When fetching a comparison", func() {
			w := doRequest(mux, http.MethodGet, "/api/compare/1100", "")

			Convey("Then the accuracy block should be present", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got["has_actuals"], ShouldEqual, true)
				acc := got["accuracy"].(map[string]any)
				So(acc["mae"], ShouldAlmostEqual, 1.0)
			})
		})

		Convey("When the id is malformed", func() {
			w := doRequest(mux, http.MethodGet, "/api/compare/-1", "")

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestStandingsEndpoint(t *testing.T) {
	Convey("Given the standings endpoint", t, func() {
		deps := &mockDeps{
			standings: &types.StandingsView{
				SeasonStandings: model.SeasonStandings{
					Year: 2025,
					DriverStandings: []model.DriverStanding{
						{Driver: "max_verstappen", Points: 255, Wins: 7},
					},
				},
				Source: types.StandingsSourceComputed,
			},
		}
		mux := newMux(deps)

		Convey("When fetching a season", func() {
			w := doRequest(mux, http.MethodGet, "/api/standings/2025", "")

			Convey("Then the table and its source should serialize", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got["source"], ShouldEqual, "computed")
				rows := got["driver_standings"].([]any)
				So(rows, ShouldHaveLength, 1)
			})
		})

		Convey("When the year is not numeric", func() {
			w := doRequest(mux, http.MethodGet, "/api/standings/last", "")

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestDriversEndpoints(t *testing.T) {
	Convey("Given the drivers endpoints", t, func() {
		deps := &mockDeps{
			roster: []types.DriverRosterView{
				{
					DriverSummary: model.DriverSummary{DriverRef: "lando_norris", TotalRaces: 24},
					DisplayName:   "Lando Norris",
					Portrait:      "img/drivers/lando_norris.png",
				},
			},
			profile: &types.DriverProfileView{
				DriverProfile: model.DriverProfile{DriverRef: "lando_norris", TotalRaces: 24},
				DisplayName:   "Lando Norris",
			},
		}
		mux := newMux(deps)

		Convey("When listing the roster", func() {
			w := doRequest(mux, http.MethodGet, "/api/drivers", "")

			Convey("Then the enriched rows should serialize", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got []map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got[0]["display_name"], ShouldEqual, "Lando Norris")
				So(got[0]["portrait"], ShouldEqual, "img/drivers/lando_norris.png")
			})
		})

		Convey("When fetching a profile", func() {
			w := doRequest(mux, http.MethodGet, "/api/drivers/lando_norris", "")

			Convey("Then the profile should serialize", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the ref contains a slash", func() {
			w := doRequest(mux, http.MethodGet, "/api/drivers/lando/norris", "")

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the driver is unknown upstream", func() {
			deps.profileErr = &upstream.StatusError{Code: http.StatusNotFound}
			w := doRequest(mux, http.MethodGet, "/api/drivers/ghost", "")

			Convey("Then the 404 should pass through", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStatsAndHealthEndpoints(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		mux := newMux(&mockDeps{})

		Convey("When fetching /stats", func() {
			w := doRequest(mux, http.MethodGet, "/stats", "")

			Convey("Then the service stats should serialize", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got["started"], ShouldEqual, true)
			})
		})

		Convey("When fetching /healthz", func() {
			w := doRequest(mux, http.MethodGet, "/healthz", "")

			Convey("Then the metrics exposition should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When fetching /dashboard", func() {
			w := doRequest(mux, http.MethodGet, "/dashboard", "")

			Convey("Then the dashboard page should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			})
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given the request ID middleware", t, func() {
		handler := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		Convey("When the client sends no request ID", func() {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then a fresh one should be generated", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When the client supplies a request ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			Convey("Then it should be echoed back", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})
	})
}
