// Package geo resolves race circuit names to map coordinates.
//
// Circuit and location strings arrive from the upstream API in varying
// formats (official names, colloquial names, city names), so a single
// exact-match table is not enough. Locate walks an ordered fallback chain and
// always returns a coordinate: a race that cannot be resolved still has to
// render a marker somewhere.
package geo

import (
	"strings"

	"github.com/pitwall/pitwall/internal/domain/model"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DefaultCoordinate is the terminal fallback. It has no geographic meaning;
// it only guarantees the map renders a marker.
var DefaultCoordinate = Coordinate{Lat: 20.0, Lng: 0.0}

// entry pairs one lookup key with its coordinate. Tables are slices, not
// maps, so partial matching iterates in insertion order and first-match-wins
// stays deterministic.
type entry struct {
	key   string
	coord Coordinate
}

// circuitTable keys circuits by official name, common shortname, city, and
// region. Keys are lowercase; all lookups normalize before comparing. The
// table is curated so no key is a substring of an unrelated key.
var circuitTable = []entry{
	{"bahrain international circuit", Coordinate{26.0325, 50.5106}},
	{"sakhir", Coordinate{26.0325, 50.5106}},
	{"jeddah corniche circuit", Coordinate{21.6319, 39.1044}},
	{"jeddah", Coordinate{21.6319, 39.1044}},
	{"albert park grand prix circuit", Coordinate{-37.8497, 144.9680}},
	{"albert park", Coordinate{-37.8497, 144.9680}},
	{"melbourne", Coordinate{-37.8497, 144.9680}},
	{"suzuka circuit", Coordinate{34.8431, 136.5410}},
	{"suzuka", Coordinate{34.8431, 136.5410}},
	{"shanghai international circuit", Coordinate{31.3389, 121.2200}},
	{"shanghai", Coordinate{31.3389, 121.2200}},
	{"miami international autodrome", Coordinate{25.9581, -80.2389}},
	{"miami", Coordinate{25.9581, -80.2389}},
	{"autodromo enzo e dino ferrari", Coordinate{44.3439, 11.7167}},
	{"imola", Coordinate{44.3439, 11.7167}},
	{"circuit de monaco", Coordinate{43.7347, 7.4206}},
	{"monte-carlo", Coordinate{43.7347, 7.4206}},
	{"monte carlo", Coordinate{43.7347, 7.4206}},
	{"circuit gilles villeneuve", Coordinate{45.5000, -73.5228}},
	{"montreal", Coordinate{45.5000, -73.5228}},
	{"circuit de barcelona-catalunya", Coordinate{41.5700, 2.2611}},
	{"catalunya", Coordinate{41.5700, 2.2611}},
	{"barcelona", Coordinate{41.5700, 2.2611}},
	{"red bull ring", Coordinate{47.2197, 14.7647}},
	{"spielberg", Coordinate{47.2197, 14.7647}},
	{"silverstone circuit", Coordinate{52.0786, -1.0169}},
	{"silverstone", Coordinate{52.0786, -1.0169}},
	{"hungaroring", Coordinate{47.5789, 19.2486}},
	{"budapest", Coordinate{47.5789, 19.2486}},
	{"circuit de spa-francorchamps", Coordinate{50.4372, 5.9714}},
	{"spa-francorchamps", Coordinate{50.4372, 5.9714}},
	{"spa", Coordinate{50.4372, 5.9714}},
	{"circuit zandvoort", Coordinate{52.3888, 4.5409}},
	{"zandvoort", Coordinate{52.3888, 4.5409}},
	{"autodromo nazionale di monza", Coordinate{45.6156, 9.2811}},
	{"monza", Coordinate{45.6156, 9.2811}},
	{"baku city circuit", Coordinate{40.3725, 49.8533}},
	{"baku", Coordinate{40.3725, 49.8533}},
	{"marina bay street circuit", Coordinate{1.2914, 103.8640}},
	{"marina bay", Coordinate{1.2914, 103.8640}},
	{"singapore", Coordinate{1.2914, 103.8640}},
	{"circuit of the americas", Coordinate{30.1328, -97.6411}},
	{"austin", Coordinate{30.1328, -97.6411}},
	{"autodromo hermanos rodriguez", Coordinate{19.4042, -99.0907}},
	{"mexico city", Coordinate{19.4042, -99.0907}},
	{"autodromo jose carlos pace", Coordinate{-23.7036, -46.6997}},
	{"interlagos", Coordinate{-23.7036, -46.6997}},
	{"sao paulo", Coordinate{-23.7036, -46.6997}},
	{"las vegas strip street circuit", Coordinate{36.1147, -115.1728}},
	{"las vegas", Coordinate{36.1147, -115.1728}},
	{"losail international circuit", Coordinate{25.4900, 51.4542}},
	{"losail", Coordinate{25.4900, 51.4542}},
	{"lusail", Coordinate{25.4900, 51.4542}},
	{"yas marina circuit", Coordinate{24.4672, 54.6031}},
	{"yas marina", Coordinate{24.4672, 54.6031}},
	{"abu dhabi", Coordinate{24.4672, 54.6031}},
}

// countryTable holds one representative point per country, chosen as the
// country's primary circuit. Used only after circuit and location lookups
// come up empty.
var countryTable = []entry{
	{"bahrain", Coordinate{26.0325, 50.5106}},
	{"saudi arabia", Coordinate{21.6319, 39.1044}},
	{"australia", Coordinate{-37.8497, 144.9680}},
	{"japan", Coordinate{34.8431, 136.5410}},
	{"china", Coordinate{31.3389, 121.2200}},
	{"usa", Coordinate{30.1328, -97.6411}},
	{"united states", Coordinate{30.1328, -97.6411}},
	{"italy", Coordinate{45.6156, 9.2811}},
	{"monaco", Coordinate{43.7347, 7.4206}},
	{"canada", Coordinate{45.5000, -73.5228}},
	{"spain", Coordinate{41.5700, 2.2611}},
	{"austria", Coordinate{47.2197, 14.7647}},
	{"uk", Coordinate{52.0786, -1.0169}},
	{"united kingdom", Coordinate{52.0786, -1.0169}},
	{"great britain", Coordinate{52.0786, -1.0169}},
	{"hungary", Coordinate{47.5789, 19.2486}},
	{"belgium", Coordinate{50.4372, 5.9714}},
	{"netherlands", Coordinate{52.3888, 4.5409}},
	{"azerbaijan", Coordinate{40.3725, 49.8533}},
	{"singapore", Coordinate{1.2914, 103.8640}},
	{"mexico", Coordinate{19.4042, -99.0907}},
	{"brazil", Coordinate{-23.7036, -46.6997}},
	{"qatar", Coordinate{25.4900, 51.4542}},
	{"uae", Coordinate{24.4672, 54.6031}},
	{"united arab emirates", Coordinate{24.4672, 54.6031}},
}

// Locate maps a race to a coordinate. It never fails: the chain tries the
// circuit name, then the location, then the country, and falls back to
// DefaultCoordinate when nothing matches.
func Locate(race model.RaceInfo) Coordinate {
	if c, ok := lookup(race.Circuit, circuitTable); ok {
		return c
	}
	if c, ok := lookup(race.Location, circuitTable); ok {
		return c
	}
	if c, ok := lookup(race.Country, countryTable); ok {
		return c
	}
	return DefaultCoordinate
}

// lookup runs the exact pass before any partial pass so an exact key never
// loses to an earlier substring match.
func lookup(name string, table []entry) (Coordinate, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Coordinate{}, false
	}
	for _, e := range table {
		if e.key == name {
			return e.coord, true
		}
	}
	for _, e := range table {
		if strings.Contains(name, e.key) || strings.Contains(e.key, name) {
			return e.coord, true
		}
	}
	return Coordinate{}, false
}
