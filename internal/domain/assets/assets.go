// Package assets maps driver and team identifiers to display assets.
//
// The tables are static, initialized once at package load, and never written
// afterwards. A miss is not an error: callers render a placeholder instead.
package assets

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AssetRef is a relative path to an image served by the static site.
type AssetRef string

// portraits maps driver slugs to portrait images. Keys are lowercase slugs as
// the upstream API emits them; "max_verstapen" is a deliberate alias for a
// misspelling that appears in older prediction exports.
var portraits = map[string]AssetRef{
	"max_verstappen":    "img/drivers/max_verstappen.png",
	"max_verstapen":     "img/drivers/max_verstappen.png",
	"lewis_hamilton":    "img/drivers/lewis_hamilton.png",
	"charles_leclerc":   "img/drivers/charles_leclerc.png",
	"carlos_sainz":      "img/drivers/carlos_sainz.png",
	"lando_norris":      "img/drivers/lando_norris.png",
	"george_russell":    "img/drivers/george_russell.png",
	"alexander_albon":   "img/drivers/alexander_albon.png",
	"esteban_ocon":      "img/drivers/esteban_ocon.png",
	"fernando_alonso":   "img/drivers/fernando_alonso.png",
	"lance_stroll":      "img/drivers/lance_stroll.png",
	"pierre_gasly":      "img/drivers/pierre_gasly.png",
	"yuki_tsunoda":      "img/drivers/yuki_tsunoda.png",
	"nico_hulkenberg":   "img/drivers/nico_hulkenberg.png",
	"oscar_piastri":     "img/drivers/oscar_piastri.png",
	"valtteri_bottas":   "img/drivers/valtteri_bottas.png",
	"guanyu_zhou":       "img/drivers/guanyu_zhou.png",
	"kevin_magnussen":   "img/drivers/kevin_magnussen.png",
	"daniel_ricciardo":  "img/drivers/daniel_ricciardo.png",
	"liam_lawson":       "img/drivers/liam_lawson.png",
	"oliver_bearman":    "img/drivers/oliver_bearman.png",
	"kimi_antonelli":    "img/drivers/kimi_antonelli.png",
	"jack_doohan":       "img/drivers/jack_doohan.png",
	"isack_hadjar":      "img/drivers/isack_hadjar.png",
	"gabriel_bortoleto": "img/drivers/gabriel_bortoleto.png",
	"franco_colapinto":  "img/drivers/franco_colapinto.png",
}

// logos maps team name aliases to one logo per constructor. The upstream API
// is inconsistent about team naming (legal name, short name, sponsor name,
// historical name), so each constructor carries several keys.
var logos = map[string]AssetRef{
	"red bull":                  "img/teams/red_bull.png",
	"red bull racing":           "img/teams/red_bull.png",
	"oracle red bull racing":    "img/teams/red_bull.png",
	"ferrari":                   "img/teams/ferrari.png",
	"scuderia ferrari":          "img/teams/ferrari.png",
	"mercedes":                  "img/teams/mercedes.png",
	"mercedes-amg":              "img/teams/mercedes.png",
	"mercedes amg petronas":     "img/teams/mercedes.png",
	"mclaren":                   "img/teams/mclaren.png",
	"mclaren f1 team":           "img/teams/mclaren.png",
	"aston martin":              "img/teams/aston_martin.png",
	"aston martin aramco":       "img/teams/aston_martin.png",
	"alpine":                    "img/teams/alpine.png",
	"alpine f1 team":            "img/teams/alpine.png",
	"renault":                   "img/teams/alpine.png",
	"williams":                  "img/teams/williams.png",
	"williams racing":           "img/teams/williams.png",
	"rb":                        "img/teams/rb.png",
	"rb f1 team":                "img/teams/rb.png",
	"racing bulls":              "img/teams/rb.png",
	"alphatauri":                "img/teams/rb.png",
	"toro rosso":                "img/teams/rb.png",
	"sauber":                    "img/teams/sauber.png",
	"kick sauber":               "img/teams/sauber.png",
	"stake f1 team kick sauber": "img/teams/sauber.png",
	"alfa romeo":                "img/teams/sauber.png",
	"haas":                      "img/teams/haas.png",
	"haas f1 team":              "img/teams/haas.png",
	"moneygram haas f1 team":    "img/teams/haas.png",
}

// DriverPortrait resolves a driver slug to its portrait image. The boolean is
// false when the driver is unknown; callers use a placeholder then.
func DriverPortrait(driverRef string) (AssetRef, bool) {
	ref, ok := portraits[strings.ToLower(strings.TrimSpace(driverRef))]
	return ref, ok
}

// TeamLogo resolves a team name, in any of its aliases, to the constructor's
// logo. The boolean is false when no alias matches.
func TeamLogo(teamName string) (AssetRef, bool) {
	ref, ok := logos[strings.ToLower(strings.TrimSpace(teamName))]
	return ref, ok
}

// DisplayName turns a driver slug like "max_verstappen" into "Max Verstappen".
// Total over all inputs; the empty string maps to itself.
//
// A cases.Caser carries mutable transform state, so one is built per call
// rather than shared across goroutines.
func DisplayName(slug string) string {
	if slug == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "_", " "))
}
