package registry

import "strings"

// stateAbbrevs maps lowercased US state names to their two-letter codes.
var stateAbbrevs = map[string]string{
	"alabama":        "AL",
	"alaska":         "AK",
	"arizona":        "AZ",
	"arkansas":       "AR",
	"california":     "CA",
	"colorado":       "CO",
	"connecticut":    "CT",
	"delaware":       "DE",
	"florida":        "FL",
	"georgia":        "GA",
	"hawaii":         "HI",
	"idaho":          "ID",
	"illinois":       "IL",
	"indiana":        "IN",
	"iowa":           "IA",
	"kansas":         "KS",
	"kentucky":       "KY",
	"louisiana":      "LA",
	"maine":          "ME",
	"maryland":       "MD",
	"massachusetts":  "MA",
	"michigan":       "MI",
	"minnesota":      "MN",
	"mississippi":    "MS",
	"missouri":       "MO",
	"montana":        "MT",
	"nebraska":       "NE",
	"nevada":         "NV",
	"new hampshire":  "NH",
	"new jersey":     "NJ",
	"new mexico":     "NM",
	"new york":       "NY",
	"north carolina": "NC",
	"north dakota":   "ND",
	"ohio":           "OH",
	"oklahoma":       "OK",
	"oregon":         "OR",
	"pennsylvania":   "PA",
	"rhode island":   "RI",
	"south carolina": "SC",
	"south dakota":   "SD",
	"tennessee":      "TN",
	"texas":          "TX",
	"utah":           "UT",
	"vermont":        "VT",
	"virginia":       "VA",
	"washington":     "WA",
	"west virginia":  "WV",
	"wisconsin":      "WI",
	"wyoming":        "WY",
}

// NormalizeLocation rewrites a free-form location to "City, ST" where
// possible. "City, XX" inputs pass through as-is, "City FullStateName"
// inputs are rewritten, and anything else passes through unmodified.
func NormalizeLocation(location string) string {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" || strings.Contains(trimmed, ",") {
		return trimmed
	}

	// State names are at most two words, so try the longer suffix first
	// ("New York New York" keeps its city intact).
	words := strings.Fields(trimmed)
	for n := 2; n >= 1; n-- {
		if len(words) <= n {
			continue
		}
		suffix := strings.ToLower(strings.Join(words[len(words)-n:], " "))
		if abbr, ok := stateAbbrevs[suffix]; ok {
			city := strings.Join(words[:len(words)-n], " ")
			return city + ", " + abbr
		}
	}
	return trimmed
}
