package footballdata

import "time"

const (
	// ProviderName labels logs and metrics for this upstream.
	ProviderName = "football-data"

	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultHTTPTimeout = 30 * time.Second
	authHeader         = "X-Auth-Token"
	scorersLimit       = 200
)

// Endpoint kinds double as output folders.
const (
	KindScorers   = "scorers"
	KindMatches   = "competition_matches"
	KindStandings = "standings"
	KindTeams     = "teams"
)

// unfoldHeaders ask the API to inline lineups, bookings, substitutions and goals.
var unfoldHeaders = map[string]string{
	"X-Unfold-Lineups":  "true",
	"X-Unfold-Bookings": "true",
	"X-Unfold-Subs":     "true",
	"X-Unfold-Goals":    "true",
}
