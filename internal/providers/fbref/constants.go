package fbref

import "time"

const (
	// ProviderName labels logs and metrics for this upstream.
	ProviderName = "fbref"

	defaultBaseURL     = "https://fbref.com"
	defaultHTTPTimeout = 20 * time.Second
	defaultPageDelay   = 7 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	headerSeparator    = "_"
)

// Output kinds.
const (
	KindTeamSeasonStats   = "fbref_team_season_stats"
	KindPlayerSeasonStats = "fbref_player_season_stats"
	KindLeagues           = "fbref_leagues"
	KindTeamSummary       = "fbref_team_summary"
	KindPlayerMatch       = "fbref_player_match"
)
