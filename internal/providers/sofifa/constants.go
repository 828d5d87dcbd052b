package sofifa

import "time"

const (
	// ProviderName labels logs and metrics for this upstream.
	ProviderName = "sofifa"
	// KindPlayers is the output folder of the player job.
	KindPlayers = "sofifa_players"
	// SplitColumn partitions player batches into one file per nationality.
	SplitColumn = "nationality_name"

	defaultBaseURL      = "https://sofifa.com"
	defaultHTTPTimeout  = 20 * time.Second
	defaultPageDelay    = 3 * time.Second
	defaultVersionLimit = 100
	defaultMaxPages     = 50
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	// pageSize is how many rows a player listing page holds.
	pageSize   = 60
	updateDate = "Jan 2, 2006"
)
