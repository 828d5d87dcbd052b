package config

import "time"

const (
	envFootballDataToken        = "FOOTBALL_DATA_TOKEN"
	envFootballDataBaseURL      = "FOOTBALL_DATA_BASE_URL"
	envFootballDataTimeout      = "FOOTBALL_DATA_TIMEOUT"
	envFootballDataBaseDelay    = "FOOTBALL_DATA_BASE_DELAY"
	envFootballDataMaxAttempts  = "FOOTBALL_DATA_MAX_ATTEMPTS"
	envFootballDataRequestDelay = "FOOTBALL_DATA_REQUEST_DELAY"
	envFootballDataEntityDelay  = "FOOTBALL_DATA_ENTITY_DELAY"

	envFBrefBaseURL      = "FBREF_BASE_URL"
	envFBrefTimeout      = "FBREF_TIMEOUT"
	envFBrefUserAgent    = "FBREF_USER_AGENT"
	envFBrefRequestDelay = "FBREF_REQUEST_DELAY"
	envFBrefEntityDelay  = "FBREF_ENTITY_DELAY"
	envFBrefPageDelay    = "FBREF_PAGE_DELAY"
	envFBrefBypass       = "FBREF_BYPASS"

	envSoFIFABaseURL      = "SOFIFA_BASE_URL"
	envSoFIFATimeout      = "SOFIFA_TIMEOUT"
	envSoFIFAUserAgent    = "SOFIFA_USER_AGENT"
	envSoFIFARequestDelay = "SOFIFA_REQUEST_DELAY"
	envSoFIFAEntityDelay  = "SOFIFA_ENTITY_DELAY"
	envSoFIFAPageDelay    = "SOFIFA_PAGE_DELAY"
	envSoFIFAVersionLimit = "SOFIFA_VERSION_LIMIT"
	envSoFIFABypass       = "SOFIFA_BYPASS"

	envOutputRoot = "OUTPUT_ROOT"
	envLogLevel   = "LOG_LEVEL"
	envLogFormat  = "LOG_FORMAT"
	envLogFile    = "LOG_FILE"
	envJobsFile   = "COLLECTOR_JOBS_FILE"

	envMetricsOn       = "METRICS_ENABLED"
	envMetricsPort     = "METRICS_PORT"
	envMetricsTextfile = "METRICS_TEXTFILE"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultFootballDataBaseURL = "https://api.football-data.org/v4"
	defaultFootballDataTimeout = 30 * time.Second
	// The free tier allows 10 requests per minute.
	defaultFootballDataBaseDelay    = 6500 * time.Millisecond
	defaultFootballDataMaxAttempts  = 3
	defaultFootballDataRequestDelay = 6500 * time.Millisecond
	defaultFootballDataEntityDelay  = 10 * time.Second

	defaultFBrefBaseURL      = "https://fbref.com"
	defaultFBrefTimeout      = 20 * time.Second
	defaultFBrefRequestDelay = 7 * time.Second
	defaultFBrefEntityDelay  = 10 * time.Second
	defaultFBrefPageDelay    = 7 * time.Second
	defaultFBrefBypass       = true

	defaultSoFIFABaseURL      = "https://sofifa.com"
	defaultSoFIFATimeout      = 20 * time.Second
	defaultSoFIFARequestDelay = 5 * time.Second
	defaultSoFIFAEntityDelay  = 5 * time.Second
	defaultSoFIFAPageDelay    = 3 * time.Second
	defaultSoFIFAVersionLimit = 100
	defaultSoFIFABypass       = true

	defaultOutputRoot  = "dados_coletados"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultMetricsPort = "9090"
	defaultServiceName = "footstats-collector"
)
