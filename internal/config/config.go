package config

import (
	"errors"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned when football-data.org jobs run without a token.
var ErrMissingToken = errors.New("FOOTBALL_DATA_TOKEN is not set")

// Config holds runtime configuration for the collector.
type Config struct {
	FootballData FootballDataConfig
	FBref        FBrefConfig
	SoFIFA       SoFIFAConfig
	Output       OutputConfig
	Log          LogConfig
	Metrics      MetricsConfig
	JobsFile     string
}

// FootballDataConfig controls how we talk to the football-data.org API.
type FootballDataConfig struct {
	BaseURL      string
	Token        string
	Timeout      Duration
	BaseDelay    Duration
	MaxAttempts  int
	RequestDelay Duration
	EntityDelay  Duration
}

// FBrefConfig controls the FBref scraper.
type FBrefConfig struct {
	BaseURL      string
	Timeout      Duration
	UserAgent    string
	RequestDelay Duration
	EntityDelay  Duration
	PageDelay    Duration
	Bypass       bool
}

// SoFIFAConfig controls the SoFIFA player scraper.
type SoFIFAConfig struct {
	BaseURL      string
	Timeout      Duration
	UserAgent    string
	RequestDelay Duration
	EntityDelay  Duration
	PageDelay    Duration
	// VersionLimit caps how many of the latest database updates are read.
	VersionLimit int
	Bypass       bool
}

// OutputConfig locates the CSV tree.
type OutputConfig struct {
	Root string
}

// LogConfig selects the log level, format and optional file sink.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads configuration from a local .env file, when present, and the
// environment, with defaults for everything but the token.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile is Load with an explicit dotenv path. Variables already set in
// the environment win.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, err
	}
	return fromEnv(), nil
}

func fromEnv() Config {
	return Config{
		FootballData: loadFootballData(),
		FBref:        loadFBref(),
		SoFIFA:       loadSoFIFA(),
		Output: OutputConfig{
			Root: envOrDefault(envOutputRoot, defaultOutputRoot),
		},
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
			File:   envOrDefault(envLogFile, ""),
		},
		Metrics:  loadMetrics(),
		JobsFile: envOrDefault(envJobsFile, ""),
	}
}

// RequireToken fails fast when the football-data.org token is absent.
func (c Config) RequireToken() error {
	if c.FootballData.Token == "" {
		return ErrMissingToken
	}
	return nil
}

func loadFootballData() FootballDataConfig {
	return FootballDataConfig{
		BaseURL:      envOrDefault(envFootballDataBaseURL, defaultFootballDataBaseURL),
		Token:        envOrDefault(envFootballDataToken, ""),
		Timeout:      durationEnvOrDefault(envFootballDataTimeout, defaultFootballDataTimeout),
		BaseDelay:    durationEnvOrDefault(envFootballDataBaseDelay, defaultFootballDataBaseDelay),
		MaxAttempts:  intEnvOrDefault(envFootballDataMaxAttempts, defaultFootballDataMaxAttempts),
		RequestDelay: nonNegativeDurationEnvOrDefault(envFootballDataRequestDelay, defaultFootballDataRequestDelay),
		EntityDelay:  nonNegativeDurationEnvOrDefault(envFootballDataEntityDelay, defaultFootballDataEntityDelay),
	}
}

func loadFBref() FBrefConfig {
	return FBrefConfig{
		BaseURL:      envOrDefault(envFBrefBaseURL, defaultFBrefBaseURL),
		Timeout:      durationEnvOrDefault(envFBrefTimeout, defaultFBrefTimeout),
		UserAgent:    envOrDefault(envFBrefUserAgent, ""),
		RequestDelay: nonNegativeDurationEnvOrDefault(envFBrefRequestDelay, defaultFBrefRequestDelay),
		EntityDelay:  nonNegativeDurationEnvOrDefault(envFBrefEntityDelay, defaultFBrefEntityDelay),
		PageDelay:    nonNegativeDurationEnvOrDefault(envFBrefPageDelay, defaultFBrefPageDelay),
		Bypass:       boolEnvOrDefault(envFBrefBypass, defaultFBrefBypass),
	}
}

func loadSoFIFA() SoFIFAConfig {
	return SoFIFAConfig{
		BaseURL:      envOrDefault(envSoFIFABaseURL, defaultSoFIFABaseURL),
		Timeout:      durationEnvOrDefault(envSoFIFATimeout, defaultSoFIFATimeout),
		UserAgent:    envOrDefault(envSoFIFAUserAgent, ""),
		RequestDelay: nonNegativeDurationEnvOrDefault(envSoFIFARequestDelay, defaultSoFIFARequestDelay),
		EntityDelay:  nonNegativeDurationEnvOrDefault(envSoFIFAEntityDelay, defaultSoFIFAEntityDelay),
		PageDelay:    nonNegativeDurationEnvOrDefault(envSoFIFAPageDelay, defaultSoFIFAPageDelay),
		VersionLimit: intEnvOrDefault(envSoFIFAVersionLimit, defaultSoFIFAVersionLimit),
		Bypass:       boolEnvOrDefault(envSoFIFABypass, defaultSoFIFABypass),
	}
}
