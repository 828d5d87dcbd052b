// Package sofifa scrapes the SoFIFA player database, one listing per
// league and weekly update.
package sofifa

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"footstats-collector/internal/collector"
	"footstats-collector/internal/fetch"
	"footstats-collector/internal/flatten"
	"footstats-collector/internal/logging"
	"footstats-collector/internal/metrics"
	"footstats-collector/internal/timeutil"
)

// Config controls how the scraper reaches SoFIFA.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Bypass    bool
	// PageDelay precedes every request after the first.
	PageDelay time.Duration
	// VersionLimit keeps only the latest updates.
	VersionLimit int
	// MaxPages bounds the listing pages read per league and update.
	MaxPages   int
	Policy     fetch.Policy
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
	Sleep      func(context.Context, time.Duration) error
}

// Client reads SoFIFA pages through the shared retrying fetcher.
type Client struct {
	fetch        *fetch.Client
	pageDelay    time.Duration
	versionLimit int
	maxPages     int
	sleep        func(context.Context, time.Duration) error
	logger       *slog.Logger

	mu       sync.Mutex
	versions []Version
}

// NewClient constructs a scraper with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = fetch.BrowserHTTPClient(timeout, cfg.Bypass)
	}
	pageDelay := cfg.PageDelay
	if pageDelay <= 0 {
		pageDelay = defaultPageDelay
	}
	limit := cfg.VersionLimit
	if limit <= 0 {
		limit = defaultVersionLimit
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = timeutil.Sleep
	}
	return &Client{
		pageDelay:    pageDelay,
		versionLimit: limit,
		maxPages:     maxPages,
		sleep:        sleep,
		logger:       cfg.Logger,
		fetch: fetch.NewClient(fetch.Config{
			Name:       ProviderName,
			BaseURL:    baseURL,
			UserAgent:  userAgent,
			Timeout:    timeout,
			Policy:     cfg.Policy,
			HTTPClient: hc,
			Logger:     cfg.Logger,
			Metrics:    cfg.Metrics,
			Sleep:      cfg.Sleep,
		}),
	}
}

// Source adapts the player listing to the collector.
func (c *Client) Source() collector.Source {
	return collector.SourceFunc(c.Collect)
}

// Collect reads every player listed for the target's leagues in each
// retained update of the edition named by target.Year.
func (c *Client) Collect(ctx context.Context, target collector.Target) (collector.Batch, error) {
	if c == nil || c.fetch == nil {
		return collector.Batch{}, fmt.Errorf("%s client not configured", ProviderName)
	}
	leagues, err := LookupLeagues(target.Entity)
	if err != nil {
		return collector.Batch{}, err
	}
	all, err := c.Versions(ctx)
	if err != nil {
		return collector.Batch{}, fmt.Errorf("%s versions: %w", ProviderName, err)
	}
	versions := versionsOf(all, target.Year)
	if len(versions) == 0 {
		return collector.Batch{
			Message: fmt.Sprintf("no updates of edition %d among the latest %d", target.Year, c.versionLimit),
		}, nil
	}

	var out []flatten.Record
	for _, v := range versions {
		for _, l := range leagues {
			rows, err := c.listPlayers(ctx, l, v)
			if err != nil {
				return collector.Batch{}, fmt.Errorf("%s players %s/%s: %w", ProviderName, l.Name, v.ID, err)
			}
			out = append(out, rows...)
		}
	}
	return collector.Batch{Records: out}, nil
}

// listPlayers pages through one league listing until a short page.
func (c *Client) listPlayers(ctx context.Context, l League, v Version) ([]flatten.Record, error) {
	var out []flatten.Record
	for page := 0; page < c.maxPages; page++ {
		if err := c.sleep(ctx, c.pageDelay); err != nil {
			return nil, err
		}
		body, err := c.fetch.Get(ctx, fetch.Request{
			Path: "/players",
			Query: url.Values{
				"type":   {"all"},
				"lg[]":   {l.ID},
				"r":      {v.ID},
				"set":    {"true"},
				"offset": {strconv.Itoa(page * pageSize)},
			},
		})
		if err != nil {
			return nil, err
		}
		rows, err := parsePlayers(body)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			row.Set("league", l.Name)
			row.Set("version_id", v.ID)
			row.Set("update", v.Update.Format("2006-01-02"))
			out = append(out, row)
		}
		logging.Debug(c.logger, "sofifa page",
			slog.String("league", l.Name),
			slog.String("version", v.ID),
			slog.Int("page", page+1),
			slog.Int(logging.FieldCount, len(rows)),
		)
		if len(rows) < pageSize {
			return out, nil
		}
	}
	logging.Warn(c.logger, "sofifa page limit reached",
		slog.String("league", l.Name),
		slog.String("version", v.ID),
		slog.Int("pages", c.maxPages),
	)
	return out, nil
}
