package fbref

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"footstats-collector/internal/collector"
	"footstats-collector/internal/fetch"
	"footstats-collector/internal/flatten"
	"footstats-collector/internal/logging"
	"footstats-collector/internal/metrics"
	"footstats-collector/internal/timeutil"
)

// Config controls how the scraper reaches FBref.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Bypass wraps the transport with CloudFlare-friendly TLS and headers.
	Bypass bool
	// PageDelay precedes each extra page of a match-level table.
	PageDelay  time.Duration
	Policy     fetch.Policy
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
	Sleep      func(context.Context, time.Duration) error
}

// Client scrapes FBref stat tables through the shared retrying fetcher.
type Client struct {
	fetch     *fetch.Client
	baseURL   string
	pageDelay time.Duration
	sleep     func(context.Context, time.Duration) error
	logger    *slog.Logger
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
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = timeutil.Sleep
	}
	return &Client{
		baseURL:   baseURL,
		pageDelay: pageDelay,
		sleep:     sleep,
		logger:    cfg.Logger,
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

// Endpoint is one table family scraped per (league, season).
type Endpoint struct {
	Name string
	// Table is the page family; empty means the target variant names it.
	Table Table
	// Stat is the stat type; empty means the target variant names it.
	Stat   string
	Schema flatten.Schema
}

func (ep Endpoint) resolve(target collector.Target) (Table, StatType, error) {
	table, stat := ep.Table, ep.Stat
	if table == "" {
		table = Table(target.Variant)
	}
	if stat == "" {
		stat = target.Variant
	}
	switch table {
	case Schedule, Leagues, Seasons, TeamMatch, PlayerMatch:
		stat = "standard"
	}
	st, err := LookupStatType(stat)
	return table, st, err
}

// Source binds an endpoint to the client so the collector can drive it.
func (c *Client) Source(ep Endpoint) collector.Source {
	return collector.SourceFunc(func(ctx context.Context, target collector.Target) (collector.Batch, error) {
		return c.Collect(ctx, ep, target)
	})
}

// Collect downloads the page for target and shapes its table with the endpoint schema.
func (c *Client) Collect(ctx context.Context, ep Endpoint, target collector.Target) (collector.Batch, error) {
	if c == nil || c.fetch == nil {
		return collector.Batch{}, fmt.Errorf("%s client not configured", ProviderName)
	}
	league, err := LookupLeague(target.Entity)
	if err != nil {
		return collector.Batch{}, err
	}
	table, stat, err := ep.resolve(target)
	if err != nil {
		return collector.Batch{}, err
	}
	pg, err := resolvePage(table, league, target.Season, stat)
	if err != nil {
		return collector.Batch{}, err
	}

	sep := ep.Schema.Separator
	if sep == "" {
		sep = headerSeparator
	}
	rows, err := c.scrape(ctx, pg, sep)
	if err != nil {
		return collector.Batch{}, fmt.Errorf("%s %s %s/%s: %w", ProviderName, table, target.Entity, target.Season, err)
	}
	if pg.expand != nil {
		rows, err = c.scrapeSubpages(ctx, pg.expand(rows), sep)
		if err != nil {
			return collector.Batch{}, fmt.Errorf("%s %s %s/%s: %w", ProviderName, table, target.Entity, target.Season, err)
		}
	}
	return collector.Batch{Records: ep.Schema.Shape(rows, nil, target.Vars())}, nil
}

// scrape downloads one page and returns the rows of its matching tables.
func (c *Client) scrape(ctx context.Context, pg page, sep string) ([]flatten.Record, error) {
	body, err := c.fetch.Get(ctx, fetch.Request{Path: pg.path})
	if err != nil {
		return nil, err
	}
	tables, err := parseTables(body, pg.match, sep, c.baseURL, pg.all)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pg.path, err)
	}
	var rows []flatten.Record
	for _, t := range tables {
		for _, row := range t.rows {
			if pg.keep == nil || pg.keep(row) {
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}

// scrapeSubpages reads every subpage in order, pausing PageDelay before
// each request. Any failed page fails the whole batch.
func (c *Client) scrapeSubpages(ctx context.Context, subs []subpage, sep string) ([]flatten.Record, error) {
	var out []flatten.Record
	for i, sp := range subs {
		if err := c.sleep(ctx, c.pageDelay); err != nil {
			return nil, err
		}
		logging.Info(c.logger, "fbref subpage",
			slog.String(logging.FieldPath, sp.path),
			slog.Int("page", i+1),
			slog.Int("pages", len(subs)),
		)
		body, err := c.fetch.Get(ctx, fetch.Request{Path: sp.path})
		if err != nil {
			return nil, err
		}
		tables, err := parseTables(body, sp.match, sep, c.baseURL, sp.all)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sp.path, err)
		}
		for _, t := range tables {
			for _, row := range t.rows {
				out = append(out, sp.lead(row, t.caption))
			}
		}
	}
	return out, nil
}

// lead returns row with the subpage's meta columns in front.
func (sp subpage) lead(row flatten.Record, caption string) flatten.Record {
	var rec flatten.Record
	for _, m := range sp.meta {
		rec.Set(m[0], m[1])
	}
	if sp.captionColumn != "" {
		rec.Set(sp.captionColumn, teamFromCaption(caption))
	}
	for _, col := range row.Columns() {
		v, _ := row.Get(col)
		rec.Set(col, v)
	}
	return rec
}
