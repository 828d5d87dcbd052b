package footballdata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"footstats-collector/internal/collector"
	"footstats-collector/internal/fetch"
	"footstats-collector/internal/flatten"
	"footstats-collector/internal/jsondoc"
	"footstats-collector/internal/metrics"
)

// Config controls how the football-data.org client reaches the upstream API.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Policy     fetch.Policy
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
	Sleep      func(context.Context, time.Duration) error
}

// Client fetches competition resources and flattens them into records.
type Client struct {
	fetch *fetch.Client
}

// NewClient constructs a football-data.org client with the provided configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		fetch: fetch.NewClient(fetch.Config{
			Name:       ProviderName,
			BaseURL:    baseURL,
			AuthHeader: authHeader,
			Token:      cfg.Token,
			Timeout:    timeout,
			Policy:     cfg.Policy,
			HTTPClient: cfg.HTTPClient,
			Logger:     cfg.Logger,
			Metrics:    cfg.Metrics,
			Sleep:      cfg.Sleep,
		}),
	}
}

// Source binds an endpoint to the client so the collector can drive it.
func (c *Client) Source(ep Endpoint) collector.Source {
	return collector.SourceFunc(func(ctx context.Context, target collector.Target) (collector.Batch, error) {
		return c.Collect(ctx, ep, target)
	})
}

// Collect fetches one (competition, season) resource and flattens it with
// the endpoint schema. An empty batch carries the upstream message, if any.
func (c *Client) Collect(ctx context.Context, ep Endpoint, target collector.Target) (collector.Batch, error) {
	if c == nil || c.fetch == nil {
		return collector.Batch{}, fmt.Errorf("%s client not configured", ProviderName)
	}
	doc, err := c.fetch.Fetch(ctx, ep.request(target))
	if err != nil {
		return collector.Batch{}, fmt.Errorf("%s %s %s/%s: %w", ProviderName, ep.Name, target.Entity, target.Season, err)
	}

	batch := collector.Batch{Records: ep.Schema.Flatten(doc, target.Vars())}
	if len(batch.Records) == 0 {
		if msg, ok := jsondoc.Lookup(doc, "message"); ok {
			batch.Message = jsondoc.String(msg)
		}
	}
	return batch, nil
}

// Endpoint is one competition-scoped resource of the API.
type Endpoint struct {
	Name string
	Kind string
	// Resource is the path segment after /competitions/{code}/.
	Resource string
	Query    func(target collector.Target) url.Values
	Headers  map[string]string
	Schema   flatten.Schema
}

func (ep Endpoint) request(target collector.Target) fetch.Request {
	req := fetch.Request{
		Path:    competitionPath(target.Entity, ep.Resource),
		Headers: ep.Headers,
	}
	if ep.Query != nil {
		req.Query = ep.Query(target)
	}
	return req
}

func competitionPath(code, resource string) string {
	path := "/competitions/" + url.PathEscape(strings.TrimSpace(code))
	if resource != "" {
		path += "/" + resource
	}
	return path
}
