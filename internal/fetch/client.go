// Package fetch is the retrying HTTP client shared by every upstream.
package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"footstats-collector/internal/jsondoc"
	"footstats-collector/internal/logging"
	"footstats-collector/internal/metrics"
	"footstats-collector/internal/timeutil"
)

// Config controls how a Client reaches one upstream.
type Config struct {
	// Name labels logs and metrics.
	Name    string
	BaseURL string
	// AuthHeader is attached to every request when set.
	AuthHeader string
	Token      string
	UserAgent  string
	Timeout    time.Duration
	Policy     Policy
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
	// Sleep replaces the backoff wait; nil uses a context-aware timer.
	Sleep func(context.Context, time.Duration) error
}

// Request describes a single GET relative to the base URL.
type Request struct {
	Path    string
	Query   url.Values
	Headers map[string]string
}

// Client issues GETs with the configured retry policy.
type Client struct {
	name       string
	baseURL    string
	authHeader string
	token      string
	http       *resty.Client
	policy     Policy
	logger     *slog.Logger
	metrics    *metrics.Recorder
	sleep      func(context.Context, time.Duration) error
	now        func() time.Time
}

// NewClient builds a Client. A zero Policy resolves to DefaultPolicy.
func NewClient(cfg Config) *Client {
	rc := resty.NewWithClient(resolveHTTPClient(cfg.HTTPClient, cfg.Timeout))
	rc.SetBaseURL(normalizeBaseURL(cfg.BaseURL))
	rc.SetLogger(restyLogger{logger: cfg.Logger})
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = timeutil.Sleep
	}
	name := cfg.Name
	if name == "" {
		name = "upstream"
	}

	return &Client{
		name:       name,
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		authHeader: cfg.AuthHeader,
		token:      cfg.Token,
		http:       rc,
		policy:     cfg.Policy.withDefaults(),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		sleep:      sleep,
		now:        time.Now,
	}
}

// Fetch performs Get and decodes the body as an ordered JSON document.
// Any error means the target produced no data.
func (c *Client) Fetch(ctx context.Context, req Request) (jsondoc.Value, error) {
	body, err := c.Get(ctx, req)
	if err != nil {
		return nil, err
	}
	doc, err := jsondoc.Parse(body)
	if err != nil {
		decodeErr := &DecodeError{URL: c.url(req.Path), Err: err}
		logging.Warn(c.log(ctx), "fetch decode failed",
			slog.String(logging.FieldProvider, c.name),
			slog.String(logging.FieldURL, decodeErr.URL),
			"error", err,
		)
		return nil, decodeErr
	}
	return doc, nil
}

// Get runs the retry loop and returns the raw body of the first successful attempt.
func (c *Client) Get(ctx context.Context, req Request) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		body, err := c.attempt(ctx, req, attempt)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		delay, retry := c.policy.Backoff(err, attempt)
		if !retry {
			return nil, err
		}
		if attempt == c.policy.MaxAttempts-1 {
			break
		}

		logging.Warn(c.log(ctx), "fetch backoff",
			slog.String(logging.FieldProvider, c.name),
			slog.Int(logging.FieldAttempt, attempt+1),
			slog.Duration("wait", delay),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	logging.Warn(c.log(ctx), "fetch gave up",
		slog.String(logging.FieldProvider, c.name),
		slog.String(logging.FieldURL, c.url(req.Path)),
		slog.Int("attempts", c.policy.MaxAttempts),
		"error", lastErr,
	)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, req Request, attempt int) ([]byte, error) {
	target := c.url(req.Path)
	logging.Info(c.log(ctx), "fetch attempt",
		slog.String(logging.FieldProvider, c.name),
		slog.String(logging.FieldURL, target),
		slog.String("params", req.Query.Encode()),
		slog.Int(logging.FieldAttempt, attempt+1),
		slog.Int("max_attempts", c.policy.MaxAttempts),
	)

	r := c.http.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if c.authHeader != "" {
		r.SetHeader(c.authHeader, c.token)
	}

	start := c.now()
	resp, err := r.Get(req.Path)
	duration := c.now().Sub(start)

	if err != nil {
		c.metrics.RecordFetchAttempt(c.name, duration, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if isTimeout(err) {
			err = &TimeoutError{URL: target, Err: err}
		} else {
			err = &TransportError{URL: target, Err: err}
		}
		logging.Warn(c.log(ctx), "fetch attempt failed",
			slog.String(logging.FieldProvider, c.name),
			slog.Int(logging.FieldAttempt, attempt+1),
			"error", err,
		)
		return nil, err
	}

	if resp.IsError() {
		body := truncate(string(resp.Body()))
		var statusErr error
		if resp.StatusCode() == http.StatusTooManyRequests {
			wait := retryAfter(resp.Header())
			statusErr = &RateLimitError{
				Provider:   c.name,
				StatusCode: resp.StatusCode(),
				RetryAfter: wait,
				Remaining:  resp.Header().Get("X-Requests-Available-Minute"),
				Message:    body,
			}
			c.metrics.RecordRateLimit(c.name, wait)
		} else {
			statusErr = &StatusError{URL: target, StatusCode: resp.StatusCode(), Body: body}
		}
		c.metrics.RecordFetchAttempt(c.name, duration, statusErr)
		logging.Warn(c.log(ctx), "fetch attempt failed",
			slog.String(logging.FieldProvider, c.name),
			slog.Int(logging.FieldAttempt, attempt+1),
			slog.Int(logging.FieldStatusCode, resp.StatusCode()),
			slog.String("body", body),
		)
		return nil, statusErr
	}

	c.metrics.RecordFetchAttempt(c.name, duration, nil)
	return resp.Body(), nil
}

func (c *Client) url(path string) string {
	if path == "" {
		return c.baseURL
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, c.logger)
}
