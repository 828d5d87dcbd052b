package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

const defaultHTTPTimeout = 30 * time.Second

func resolveHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if client == nil {
		return &http.Client{Timeout: timeout}
	}
	cp := *client
	if cp.Timeout <= 0 {
		cp.Timeout = timeout
	}
	return &cp
}

// BrowserHTTPClient returns an http.Client for scraped HTML sites, optionally
// behind the CloudFlare bypass round tripper.
func BrowserHTTPClient(timeout time.Duration, bypass bool) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	var transport http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if bypass {
		transport = cloudflarebp.AddCloudFlareByPass(transport)
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

func normalizeBaseURL(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// retryAfter reads Retry-After, falling back to football-data's counter reset header.
func retryAfter(h http.Header) time.Duration {
	for _, key := range []string{"Retry-After", "X-RequestCounter-Reset"} {
		raw := strings.TrimSpace(h.Get(key))
		if raw == "" {
			continue
		}
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

// restyLogger routes resty's internal messages to slog at debug level.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log(format, v...) }

func (l restyLogger) log(format string, v ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}
