package fetch

import (
	"errors"
	"fmt"
	"time"
)

const maxErrorBody = 200

// StatusError is returned for non-success HTTP statuses other than 429.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// RateLimitError captures 429 responses from an upstream.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// TimeoutError marks a request that ran past the client timeout.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("request to %s timed out: %v", e.URL, e.Err) }
func (e *TimeoutError) Unwrap() error { return e.Err }

// TransportError wraps connection level failures.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when a success response is not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsPermanent reports whether err should never be retried under p.
func IsPermanent(p Policy, err error) bool {
	return p.withDefaults().Classify(err) == Abort
}

func truncate(body string) string {
	runes := []rune(body)
	if len(runes) <= maxErrorBody {
		return body
	}
	return string(runes[:maxErrorBody])
}
