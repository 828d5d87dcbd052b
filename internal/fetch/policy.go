package fetch

import (
	"errors"
	"net/http"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 6500 * time.Millisecond
)

// Action tells the retry loop what to do after a failed attempt.
type Action int

const (
	// Abort returns the error immediately.
	Abort Action = iota
	// RetryFixed waits BaseDelay before the next attempt.
	RetryFixed
	// RetryLinear waits BaseDelay*(attempt+2), attempt being 0-based.
	RetryLinear
)

func (a Action) String() string {
	switch a {
	case RetryFixed:
		return "retry_fixed"
	case RetryLinear:
		return "retry_linear"
	default:
		return "abort"
	}
}

// Policy is the status-code policy table shared by every upstream client.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Statuses maps specific HTTP status codes to an action.
	Statuses map[int]Action
	// OtherStatus applies to error statuses missing from Statuses.
	OtherStatus Action
	// Timeout applies to requests that exceeded the client timeout.
	Timeout Action
}

// DefaultPolicy retries rate limits linearly, gives up on 403/404 and
// retries every other failure status or timeout after a fixed delay.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		Statuses: map[int]Action{
			http.StatusTooManyRequests: RetryLinear,
			http.StatusForbidden:       Abort,
			http.StatusNotFound:        Abort,
		},
		OtherStatus: RetryFixed,
		Timeout:     RetryFixed,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Statuses == nil {
		d := DefaultPolicy()
		p.Statuses = d.Statuses
		p.OtherStatus = d.OtherStatus
		p.Timeout = d.Timeout
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultBaseDelay
	}
	return p
}

// Classify maps a failed attempt to its action. Transport and decode
// failures always abort.
func (p Policy) Classify(err error) Action {
	if rl, ok := AsRateLimitError(err); ok {
		return p.statusAction(rl.StatusCode)
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return p.statusAction(statusErr.StatusCode)
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return p.Timeout
	}
	return Abort
}

func (p Policy) statusAction(code int) Action {
	if action, ok := p.Statuses[code]; ok {
		return action
	}
	return p.OtherStatus
}

// Delay returns how long to wait after the given 0-based attempt.
func (p Policy) Delay(action Action, attempt int) time.Duration {
	switch action {
	case RetryLinear:
		return p.BaseDelay * time.Duration(attempt+2)
	case RetryFixed:
		return p.BaseDelay
	default:
		return 0
	}
}

// Backoff combines Classify and Delay.
func (p Policy) Backoff(err error, attempt int) (time.Duration, bool) {
	action := p.Classify(err)
	if action == Abort {
		return 0, false
	}
	return p.Delay(action, attempt), true
}
