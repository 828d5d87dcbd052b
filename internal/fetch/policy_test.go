package fetch

import (
	"errors"
	"testing"
	"time"
)

func TestPolicyClassify(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		name string
		err  error
		want Action
	}{
		{"rate limit", &RateLimitError{StatusCode: 429}, RetryLinear},
		{"forbidden", &StatusError{StatusCode: 403}, Abort},
		{"not found", &StatusError{StatusCode: 404}, Abort},
		{"server error", &StatusError{StatusCode: 500}, RetryFixed},
		{"bad request", &StatusError{StatusCode: 400}, RetryFixed},
		{"timeout", &TimeoutError{Err: errors.New("deadline")}, RetryFixed},
		{"transport", &TransportError{Err: errors.New("refused")}, Abort},
		{"decode", &DecodeError{Err: errors.New("bad json")}, Abort},
	}
	for _, tc := range cases {
		if got := p.Classify(tc.err); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestPolicyDelays(t *testing.T) {
	p := Policy{BaseDelay: 2 * time.Second}.withDefaults()
	if got := p.Delay(RetryLinear, 0); got != 4*time.Second {
		t.Fatalf("expected 4s, got %s", got)
	}
	if got := p.Delay(RetryLinear, 1); got != 6*time.Second {
		t.Fatalf("expected 6s, got %s", got)
	}
	if got := p.Delay(RetryFixed, 5); got != 2*time.Second {
		t.Fatalf("expected 2s, got %s", got)
	}
	if p.MaxAttempts != 3 {
		t.Fatalf("expected default attempts, got %d", p.MaxAttempts)
	}
}

func TestPolicyCustomTable(t *testing.T) {
	p := Policy{Statuses: map[int]Action{503: RetryLinear}, OtherStatus: Abort}.withDefaults()
	if _, retry := p.Backoff(&StatusError{StatusCode: 500}, 0); retry {
		t.Fatal("expected 500 to abort under custom table")
	}
	if d, retry := p.Backoff(&StatusError{StatusCode: 503}, 0); !retry || d != 13*time.Second {
		t.Fatalf("expected linear retry of 13s, got %s %v", d, retry)
	}
	if !IsPermanent(DefaultPolicy(), &StatusError{StatusCode: 404}) {
		t.Fatal("expected 404 to be permanent")
	}
}
