package testutil

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
}

func TestSleeperRecordsWaits(t *testing.T) {
	var s Sleeper
	_ = s.Sleep(context.Background(), time.Second)
	_ = s.Sleep(context.Background(), 2*time.Second)
	waits := s.Waits()
	if len(waits) != 2 || waits[1] != 2*time.Second {
		t.Fatalf("unexpected waits %v", waits)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Sleep(ctx, time.Second); err == nil {
		t.Fatal("expected canceled context error")
	}
}

func TestClientFuncServesResponses(t *testing.T) {
	client := ClientFunc(func(r *http.Request) (*http.Response, error) {
		return HTMLResponse(http.StatusTeapot, "<p>hi</p>"), nil
	})
	resp, err := client.Get("http://example.test/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusTeapot || string(body) != "<p>hi</p>" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}
}

func TestBufferLoggerCaptures(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello")
	if buf.Len() == 0 {
		t.Fatal("expected buffered output")
	}
}
