package timeutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.January || parsed.Day() != 2 {
		t.Fatalf("unexpected parsed date %v", parsed)
	}
}

func TestSleepReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("expected zero sleep to return nil, got %v", err)
	}
}

func TestSeasonRangeEndsAtCurrentYear(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got := SeasonRange{Start: 2022}.Seasons(now)
	want := []Season{{2022, "2022"}, {2023, "2023"}, {2024, "2024"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("seasons mismatch (-want +got):\n%s", diff)
	}
}

func TestSeasonRangeFormats(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	span := SeasonRange{Start: 2016, End: 2017, Format: SeasonSpan}.Seasons(now)
	if span[0].Label != "2016-2017" || span[1].Label != "2017-2018" {
		t.Fatalf("unexpected span labels %+v", span)
	}
	short := SeasonRange{Start: 2099, End: 2099, Format: SeasonShortSpan}.Seasons(now)
	if short[0].Label != "2099-00" {
		t.Fatalf("unexpected short label %+v", short)
	}
	if got := (SeasonRange{Start: 2025, End: 2020}).Seasons(now); got != nil {
		t.Fatalf("expected empty range, got %+v", got)
	}
}
