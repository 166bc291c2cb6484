package services

import (
	"testing"
	"time"
)

func TestDateAtLocationNormalizesToLocationMidnight(t *testing.T) {
	location, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)
	got := DateAtLocation(raw, location)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("expected midnight, got %s", got.Format(time.RFC3339))
	}
	if got.Day() != 2 {
		t.Fatalf("expected local calendar day 2, got %d", got.Day())
	}
}

func TestDateAtLocationDefaultsToUTC(t *testing.T) {
	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)
	got := DateAtLocation(raw, nil)
	if got.Location() != time.UTC || got.Day() != 1 {
		t.Fatalf("expected UTC midnight of Feb 1, got %s", got.Format(time.RFC3339))
	}
}

func TestWeekdayAt(t *testing.T) {
	// 2026-03-11 is a Wednesday in UTC and already Thursday in UTC+3.
	instant := time.Date(2026, 3, 11, 22, 0, 0, 0, time.UTC)
	if got := WeekdayAt(instant, time.UTC); got != time.Wednesday {
		t.Fatalf("expected Wednesday, got %s", got)
	}
	if got := WeekdayAt(instant, time.FixedZone("UTC+3", 3*60*60)); got != time.Thursday {
		t.Fatalf("expected Thursday, got %s", got)
	}
}
