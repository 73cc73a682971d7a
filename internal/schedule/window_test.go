package schedule

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

func mustTime(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestNewTimeRange_RejectsEmpty(t *testing.T) {
	start := mustTime(t, 2025, 1, 1, 10, 0)

	if _, err := NewTimeRange(start, start); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty range, got %v", err)
	}
	if _, err := NewTimeRange(time.Time{}, start); err == nil {
		t.Fatalf("expected error for zero start, got nil")
	}
}

func TestFromDuration(t *testing.T) {
	tr, err := FromDuration(mustTime(t, 2025, 1, 1, 10, 0), 90)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tr.Duration() != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", tr.Duration())
	}
}

func TestHasOverlap_NoOverlap(t *testing.T) {
	newRange := TimeRange{
		Start: mustTime(t, 2025, 1, 1, 10, 0),
		End:   mustTime(t, 2025, 1, 1, 11, 0),
	}
	existing := []TimeRange{
		{Start: mustTime(t, 2025, 1, 1, 11, 0), End: mustTime(t, 2025, 1, 1, 12, 0)},
	}

	has, conflicts := HasOverlap(newRange, existing, false)
	if has {
		t.Fatalf("expected no overlap, got conflicts: %+v", conflicts)
	}
}

func TestHasOverlap_TouchInclusive(t *testing.T) {
	newRange := TimeRange{
		Start: mustTime(t, 2025, 1, 1, 10, 0),
		End:   mustTime(t, 2025, 1, 1, 11, 0),
	}
	existing := []TimeRange{
		{Start: mustTime(t, 2025, 1, 1, 11, 0), End: mustTime(t, 2025, 1, 1, 12, 0)},
	}

	has, _ := HasOverlap(newRange, existing, true)
	if !has {
		t.Fatalf("expected overlap in inclusive mode")
	}
}

func TestHasOverlap_OverlapFound(t *testing.T) {
	newRange := TimeRange{
		Start: mustTime(t, 2025, 1, 1, 10, 30),
		End:   mustTime(t, 2025, 1, 1, 11, 30),
	}
	existing := []TimeRange{
		{Start: mustTime(t, 2025, 1, 1, 9, 0), End: mustTime(t, 2025, 1, 1, 10, 0)},
		{Start: mustTime(t, 2025, 1, 1, 11, 0), End: mustTime(t, 2025, 1, 1, 12, 0)},
	}

	has, conflicts := HasOverlap(newRange, existing, false)
	if !has {
		t.Fatalf("expected overlap, got none")
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
}

func TestParseDailyHours_Unrestricted(t *testing.T) {
	h, err := ParseDailyHours("", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if h.Restricted() {
		t.Fatalf("expected unrestricted hours")
	}
	tr := TimeRange{Start: mustTime(t, 2025, 1, 1, 23, 0), End: mustTime(t, 2025, 1, 2, 1, 0)}
	if !h.Contains(tr, time.UTC) {
		t.Fatalf("unrestricted hours must contain any window")
	}
}

func TestParseDailyHours_Malformed(t *testing.T) {
	for _, c := range [][2]string{{"9", "18:00"}, {"09:00", ""}, {"18:00", "09:00"}} {
		if _, err := ParseDailyHours(c[0], c[1]); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("ParseDailyHours(%q, %q): expected invalid argument, got %v", c[0], c[1], err)
		}
	}
}

func TestDailyHours_Contains(t *testing.T) {
	h, err := ParseDailyHours("09:00", "18:00")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	inside := TimeRange{Start: mustTime(t, 2025, 1, 1, 9, 0), End: mustTime(t, 2025, 1, 1, 18, 0)}
	if !h.Contains(inside, time.UTC) {
		t.Fatalf("expected %v within %s", inside, h)
	}

	early := TimeRange{Start: mustTime(t, 2025, 1, 1, 8, 30), End: mustTime(t, 2025, 1, 1, 10, 0)}
	if h.Contains(early, time.UTC) {
		t.Fatalf("expected %v outside %s", early, h)
	}

	late := TimeRange{Start: mustTime(t, 2025, 1, 1, 17, 0), End: mustTime(t, 2025, 1, 1, 18, 30)}
	if h.Contains(late, time.UTC) {
		t.Fatalf("expected %v outside %s", late, h)
	}
}

func TestDailyHours_ContainsUsesLocation(t *testing.T) {
	h, err := ParseDailyHours("09:00", "12:00")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	ist := time.FixedZone("IST", 5*3600+1800)

	// 04:00 UTC = 09:30 IST
	tr := TimeRange{Start: mustTime(t, 2025, 1, 1, 4, 0), End: mustTime(t, 2025, 1, 1, 5, 0)}
	if !h.Contains(tr, ist) {
		t.Fatalf("expected window inside hours in IST")
	}
	if h.Contains(tr, time.UTC) {
		t.Fatalf("expected window outside hours in UTC")
	}
}

func TestFormatWindow(t *testing.T) {
	tr := TimeRange{
		Start: mustTime(t, 2025, 1, 1, 10, 0),
		End:   mustTime(t, 2025, 1, 1, 11, 0),
	}

	str := FormatWindow(tr, time.UTC)
	for _, part := range []string{"Wed", "01 Jan 2025", "10:00", "11:00"} {
		if !strings.Contains(str, part) {
			t.Fatalf("unexpected format: %q", str)
		}
	}
}
