package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePurger struct {
	cutoffs []time.Time
	err     error
}

func (f *fakePurger) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func TestPurgeOTPSessions_UsesRetentionCutoff(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &fakePurger{}
	j := NewJobs(p, nil)
	j.now = func() time.Time { return now }

	j.PurgeOTPSessions()

	if len(p.cutoffs) != 1 {
		t.Fatalf("expected one purge, got %d", len(p.cutoffs))
	}
	if want := now.Add(-PurgeRetention); !p.cutoffs[0].Equal(want) {
		t.Fatalf("cutoff = %s, want %s", p.cutoffs[0], want)
	}
}

func TestPurgeOTPSessions_SurvivesStoreError(t *testing.T) {
	p := &fakePurger{err: errors.New("store down")}
	NewJobs(p, nil).PurgeOTPSessions()

	if len(p.cutoffs) != 1 {
		t.Fatalf("expected purge attempt, got %d", len(p.cutoffs))
	}
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(NewJobs(&fakePurger{}, nil), nil)
	if err := s.Start("every now and then"); err == nil {
		t.Fatalf("expected error for malformed schedule")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(NewJobs(&fakePurger{}, nil), nil)
	if err := s.Start("@every 1h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatalf("scheduler did not stop")
	}
}
