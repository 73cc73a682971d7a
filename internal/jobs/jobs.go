// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"log/slog"
	"time"
)

// PurgeRetention — сколько хранятся погашенные и истёкшие OTP-сессии.
const PurgeRetention = time.Hour

// OTPPurger deletes sessions consumed or expired before cutoff.
type OTPPurger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

type Jobs struct {
	otp     OTPPurger
	log     *slog.Logger
	now     func() time.Time
	timeout time.Duration
}

func NewJobs(otp OTPPurger, log *slog.Logger) *Jobs {
	if log == nil {
		log = slog.Default()
	}
	return &Jobs{otp: otp, log: log, now: time.Now, timeout: 30 * time.Second}
}

// PurgeOTPSessions removes sessions that stopped being usable more than PurgeRetention ago.
func (j *Jobs) PurgeOTPSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cutoff := j.now().UTC().Add(-PurgeRetention)
	n, err := j.otp.Purge(ctx, cutoff)
	if err != nil {
		j.log.Error("otp purge failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		j.log.Info("otp sessions purged", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	}
}
