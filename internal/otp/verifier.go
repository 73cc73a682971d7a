// Package otp issues and verifies one-time passcodes for phone sign-in.
//
// Only a salted SHA-256 digest of each code is stored. A session is live
// until it expires, is consumed by a successful verification, or is
// superseded by a newer code for the same phone.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/metrics"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

const (
	codeMin  = 100000
	codeSpan = 900000
	saltLen  = 16
)

type Verifier struct {
	db          *gorm.DB
	sender      Sender
	log         *slog.Logger
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
	rand        io.Reader
}

type Option func(*Verifier)

func WithTTL(ttl time.Duration) Option {
	return func(v *Verifier) {
		if ttl > 0 {
			v.ttl = ttl
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.maxAttempts = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(v *Verifier) { v.log = log }
}

func NewVerifier(db *gorm.DB, sender Sender, opts ...Option) *Verifier {
	v := &Verifier{
		db:          db,
		sender:      sender,
		log:         slog.Default(),
		ttl:         model.DefaultOTPTTL,
		maxAttempts: model.DefaultOTPMaxAttempts,
		now:         time.Now,
		rand:        rand.Reader,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// TTL is the lifetime of an issued code.
func (v *Verifier) TTL() time.Duration { return v.ttl }

// Issue creates a fresh session for phone, supersedes any outstanding one
// and hands the code to the sender. The code is never returned.
func (v *Verifier) Issue(ctx context.Context, rawPhone string) error {
	phone, err := model.NormalizePhone(rawPhone)
	if err != nil {
		return err
	}

	code, err := v.generateCode()
	if err != nil {
		return err
	}
	salt, err := v.generateSalt()
	if err != nil {
		return err
	}

	now := v.now().UTC()
	session := model.OtpSession{
		Phone:       phone,
		CodeHash:    hashCode(code, salt),
		Salt:        salt,
		Attempts:    0,
		MaxAttempts: v.maxAttempts,
		ExpiresAt:   now.Add(v.ttl),
		CreatedAt:   now,
	}

	err = v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewGormOtpRepository(tx)
		if err := repo.ConsumeOutstanding(ctx, phone, now); err != nil {
			return err
		}
		return repo.Create(ctx, &session)
	})
	if err != nil {
		return apperr.FromStore(err, "issue otp")
	}

	if err := v.sender.SendOTP(ctx, phone, code); err != nil {
		return fmt.Errorf("deliver otp: %w: %w", apperr.ErrUnavailable, err)
	}

	metrics.OTPIssued.Inc()
	v.log.InfoContext(ctx, "otp issued",
		slog.String("phone", model.MaskPhone(phone)),
		slog.Uint64("session_id", session.ID),
	)
	return nil
}

// Verify checks code against the latest live session for phone and, on a
// match, consumes it. It returns the normalized phone.
func (v *Verifier) Verify(ctx context.Context, rawPhone, code string) (string, error) {
	phone, err := v.verify(ctx, rawPhone, code)
	metrics.OTPVerifications.WithLabelValues(verifyResult(err)).Inc()
	return phone, err
}

func (v *Verifier) verify(ctx context.Context, rawPhone, code string) (string, error) {
	phone, err := model.NormalizePhone(rawPhone)
	if err != nil {
		return "", err
	}
	if !validCodeShape(code) {
		return "", apperr.Wrap(apperr.ErrInvalidArgument, "code must be 6 digits")
	}

	now := v.now().UTC()
	repo := repository.NewGormOtpRepository(v.db)

	session, err := repo.LatestLive(ctx, phone, now)
	if err != nil {
		return "", apperr.FromStore(err, "otp session")
	}
	if session.Exhausted() {
		return "", apperr.Wrap(apperr.ErrTooManyAttempts, "otp session %d exhausted", session.ID)
	}

	expected := hashCode(code, session.Salt)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(session.CodeHash)) != 1 {
		ok, err := repo.IncrementAttempts(ctx, session.ID)
		if err != nil {
			return "", apperr.FromStore(err, "otp attempts")
		}
		if !ok {
			return "", v.lostAttempt(ctx, repo, session.ID, now)
		}
		return "", apperr.Wrap(apperr.ErrInvalidCode, "otp mismatch")
	}

	// Параллельная проверка того же кода: выигрывает только одна.
	ok, err := repo.Consume(ctx, session.ID, now)
	if err != nil {
		return "", apperr.FromStore(err, "consume otp")
	}
	if !ok {
		return "", apperr.Wrap(apperr.ErrNotFound, "otp session %d already used", session.ID)
	}

	return phone, nil
}

// lostAttempt explains why a session refused another attempt: either it was
// consumed or superseded in the meantime, or its attempts ran out.
func (v *Verifier) lostAttempt(ctx context.Context, repo *repository.GormOtpRepository, id uint64, now time.Time) error {
	s, err := repo.GetByID(ctx, id)
	switch {
	case repository.IsNotFound(err):
		return apperr.Wrap(apperr.ErrNotFound, "otp session %d is gone", id)
	case err != nil:
		return apperr.FromStore(err, "otp session")
	case !s.LiveAt(now):
		return apperr.Wrap(apperr.ErrNotFound, "otp session %d is no longer live", id)
	}
	return apperr.Wrap(apperr.ErrTooManyAttempts, "otp session %d exhausted", id)
}

// Purge removes sessions consumed or expired before cutoff.
func (v *Verifier) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := repository.NewGormOtpRepository(v.db).PurgeStale(ctx, cutoff)
	if err != nil {
		return 0, apperr.FromStore(err, "purge otp sessions")
	}
	metrics.OTPPurged.Add(float64(n))
	return n, nil
}

func (v *Verifier) generateCode() (string, error) {
	n, err := rand.Int(v.rand, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

func (v *Verifier) generateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := io.ReadFull(v.rand, b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func hashCode(code, salt string) string {
	sum := sha256.Sum256([]byte(code + salt))
	return hex.EncodeToString(sum[:])
}

func validCodeShape(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func verifyResult(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.Reason(err)
}
