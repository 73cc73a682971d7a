package model

import "time"

const (
	DefaultOTPMaxAttempts = 5
	DefaultOTPTTL         = 10 * time.Minute
)

// otp_sessions — хранится только соль и хеш кода.
type OtpSession struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement"`
	Phone string `gorm:"type:varchar(20);not null;index"`

	CodeHash string `gorm:"type:varchar(64);not null"`
	Salt     string `gorm:"type:varchar(64);not null"`

	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:5"`

	ExpiresAt time.Time `gorm:"not null;index"`
	// Выставляется при успешной проверке или при выпуске нового кода.
	ConsumedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
}

// Exhausted reports whether no further verification attempts are allowed.
func (s *OtpSession) Exhausted() bool {
	return s.Attempts >= s.MaxAttempts
}

// LiveAt reports whether the session may still be verified at t.
func (s *OtpSession) LiveAt(t time.Time) bool {
	return s.ConsumedAt == nil && s.ExpiresAt.After(t)
}
