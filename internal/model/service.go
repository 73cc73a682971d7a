package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/pricing"
)

// services
type Service struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`

	BasePrice     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CommissionPct decimal.Decimal `gorm:"type:numeric(5,2);not null;default:20"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (s *Service) Validate() error {
	if s.Name == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "service name is required")
	}
	if !s.BasePrice.IsPositive() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "service base price must be positive")
	}
	return nil
}

// commission_rules — процентная схема по услуге с окном действия.
type CommissionRule struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	ServiceID uint64 `gorm:"not null;index"`

	CommissionPct  decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	PlatformFeePct decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	GSTPct         decimal.Decimal `gorm:"column:gst_pct;type:numeric(5,2);not null;default:18"`

	IsActive bool `gorm:"not null;default:true"`

	EffectiveFrom time.Time `gorm:"not null;index"`
	// nil — бессрочное правило.
	EffectiveTo *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Rates converts the rule into the price engine's schedule.
func (r *CommissionRule) Rates() pricing.Rates {
	return pricing.Rates{
		CommissionPct:  r.CommissionPct,
		PlatformFeePct: r.PlatformFeePct,
		GSTPct:         r.GSTPct,
	}
}

// ActiveAt reports whether at falls inside the rule's effective window.
func (r *CommissionRule) ActiveAt(at time.Time) bool {
	if !r.IsActive || r.EffectiveFrom.After(at) {
		return false
	}
	return r.EffectiveTo == nil || !r.EffectiveTo.Before(at)
}

func (r *CommissionRule) Validate() error {
	if r.ServiceID == 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "commission rule service is required")
	}
	if r.EffectiveFrom.IsZero() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "commission rule effective_from is required")
	}
	if r.EffectiveTo != nil && r.EffectiveTo.Before(r.EffectiveFrom) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "commission rule window ends before it starts")
	}
	return r.Rates().Validate()
}
