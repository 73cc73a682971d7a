package model

import (
	"time"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

// ratings — одна оценка на бронирование.
type Rating struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	BookingID  uint64 `gorm:"not null;uniqueIndex"`
	MaidID     uint64 `gorm:"not null;index"`
	CustomerID uint64 `gorm:"not null;index"`

	Score  int    `gorm:"not null"`
	Review string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
}

func (r *Rating) Validate() error {
	if r.Score < 1 || r.Score > 5 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "rating must be within [1,5], got %d", r.Score)
	}
	return nil
}
