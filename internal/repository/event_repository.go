package repository

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type EventRepository interface {
	// Записать событие аудита; details сериализуется в JSON.
	Record(ctx context.Context, eventType model.EventType, userID, bookingID *uint64, details any) error
	ListByBooking(ctx context.Context, bookingID uint64) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Record(
	ctx context.Context,
	eventType model.EventType,
	userID, bookingID *uint64,
	details any,
) error {
	e := model.Event{
		EventType: eventType,
		UserID:    userID,
		BookingID: bookingID,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return err
		}
		e.Details = datatypes.JSON(raw)
	}
	return r.db.WithContext(ctx).Create(&e).Error
}

func (r *GormEventRepository) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
