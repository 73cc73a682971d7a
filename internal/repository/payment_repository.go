package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	// Последний платёж по бронированию.
	LatestByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error)
	UpdateStatus(ctx context.Context, id uint64, from []model.PaymentStatus, to model.PaymentStatus) (bool, error)
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormPaymentRepository) LatestByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Order("id DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPaymentRepository) UpdateStatus(
	ctx context.Context,
	id uint64,
	from []model.PaymentStatus,
	to model.PaymentStatus,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
