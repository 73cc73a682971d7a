package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type OtpRepository interface {
	Create(ctx context.Context, s *model.OtpSession) error
	GetByID(ctx context.Context, id uint64) (*model.OtpSession, error)
	// Погасить все действующие сессии номера (при выпуске нового кода).
	ConsumeOutstanding(ctx context.Context, phone string, at time.Time) error
	// Последняя непогашенная и неистёкшая сессия номера.
	LatestLive(ctx context.Context, phone string, at time.Time) (*model.OtpSession, error)
	// +1 к счётчику попыток, если сессия ещё жива и лимит не исчерпан.
	IncrementAttempts(ctx context.Context, id uint64) (bool, error)
	// Погасить сессию, если её ещё никто не погасил.
	Consume(ctx context.Context, id uint64, at time.Time) (bool, error)
	// Удалить сессии, погашенные или истёкшие раньше before.
	PurgeStale(ctx context.Context, before time.Time) (int64, error)
}

type GormOtpRepository struct {
	db *gorm.DB
}

func NewGormOtpRepository(db *gorm.DB) *GormOtpRepository {
	return &GormOtpRepository{db: db}
}

func (r *GormOtpRepository) Create(ctx context.Context, s *model.OtpSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormOtpRepository) GetByID(ctx context.Context, id uint64) (*model.OtpSession, error) {
	var s model.OtpSession
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormOtpRepository) ConsumeOutstanding(ctx context.Context, phone string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.OtpSession{}).
		Where("phone = ? AND consumed_at IS NULL AND expires_at > ?", phone, at).
		Update("consumed_at", at).Error
}

func (r *GormOtpRepository) LatestLive(ctx context.Context, phone string, at time.Time) (*model.OtpSession, error) {
	var s model.OtpSession
	err := r.db.WithContext(ctx).
		Where("phone = ? AND consumed_at IS NULL AND expires_at > ?", phone, at).
		Order("created_at DESC").
		Order("id DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormOtpRepository) IncrementAttempts(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OtpSession{}).
		Where("id = ? AND consumed_at IS NULL AND attempts < max_attempts", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormOtpRepository) Consume(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OtpSession{}).
		Where("id = ? AND consumed_at IS NULL AND attempts < max_attempts", id).
		Update("consumed_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormOtpRepository) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("consumed_at < ? OR expires_at < ?", before, before).
		Delete(&model.OtpSession{})
	return res.RowsAffected, res.Error
}
