package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type MaidRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Maid, error)
	GetByUserID(ctx context.Context, userID uint64) (*model.Maid, error)
	// Профиль исполнителя создаётся при первом назначении роли maid.
	EnsureByUserID(ctx context.Context, userID uint64) (*model.Maid, error)
	Update(ctx context.Context, maid *model.Maid) error
	IncrementTotalJobs(ctx context.Context, id uint64) error
}

type GormMaidRepository struct {
	db *gorm.DB
}

func NewGormMaidRepository(db *gorm.DB) *GormMaidRepository {
	return &GormMaidRepository{db: db}
}

func (r *GormMaidRepository) GetByID(ctx context.Context, id uint64) (*model.Maid, error) {
	var m model.Maid
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMaidRepository) GetByUserID(ctx context.Context, userID uint64) (*model.Maid, error) {
	var m model.Maid
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMaidRepository) EnsureByUserID(ctx context.Context, userID uint64) (*model.Maid, error) {
	m := model.Maid{
		UserID:             userID,
		IsAvailable:        true,
		VerificationStatus: model.VerificationPending,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&m).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

// Update сохраняет редактируемые поля профиля, включая нулевые значения.
func (r *GormMaidRepository) Update(ctx context.Context, maid *model.Maid) error {
	return r.db.WithContext(ctx).
		Model(&model.Maid{}).
		Where("id = ?", maid.ID).
		Select("bio", "experience_years", "is_available", "available_from", "available_to", "verification_status").
		Updates(maid).Error
}

func (r *GormMaidRepository) IncrementTotalJobs(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.Maid{}).
		Where("id = ?", id).
		UpdateColumn("total_jobs", gorm.Expr("total_jobs + 1")).Error
}
