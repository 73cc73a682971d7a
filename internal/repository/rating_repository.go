package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type RatingRepository interface {
	Create(ctx context.Context, r *model.Rating) error
	ListByMaid(ctx context.Context, maidID uint64, limit, offset int) ([]model.Rating, int64, error)
	SummaryByMaid(ctx context.Context, maidID uint64) (RatingSummary, error)
}

// RatingSummary — средняя оценка исполнителя и число оценок.
type RatingSummary struct {
	Average float64
	Count   int64
}

type GormRatingRepository struct {
	db *gorm.DB
}

func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

func (r *GormRatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *GormRatingRepository) ListByMaid(ctx context.Context, maidID uint64, limit, offset int) ([]model.Rating, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Rating{}).Where("maid_id = ?", maidID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var ratings []model.Rating
	if err := q.Order("created_at DESC").Find(&ratings).Error; err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *GormRatingRepository) SummaryByMaid(ctx context.Context, maidID uint64) (RatingSummary, error) {
	var out RatingSummary
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("COUNT(*) AS count, COALESCE(AVG(score), 0) AS average").
		Where("maid_id = ?", maidID).
		Scan(&out).Error
	return out, err
}
