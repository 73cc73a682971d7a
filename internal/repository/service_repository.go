package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type ServiceRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Service, error)
	Create(ctx context.Context, service *model.Service) error
	// Обновить описательные поля и цену; флаг активности меняет SetActive.
	Update(ctx context.Context, service *model.Service) error
	SetActive(ctx context.Context, id uint64, active bool) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Service, int64, error)
	// Правило комиссии, действующее для услуги в момент at.
	ActiveCommissionRule(ctx context.Context, serviceID uint64, at time.Time) (*model.CommissionRule, error)
	GetCommissionRule(ctx context.Context, id uint64) (*model.CommissionRule, error)
	ListCommissionRules(ctx context.Context, serviceID uint64) ([]model.CommissionRule, error)
	CreateCommissionRule(ctx context.Context, rule *model.CommissionRule) error
	SetCommissionRuleActive(ctx context.Context, id uint64, active bool) error
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) GetByID(ctx context.Context, id uint64) (*model.Service, error) {
	var s model.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormServiceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *GormServiceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).
		Model(&model.Service{}).
		Where("id = ?", service.ID).
		Updates(map[string]any{
			"name":           service.Name,
			"description":    service.Description,
			"base_price":     service.BasePrice,
			"commission_pct": service.CommissionPct,
		}).Error
}

// SetActive пишет флаг явно: false не попадает в INSERT из-за default:true.
func (r *GormServiceRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Service{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *GormServiceRepository) List(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Service, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Service{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var services []model.Service
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *GormServiceRepository) ActiveCommissionRule(
	ctx context.Context,
	serviceID uint64,
	at time.Time,
) (*model.CommissionRule, error) {
	var rule model.CommissionRule
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND is_active = ?", serviceID, true).
		Where("effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to >= ?", at).
		Order("effective_from DESC").
		Order("id DESC").
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *GormServiceRepository) CreateCommissionRule(ctx context.Context, rule *model.CommissionRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *GormServiceRepository) GetCommissionRule(ctx context.Context, id uint64) (*model.CommissionRule, error) {
	var rule model.CommissionRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *GormServiceRepository) ListCommissionRules(ctx context.Context, serviceID uint64) ([]model.CommissionRule, error) {
	var rules []model.CommissionRule
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("effective_from DESC").
		Order("id DESC").
		Find(&rules).Error
	return rules, err
}

func (r *GormServiceRepository) SetCommissionRuleActive(ctx context.Context, id uint64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.CommissionRule{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
