package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	// Найти пользователя по телефону или создать клиента; created — был ли создан.
	EnsureCustomer(ctx context.Context, phone string) (user *model.User, created bool, err error)
	MarkSignedIn(ctx context.Context, id uint64, at time.Time) error
	SetRole(ctx context.Context, id uint64, role model.UserRole) error
	SetActive(ctx context.Context, id uint64, active bool) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	n, err := model.NormalizePhone(phone)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var u model.User
	if err := r.db.WithContext(ctx).Where("phone = ?", n).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) EnsureCustomer(ctx context.Context, phone string) (*model.User, bool, error) {
	n, err := model.NormalizePhone(phone)
	if err != nil {
		return nil, false, err
	}

	u := model.User{
		Phone:       n,
		Role:        model.UserRoleCustomer,
		LoginMethod: "otp",
		IsActive:    true,
	}
	// Параллельная регистрация того же номера не должна падать на unique.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "phone"}}, DoNothing: true}).
		Create(&u)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &u, true, nil
	}

	existing, err := r.FindByPhone(ctx, n)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *GormUserRepository) MarkSignedIn(ctx context.Context, id uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_signed_in_at", at).Error
}

func (r *GormUserRepository) SetRole(ctx context.Context, id uint64, role model.UserRole) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormUserRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound — сокращение для проверки gorm.ErrRecordNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
