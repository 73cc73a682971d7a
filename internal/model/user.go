package model

import (
	"time"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

// UserRole is the single role a user holds.
type UserRole string

const (
	UserRoleCustomer   UserRole = "customer"
	UserRoleMaid       UserRole = "maid"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCustomer, UserRoleMaid, UserRoleAdmin, UserRoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries admin privileges.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// users
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	// Нормализованный номер: 10 цифр без кода страны.
	Phone string  `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name  string  `gorm:"type:varchar(255)"`
	Email *string `gorm:"type:varchar(320);uniqueIndex"`

	Role        UserRole `gorm:"type:varchar(32);not null;default:'customer';index"`
	LoginMethod string   `gorm:"type:varchar(64)"`
	IsActive    bool     `gorm:"not null;default:true"`

	LastSignedInAt *time.Time
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (u *User) Validate() error {
	if u.Phone == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "user phone is required")
	}
	if !u.Role.Valid() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "unknown role %q", u.Role)
	}
	return nil
}

// Actor — аутентифицированный пользователь, от имени которого выполняется операция.
type Actor struct {
	UserID uint64
	Role   UserRole
}
