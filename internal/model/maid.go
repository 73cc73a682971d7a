package model

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Maid is the worker profile of a user with the maid role.
type Maid struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	UserID uint64 `gorm:"not null;uniqueIndex"`

	Bio             string `gorm:"type:text"`
	ExperienceYears int

	IsAvailable bool `gorm:"not null;default:true;index"`

	// Рабочие часы в формате HH:MM; пустые значения — без ограничений.
	AvailableFrom string `gorm:"type:varchar(5)"`
	AvailableTo   string `gorm:"type:varchar(5)"`

	VerificationStatus VerificationStatus `gorm:"type:varchar(32);not null;default:'pending'"`
	TotalJobs          int                `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
