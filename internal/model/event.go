package model

import (
	"time"

	"gorm.io/datatypes"
)

// Тип события аудита.
type EventType string

const (
	EventTypeBookingCreated    EventType = "booking_created"
	EventTypeBookingAccepted   EventType = "booking_accepted"
	EventTypeBookingStarted    EventType = "booking_started"
	EventTypeBookingCompleted  EventType = "booking_completed"
	EventTypeBookingCancelled  EventType = "booking_cancelled"
	EventTypeBookingNoShow     EventType = "booking_no_show"
	EventTypeBookingReassigned EventType = "booking_reassigned"
	EventTypePaymentUpdated    EventType = "payment_updated"
	EventTypeWalletWithdrawal  EventType = "wallet_withdrawal"
	EventTypeUserVerified      EventType = "user_verified"
	EventTypeRoleChanged       EventType = "role_changed"
	EventTypeUserStatusChanged EventType = "user_status_changed"

	EventTypeServiceSaved          EventType = "service_saved"
	EventTypeCommissionRuleChanged EventType = "commission_rule_changed"
)

// events — события аудита
type Event struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	UserID    *uint64 `gorm:"index"`
	BookingID *uint64 `gorm:"index"`

	Details datatypes.JSON
}
