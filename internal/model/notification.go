package model

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationBookingConfirmed  NotificationType = "booking_confirmed"
	NotificationBookingCancelled  NotificationType = "booking_cancelled"
	NotificationJobAlert          NotificationType = "job_alert"
	NotificationJobAccepted       NotificationType = "job_accepted"
	NotificationJobCompleted      NotificationType = "job_completed"
	NotificationPaymentReceived   NotificationType = "payment_received"
	NotificationPaymentFailed     NotificationType = "payment_failed"
	NotificationRatingReceived    NotificationType = "rating_received"
	NotificationSystemAlert       NotificationType = "system_alert"
	NotificationAdminNotification NotificationType = "admin_notification"
)

// notifications
type Notification struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID uint64 `gorm:"not null;index"`

	Type    NotificationType `gorm:"type:varchar(32);not null;index"`
	Title   string           `gorm:"type:varchar(255);not null"`
	Message string           `gorm:"type:text;not null"`
	Data    datatypes.JSON

	IsRead bool `gorm:"not null;default:false;index"`
	ReadAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
}
