package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodStripe   PaymentMethod = "stripe"
	PaymentMethodWallet   PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodRazorpay || m == PaymentMethodStripe || m == PaymentMethodWallet
}

// payments — запись о платеже; шлюз не интегрирован, GatewayRef генерируется локально.
type Payment struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement"`
	BookingID  uint64  `gorm:"not null;index"`
	CustomerID uint64  `gorm:"not null;index"`
	MaidID     *uint64 `gorm:"index"`

	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Currency string          `gorm:"type:varchar(3);not null;default:'INR'"`

	Method     PaymentMethod `gorm:"type:varchar(16);not null"`
	GatewayRef string        `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status     PaymentStatus `gorm:"type:varchar(32);not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
