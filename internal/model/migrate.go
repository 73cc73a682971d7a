package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей маркетплейса.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Maid{},
		&Service{},
		&CommissionRule{},
		&Booking{},
		&Payment{},
		&Wallet{},
		&WalletTransaction{},
		&WithdrawalRequest{},
		&OtpSession{},
		&Notification{},
		&Rating{},
		&Event{},
	)
}
