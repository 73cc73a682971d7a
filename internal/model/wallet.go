package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

type TransactionType string

const (
	TransactionCredit              TransactionType = "credit"
	TransactionDebit               TransactionType = "debit"
	TransactionRefund              TransactionType = "refund"
	TransactionWithdrawal          TransactionType = "withdrawal"
	TransactionCommissionDeduction TransactionType = "commission_deduction"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionCredit, TransactionDebit, TransactionRefund,
		TransactionWithdrawal, TransactionCommissionDeduction:
		return true
	}
	return false
}

// IsDebit reports whether t takes money out of the wallet.
func (t TransactionType) IsDebit() bool {
	return t == TransactionDebit || t == TransactionWithdrawal || t == TransactionCommissionDeduction
}

// Signed returns amount with the sign t applies to a balance.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t.IsDebit() {
		return amount.Neg()
	}
	return amount
}

// wallets — один кошелёк на пользователя.
type Wallet struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID uint64 `gorm:"not null;uniqueIndex"`

	Balance        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	// Заработок за вычетом комиссии платформы: credit минус commission_deduction.
	TotalEarnings  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalWithdrawn decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalRefunded  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// wallet_transactions — неизменяемый журнал операций.
type WalletTransaction struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	WalletID uint64 `gorm:"not null;index"`
	UserID   uint64 `gorm:"not null;index"`

	Type        TransactionType `gorm:"type:varchar(32);not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"type:text"`

	BookingID *uint64 `gorm:"index"`
	PaymentID *uint64

	BalanceBefore decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"not null;index"`
}

// Validate checks the entry's domain and its before/after arithmetic.
func (t *WalletTransaction) Validate() error {
	if !t.Type.Valid() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "unknown transaction type %q", t.Type)
	}
	if !t.Amount.IsPositive() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "transaction amount must be positive")
	}
	if !t.BalanceBefore.Add(t.Type.Signed(t.Amount)).Equal(t.BalanceAfter) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "balance_after %s != %s %s %s", t.BalanceAfter, t.BalanceBefore, t.Type, t.Amount)
	}
	if t.BalanceAfter.IsNegative() {
		return apperr.Wrap(apperr.ErrInsufficientFunds, "balance would become %s", t.BalanceAfter)
	}
	return nil
}

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalApproved   WithdrawalStatus = "approved"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalRejected   WithdrawalStatus = "rejected"
)

// withdrawal_requests
type WithdrawalRequest struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	MaidID        uint64 `gorm:"not null;index"`
	WalletID      uint64 `gorm:"not null"`
	TransactionID uint64 `gorm:"not null"`

	Amount decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Status WithdrawalStatus `gorm:"type:varchar(32);not null;default:'pending';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
