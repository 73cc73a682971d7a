// Package ledger keeps the wallet transaction log.
//
// Every entry is written together with the wallet balance it produces, in
// one store transaction, with the wallet row locked. For each wallet the
// entries ordered by creation form a running total equal to its balance.
package ledger

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/metrics"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/pagination"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

// Entry — запрос на запись в журнал.
type Entry struct {
	WalletID    uint64
	Type        model.TransactionType
	Amount      decimal.Decimal
	Description string
	BookingID   *uint64
	PaymentID   *uint64
}

type Ledger struct {
	db  *gorm.DB
	log *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{db: db, log: log}
}

// Record writes e in its own transaction.
func (l *Ledger) Record(ctx context.Context, e Entry) (*model.WalletTransaction, error) {
	var out *model.WalletTransaction
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = l.RecordIn(ctx, tx, e)
		return err
	})
	if err != nil {
		return nil, apperr.FromStore(err, "record transaction")
	}
	return out, nil
}

// RecordIn writes e inside the caller's transaction tx. On error nothing
// has been written by this call and the caller is expected to roll back.
func (l *Ledger) RecordIn(ctx context.Context, tx *gorm.DB, e Entry) (*model.WalletTransaction, error) {
	t, err := l.recordIn(ctx, tx, e)
	metrics.LedgerTransactions.WithLabelValues(string(e.Type), outcome(err)).Inc()
	return t, err
}

func (l *Ledger) recordIn(ctx context.Context, tx *gorm.DB, e Entry) (*model.WalletTransaction, error) {
	if !e.Type.Valid() {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "unknown transaction type %q", e.Type)
	}
	amount := e.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "transaction amount must be positive, got %s", e.Amount)
	}

	repo := repository.NewGormWalletRepository(tx)

	w, err := repo.GetForUpdate(ctx, e.WalletID)
	if err != nil {
		return nil, apperr.FromStore(err, "wallet")
	}
	read := *w

	before := w.Balance
	after := before.Add(e.Type.Signed(amount))
	if after.IsNegative() {
		return nil, apperr.Wrap(apperr.ErrInsufficientFunds, "wallet %d balance %s cannot cover %s %s", w.ID, before, e.Type, amount)
	}

	w.Balance = after
	switch e.Type {
	case model.TransactionCredit:
		w.TotalEarnings = w.TotalEarnings.Add(amount)
	case model.TransactionCommissionDeduction:
		w.TotalEarnings = w.TotalEarnings.Sub(amount)
	case model.TransactionWithdrawal:
		w.TotalWithdrawn = w.TotalWithdrawn.Add(amount)
	case model.TransactionRefund:
		w.TotalRefunded = w.TotalRefunded.Add(amount)
	}

	t := model.WalletTransaction{
		WalletID:      w.ID,
		UserID:        w.UserID,
		Type:          e.Type,
		Amount:        amount,
		Description:   e.Description,
		BookingID:     e.BookingID,
		PaymentID:     e.PaymentID,
		BalanceBefore: before,
		BalanceAfter:  after,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	ok, err := repo.SaveBalance(ctx, w, read)
	if err != nil {
		return nil, apperr.FromStore(err, "save wallet balance")
	}
	if !ok {
		return nil, apperr.Wrap(apperr.ErrConflict, "wallet %d changed concurrently", w.ID)
	}
	if err := repo.AppendTransaction(ctx, &t); err != nil {
		return nil, apperr.FromStore(err, "append transaction")
	}

	l.log.DebugContext(ctx, "ledger entry",
		slog.Uint64("wallet_id", w.ID),
		slog.String("type", string(t.Type)),
		slog.String("amount", amount.String()),
		slog.String("balance_after", after.String()),
	)
	return &t, nil
}

// EnsureWallet returns the wallet of userID, creating an empty one if needed.
func (l *Ledger) EnsureWallet(ctx context.Context, userID uint64) (*model.Wallet, error) {
	return l.EnsureWalletIn(ctx, l.db, userID)
}

func (l *Ledger) EnsureWalletIn(ctx context.Context, tx *gorm.DB, userID uint64) (*model.Wallet, error) {
	w, err := repository.NewGormWalletRepository(tx).Ensure(ctx, userID)
	if err != nil {
		return nil, apperr.FromStore(err, "ensure wallet")
	}
	return w, nil
}

func (l *Ledger) WalletOf(ctx context.Context, userID uint64) (*model.Wallet, error) {
	w, err := repository.NewGormWalletRepository(l.db).GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.FromStore(err, "wallet")
	}
	return w, nil
}

// History returns a page of the wallet log, newest first.
func (l *Ledger) History(ctx context.Context, walletID uint64, req pagination.Request) (pagination.Page[model.WalletTransaction], error) {
	limit, offset := req.Bounds()
	txs, total, err := repository.NewGormWalletRepository(l.db).ListTransactions(ctx, walletID, limit, offset)
	if err != nil {
		return pagination.Page[model.WalletTransaction]{}, apperr.FromStore(err, "wallet transactions")
	}
	return pagination.New(txs, req, total), nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.Reason(err)
}
