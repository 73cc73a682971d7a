package ledger

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

// Withdraw debits a worker's wallet and files a pending withdrawal request, atomically.
func (l *Ledger) Withdraw(ctx context.Context, userID uint64, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	var req *model.WithdrawalRequest

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maid, err := repository.NewGormMaidRepository(tx).GetByUserID(ctx, userID)
		if err != nil {
			return apperr.FromStore(err, "maid profile")
		}
		w, err := repository.NewGormWalletRepository(tx).GetByUserID(ctx, userID)
		if err != nil {
			return apperr.FromStore(err, "wallet")
		}

		t, err := l.RecordIn(ctx, tx, Entry{
			WalletID:    w.ID,
			Type:        model.TransactionWithdrawal,
			Amount:      amount,
			Description: "Withdrawal request",
		})
		if err != nil {
			return err
		}

		req = &model.WithdrawalRequest{
			MaidID:        maid.ID,
			WalletID:      w.ID,
			TransactionID: t.ID,
			Amount:        t.Amount,
			Status:        model.WithdrawalPending,
		}
		if err := repository.NewGormWalletRepository(tx).CreateWithdrawal(ctx, req); err != nil {
			return apperr.FromStore(err, "withdrawal request")
		}

		return repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeWalletWithdrawal, &userID, nil, map[string]any{
			"withdrawal_id": req.ID,
			"amount":        t.Amount.String(),
		})
	})
	if err != nil {
		return nil, apperr.FromStore(err, "withdraw")
	}

	l.log.InfoContext(ctx, "withdrawal requested",
		slog.Uint64("user_id", userID),
		slog.String("amount", req.Amount.String()),
	)
	return req, nil
}
