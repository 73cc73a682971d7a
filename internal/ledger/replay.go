package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

// ReplayReport — результат пересчёта баланса по журналу.
type ReplayReport struct {
	Entries int
	// Сумма знаковых операций от первой записи.
	Computed decimal.Decimal
	// Баланс, сохранённый в кошельке.
	Stored decimal.Decimal
	// Индекс первой записи, чей balance_before не равен предыдущему balance_after; -1, если разрывов нет.
	BrokenAt int
}

// Consistent reports whether the log and the stored balance agree.
func (r ReplayReport) Consistent() bool {
	return r.BrokenAt < 0 && r.Computed.Equal(r.Stored)
}

// Replay recomputes a wallet's balance from its log.
func (l *Ledger) Replay(ctx context.Context, walletID uint64) (ReplayReport, error) {
	repo := repository.NewGormWalletRepository(l.db)

	w, err := repo.GetByID(ctx, walletID)
	if err != nil {
		return ReplayReport{}, apperr.FromStore(err, "wallet")
	}
	txs, err := repo.AllTransactions(ctx, walletID)
	if err != nil {
		return ReplayReport{}, apperr.FromStore(err, "wallet transactions")
	}

	r := ReplayReport{Entries: len(txs), Computed: decimal.Zero, Stored: w.Balance, BrokenAt: -1}
	for i, t := range txs {
		if r.BrokenAt < 0 && !t.BalanceBefore.Equal(r.Computed) {
			r.BrokenAt = i
		}
		r.Computed = r.Computed.Add(t.Type.Signed(t.Amount))
	}
	return r, nil
}
