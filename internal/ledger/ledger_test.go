package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/db"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/pagination"
)

func setup(t *testing.T) (*gorm.DB, *Ledger) {
	t.Helper()

	gdb, err := db.NewMemoryDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	return gdb, New(gdb, nil)
}

func newWallet(t *testing.T, gdb *gorm.DB, l *Ledger, phone string) *model.Wallet {
	t.Helper()

	u := model.User{Phone: phone, Role: model.UserRoleCustomer, IsActive: true}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	w, err := l.EnsureWallet(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("ensure wallet: %v", err)
	}
	return w
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger_RecordKeepsBeforeAfterChain(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	credit, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("500")})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if !credit.BalanceBefore.IsZero() || !credit.BalanceAfter.Equal(amt("500")) {
		t.Fatalf("unexpected credit snapshot: %s -> %s", credit.BalanceBefore, credit.BalanceAfter)
	}

	ded, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionCommissionDeduction, Amount: amt("100")})
	if err != nil {
		t.Fatalf("deduction: %v", err)
	}
	if !ded.BalanceBefore.Equal(amt("500")) || !ded.BalanceAfter.Equal(amt("400")) {
		t.Fatalf("unexpected deduction snapshot: %s -> %s", ded.BalanceBefore, ded.BalanceAfter)
	}

	got, err := l.WalletOf(ctx, w.UserID)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if !got.Balance.Equal(amt("400")) || !got.TotalEarnings.Equal(amt("400")) {
		t.Fatalf("unexpected wallet: balance=%s earnings=%s, want net 400/400", got.Balance, got.TotalEarnings)
	}
}

func TestLedger_ReplayMatchesBalance(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	// N = 0
	r, err := l.Replay(ctx, w.ID)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !r.Consistent() || r.Entries != 0 {
		t.Fatalf("expected consistent empty log, got %+v", r)
	}

	entries := []Entry{
		{Type: model.TransactionCredit, Amount: amt("1000")},
		{Type: model.TransactionCommissionDeduction, Amount: amt("200")},
		{Type: model.TransactionRefund, Amount: amt("35.50")},
		{Type: model.TransactionDebit, Amount: amt("0.75")},
		{Type: model.TransactionWithdrawal, Amount: amt("300")},
		{Type: model.TransactionCredit, Amount: amt("12.345")},
	}
	for i, e := range entries {
		e.WalletID = w.ID
		if _, err := l.Record(ctx, e); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}

		r, err = l.Replay(ctx, w.ID)
		if err != nil {
			t.Fatalf("replay: %v", err)
		}
		if !r.Consistent() {
			t.Fatalf("after %d entries: computed %s, stored %s, broken at %d", i+1, r.Computed, r.Stored, r.BrokenAt)
		}
		if r.Entries != i+1 {
			t.Fatalf("expected %d entries, got %d", i+1, r.Entries)
		}
	}

	// 1000 - 200 + 35.5 - 0.75 - 300 + 12.35
	if !r.Stored.Equal(amt("547.1")) {
		t.Fatalf("unexpected final balance %s", r.Computed)
	}
}

func TestLedger_InsufficientFundsLeavesStateUnchanged(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	if _, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("50")}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	for _, typ := range []model.TransactionType{model.TransactionDebit, model.TransactionWithdrawal, model.TransactionCommissionDeduction} {
		_, err := l.Record(ctx, Entry{WalletID: w.ID, Type: typ, Amount: amt("50.01")})
		if !errors.Is(err, apperr.ErrInsufficientFunds) {
			t.Fatalf("%s: expected insufficient funds, got %v", typ, err)
		}
	}

	got, err := l.WalletOf(ctx, w.UserID)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if !got.Balance.Equal(amt("50")) {
		t.Fatalf("balance changed to %s", got.Balance)
	}

	var n int64
	gdb.Model(&model.WalletTransaction{}).Where("wallet_id = ?", w.ID).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 transaction, got %d", n)
	}
}

func TestLedger_StoreDownIsUnavailable(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543219")

	if err := db.Close(gdb); err != nil {
		t.Fatalf("close db: %v", err)
	}

	_, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("10")})
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("Record with the store down err = %v, want unavailable", err)
	}
	if reason := apperr.Reason(err); reason != "UNAVAILABLE" {
		t.Fatalf("reason = %s, want UNAVAILABLE", reason)
	}
	if _, err := l.WalletOf(ctx, w.UserID); !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("WalletOf with the store down err = %v, want unavailable", err)
	}
}

func TestLedger_DebitToExactlyZero(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	if _, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("80")}); err != nil {
		t.Fatalf("credit: %v", err)
	}
	tx, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionDebit, Amount: amt("80")})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if !tx.BalanceAfter.IsZero() {
		t.Fatalf("expected zero balance, got %s", tx.BalanceAfter)
	}
}

func TestLedger_RejectsInvalidEntries(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	cases := []Entry{
		{WalletID: w.ID, Type: model.TransactionCredit, Amount: decimal.Zero},
		{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("-5")},
		{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("0.004")},
		{WalletID: w.ID, Type: "bonus", Amount: amt("5")},
	}
	for _, e := range cases {
		if _, err := l.Record(ctx, e); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("Record(%+v): expected invalid argument, got %v", e, err)
		}
	}

	if _, err := l.Record(ctx, Entry{WalletID: 9999, Type: model.TransactionCredit, Amount: amt("1")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for missing wallet, got %v", err)
	}
}

func TestLedger_RecordInRollsBackWithCaller(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	boom := errors.New("caller failed")
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if _, err := l.RecordIn(ctx, tx, Entry{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("10")}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected caller error, got %v", err)
	}

	got, err := l.WalletOf(ctx, w.UserID)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if !got.Balance.IsZero() {
		t.Fatalf("expected rollback, balance is %s", got.Balance)
	}
}

func TestLedger_TotalsByType(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	for _, e := range []Entry{
		{Type: model.TransactionCredit, Amount: amt("100")},
		{Type: model.TransactionRefund, Amount: amt("20")},
		{Type: model.TransactionWithdrawal, Amount: amt("30")},
	} {
		e.WalletID = w.ID
		if _, err := l.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := l.WalletOf(ctx, w.UserID)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if !got.TotalEarnings.Equal(amt("100")) || !got.TotalRefunded.Equal(amt("20")) || !got.TotalWithdrawn.Equal(amt("30")) {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if !got.Balance.Equal(amt("90")) {
		t.Fatalf("expected balance 90, got %s", got.Balance)
	}
}

func TestLedger_HistoryNewestFirst(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	for _, a := range []string{"1", "2", "3"} {
		if _, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt(a)}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	page, err := l.History(ctx, w.ID, pagination.Request{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 || !page.HasNext {
		t.Fatalf("unexpected page: %+v", page)
	}
	if !page.Items[0].Amount.Equal(amt("3")) {
		t.Fatalf("expected newest entry first, got %s", page.Items[0].Amount)
	}
}

func TestLedger_Withdraw(t *testing.T) {
	gdb, l := setup(t)
	ctx := context.Background()
	w := newWallet(t, gdb, l, "9876543210")

	maid := model.Maid{UserID: w.UserID, IsAvailable: true, VerificationStatus: model.VerificationVerified}
	if err := gdb.Create(&maid).Error; err != nil {
		t.Fatalf("create maid: %v", err)
	}
	if _, err := l.Record(ctx, Entry{WalletID: w.ID, Type: model.TransactionCredit, Amount: amt("400")}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	req, err := l.Withdraw(ctx, w.UserID, amt("150"))
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if req.Status != model.WithdrawalPending || req.MaidID != maid.ID || req.TransactionID == 0 {
		t.Fatalf("unexpected request: %+v", req)
	}

	if _, err := l.Withdraw(ctx, w.UserID, amt("300")); !errors.Is(err, apperr.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	var requests int64
	gdb.Model(&model.WithdrawalRequest{}).Count(&requests)
	if requests != 1 {
		t.Fatalf("expected 1 withdrawal request, got %d", requests)
	}

	got, _ := l.WalletOf(ctx, w.UserID)
	if !got.Balance.Equal(amt("250")) || !got.TotalWithdrawn.Equal(amt("150")) {
		t.Fatalf("unexpected wallet: %+v", got)
	}
}

func TestLedger_WithdrawRequiresMaidProfile(t *testing.T) {
	gdb, l := setup(t)
	w := newWallet(t, gdb, l, "9876543210")

	if _, err := l.Withdraw(context.Background(), w.UserID, amt("1")); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
