package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

func TestInitiatePayment_WalletDebitsAndRefundsOnCancel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.customer(t)
	h.fund(t, customer.UserID, "708")

	b := h.book(t, customer, h.service(t, "500"), 10, 60)
	paid, payment, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodWallet)
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if paid.PaymentStatus != model.PaymentStatusCompleted || payment.Status != model.PaymentStatusCompleted {
		t.Fatalf("payment status = %s/%s, want completed", paid.PaymentStatus, payment.Status)
	}
	if !payment.Amount.Equal(amt("708")) || !strings.HasPrefix(payment.GatewayRef, "pay_") {
		t.Fatalf("unexpected payment %+v", payment)
	}
	if !h.balance(t, customer.UserID).IsZero() {
		t.Fatalf("balance after payment = %s, want 0", h.balance(t, customer.UserID))
	}

	if _, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodWallet); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("second payment err = %v, want invalid transition", err)
	}

	cancelled, err := h.svc.Cancel(ctx, customer, b.Code, "plans changed")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.PaymentStatus != model.PaymentStatusRefunded {
		t.Fatalf("payment status after cancel = %s, want refunded", cancelled.PaymentStatus)
	}
	if !h.balance(t, customer.UserID).Equal(amt("708")) {
		t.Fatalf("balance after refund = %s, want 708", h.balance(t, customer.UserID))
	}

	p, err := repository.NewGormPaymentRepository(h.db).LatestByBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if p.Status != model.PaymentStatusRefunded {
		t.Fatalf("payment row status = %s, want refunded", p.Status)
	}

	w, err := h.ledger.WalletOf(ctx, customer.UserID)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	report, err := h.ledger.Replay(ctx, w.ID)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !report.Consistent() || report.Entries != 3 {
		t.Fatalf("replay = %+v", report)
	}
}

func TestInitiatePayment_WalletInsufficientFunds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.customer(t)
	h.fund(t, customer.UserID, "100")

	b := h.book(t, customer, h.service(t, "500"), 10, 60)
	if _, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodWallet); !errors.Is(err, apperr.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want insufficient funds", err)
	}

	got, err := h.svc.Get(ctx, customer, b.Code)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("payment status = %s, want pending", got.PaymentStatus)
	}
	if _, err := repository.NewGormPaymentRepository(h.db).LatestByBooking(ctx, b.ID); !repository.IsNotFound(err) {
		t.Fatalf("payment row should be rolled back, err = %v", err)
	}
	if !h.balance(t, customer.UserID).Equal(amt("100")) {
		t.Fatalf("balance = %s, want 100", h.balance(t, customer.UserID))
	}
}

func TestInitiatePayment_GatewayConfirmAndFail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.customer(t)
	admin := h.admin(t)
	svc := h.service(t, "500")

	b := h.book(t, customer, svc, 10, 60)
	if _, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, "cash"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("unknown method err = %v, want invalid argument", err)
	}
	if _, _, err := h.svc.InitiatePayment(ctx, h.customer(t), b.Code, model.PaymentMethodRazorpay); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("stranger payment err = %v, want forbidden", err)
	}

	got, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodRazorpay)
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if got.PaymentStatus != model.PaymentStatusProcessing {
		t.Fatalf("payment status = %s, want processing", got.PaymentStatus)
	}

	if _, err := h.svc.FailPayment(ctx, customer, b.Code); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("customer fail err = %v, want forbidden", err)
	}
	failed, err := h.svc.FailPayment(ctx, admin, b.Code)
	if err != nil {
		t.Fatalf("FailPayment: %v", err)
	}
	if failed.PaymentStatus != model.PaymentStatusFailed {
		t.Fatalf("payment status = %s, want failed", failed.PaymentStatus)
	}
	if len(h.sent.ofType(model.NotificationPaymentFailed)) != 1 {
		t.Fatalf("expected payment_failed notification")
	}

	// a failed payment can be retried
	if _, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodStripe); err != nil {
		t.Fatalf("retry: %v", err)
	}
	confirmed, err := h.svc.ConfirmPayment(ctx, admin, b.Code)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.PaymentStatus != model.PaymentStatusCompleted {
		t.Fatalf("payment status = %s, want completed", confirmed.PaymentStatus)
	}
	if _, err := h.svc.ConfirmPayment(ctx, admin, b.Code); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("double confirm err = %v, want invalid transition", err)
	}

	cancelled, err := h.svc.Cancel(ctx, admin, b.Code, "duplicate order")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.PaymentStatus != model.PaymentStatusRefunded || !h.balance(t, customer.UserID).Equal(amt("708")) {
		t.Fatalf("refund: status=%s balance=%s", cancelled.PaymentStatus, h.balance(t, customer.UserID))
	}
	if _, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodWallet); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("pay cancelled err = %v, want invalid transition", err)
	}
}

func TestConfirmPayment_AfterCancelRefunds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.customer(t)
	admin := h.admin(t)

	b := h.book(t, customer, h.service(t, "500"), 10, 60)
	if _, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodRazorpay); err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	cancelled, err := h.svc.Cancel(ctx, customer, b.Code, "changed plans")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.PaymentStatus != model.PaymentStatusProcessing {
		t.Fatalf("payment status after cancel = %s, want processing", cancelled.PaymentStatus)
	}

	got, err := h.svc.ConfirmPayment(ctx, admin, b.Code)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if got.Status != model.BookingStatusCancelled || got.PaymentStatus != model.PaymentStatusRefunded {
		t.Fatalf("booking = %s/%s, want cancelled/refunded", got.Status, got.PaymentStatus)
	}

	p, err := repository.NewGormPaymentRepository(h.db).LatestByBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if p.Status != model.PaymentStatusRefunded {
		t.Fatalf("payment row status = %s, want refunded", p.Status)
	}

	w, err := h.ledger.WalletOf(ctx, customer.UserID)
	if err != nil {
		t.Fatalf("customer wallet: %v", err)
	}
	if !w.Balance.Equal(amt("708")) || !w.TotalRefunded.Equal(amt("708")) {
		t.Fatalf("customer wallet balance=%s refunded=%s, want 708/708", w.Balance, w.TotalRefunded)
	}
	txs, err := repository.NewGormWalletRepository(h.db).AllTransactions(ctx, w.ID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Type != model.TransactionRefund || txs[0].PaymentID == nil || *txs[0].PaymentID != p.ID {
		t.Fatalf("unexpected refund entries: %+v", txs)
	}

	if _, err := h.svc.ConfirmPayment(ctx, admin, b.Code); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("second confirm err = %v, want invalid transition", err)
	}
}

func TestFailPayment_AfterCancelLeavesWalletAlone(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.customer(t)
	admin := h.admin(t)

	b := h.book(t, customer, h.service(t, "500"), 10, 60)
	if _, _, err := h.svc.InitiatePayment(ctx, customer, b.Code, model.PaymentMethodRazorpay); err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if _, err := h.svc.Cancel(ctx, customer, b.Code, "changed plans"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	got, err := h.svc.FailPayment(ctx, admin, b.Code)
	if err != nil {
		t.Fatalf("FailPayment: %v", err)
	}
	if got.PaymentStatus != model.PaymentStatusFailed {
		t.Fatalf("payment status = %s, want failed", got.PaymentStatus)
	}
	if _, err := h.ledger.WalletOf(ctx, customer.UserID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("wallet err = %v, want not found", err)
	}
}

func TestRate_OncePerCompletedBooking(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.customer(t)
	worker, profile := h.maid(t)
	b := h.book(t, customer, h.service(t, "500"), 10, 60)

	if _, err := h.svc.Rate(ctx, customer, b.Code, 5, "great"); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("rate pending err = %v, want invalid transition", err)
	}
	for _, step := range []func(context.Context, model.Actor, string) (*model.Booking, error){h.svc.Accept, h.svc.Start, h.svc.Complete} {
		if _, err := step(ctx, worker, b.Code); err != nil {
			t.Fatalf("drive to completed: %v", err)
		}
	}

	if _, err := h.svc.Rate(ctx, customer, b.Code, 6, ""); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("score 6 err = %v, want invalid argument", err)
	}
	if _, err := h.svc.Rate(ctx, h.customer(t), b.Code, 4, ""); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("stranger rate err = %v, want forbidden", err)
	}

	r, err := h.svc.Rate(ctx, customer, b.Code, 4, "  tidy work ")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if r.MaidID != profile.ID || r.Score != 4 || r.Review != "tidy work" {
		t.Fatalf("unexpected rating %+v", r)
	}
	if _, err := h.svc.Rate(ctx, customer, b.Code, 3, ""); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("second rating err = %v, want conflict", err)
	}

	msgs := h.sent.ofType(model.NotificationRatingReceived)
	if len(msgs) != 1 || msgs[0].UserID != worker.UserID {
		t.Fatalf("rating messages = %+v", msgs)
	}
}
