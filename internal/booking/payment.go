package booking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/notify"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

var payable = []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusFailed}

// InitiatePayment starts paying for a booking. Gateway methods leave the
// payment processing until ConfirmPayment or FailPayment; the wallet method
// debits the customer's wallet and completes at once.
func (s *Service) InitiatePayment(ctx context.Context, actor model.Actor, code string, method model.PaymentMethod) (*model.Booking, *model.Payment, error) {
	if !method.Valid() {
		return nil, nil, apperr.Wrap(apperr.ErrInvalidArgument, "unknown payment method %q", method)
	}

	var payment *model.Payment
	b, err := s.update(ctx, code, "payment_"+string(method), func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		if actor.Role != model.UserRoleCustomer || b.CustomerID != actor.UserID {
			return nil, apperr.Wrap(apperr.ErrForbidden, "only the booking's customer can pay for it")
		}
		if b.Status == model.BookingStatusCancelled || b.Status == model.BookingStatusNoShow {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "booking %s is %s", b.Code, b.Status)
		}
		if b.PaymentStatus != model.PaymentStatusPending && b.PaymentStatus != model.PaymentStatusFailed {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "booking %s payment is already %s", b.Code, b.PaymentStatus)
		}

		target := model.PaymentStatusProcessing
		if method == model.PaymentMethodWallet {
			target = model.PaymentStatusCompleted
		}

		payment = &model.Payment{
			BookingID:  b.ID,
			CustomerID: b.CustomerID,
			MaidID:     b.MaidID,
			Amount:     b.QuotedPrice,
			Currency:   "INR",
			Method:     method,
			GatewayRef: "pay_" + uuid.NewString(),
			Status:     target,
		}
		if err := repository.NewGormPaymentRepository(tx).Create(ctx, payment); err != nil {
			return nil, apperr.FromStore(err, "payment")
		}

		if method == model.PaymentMethodWallet {
			w, err := s.ledger.EnsureWalletIn(ctx, tx, b.CustomerID)
			if err != nil {
				return nil, err
			}
			_, err = s.ledger.RecordIn(ctx, tx, ledger.Entry{
				WalletID:    w.ID,
				Type:        model.TransactionDebit,
				Amount:      b.QuotedPrice,
				Description: "Payment for booking " + b.Code,
				BookingID:   &b.ID,
				PaymentID:   &payment.ID,
			})
			if err != nil {
				return nil, err
			}
		}

		if err := s.setPaymentStatus(ctx, tx, b, payable, target); err != nil {
			return nil, err
		}
		err := s.record(ctx, tx, model.EventTypePaymentUpdated, actor, b, map[string]any{
			"method":     method,
			"status":     target,
			"gatewayRef": payment.GatewayRef,
		})
		if err != nil {
			return nil, err
		}

		if target == model.PaymentStatusCompleted {
			return []notify.Message{paymentReceivedMessage(b, payment)}, nil
		}
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return b, payment, nil
}

// ConfirmPayment marks the processing payment of a booking completed. If the
// booking was cancelled while the payment was in flight, the amount is refunded
// to the customer's wallet in the same transaction.
func (s *Service) ConfirmPayment(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
	return s.settlePayment(ctx, actor, code, model.PaymentStatusCompleted)
}

// FailPayment marks the processing payment of a booking failed; the customer may retry.
func (s *Service) FailPayment(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
	return s.settlePayment(ctx, actor, code, model.PaymentStatusFailed)
}

func (s *Service) settlePayment(ctx context.Context, actor model.Actor, code string, to model.PaymentStatus) (*model.Booking, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only admins can settle payments")
	}

	return s.update(ctx, code, "payment_"+string(to), func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		processing := []model.PaymentStatus{model.PaymentStatusProcessing}

		payments := repository.NewGormPaymentRepository(tx)
		p, err := payments.LatestByBooking(ctx, b.ID)
		if err != nil {
			return nil, apperr.FromStore(err, "payment")
		}
		ok, err := payments.UpdateStatus(ctx, p.ID, processing, to)
		if err != nil {
			return nil, apperr.FromStore(err, "payment status")
		}
		if !ok {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "payment %s is %s, not processing", p.GatewayRef, p.Status)
		}
		p.Status = to

		if err := s.setPaymentStatus(ctx, tx, b, processing, to); err != nil {
			return nil, err
		}

		// Платёж подтвердился уже после отмены: деньги сразу возвращаются в кошелёк.
		refunded := false
		if to == model.PaymentStatusCompleted && b.Status == model.BookingStatusCancelled {
			if err := s.refund(ctx, tx, b); err != nil {
				return nil, err
			}
			refunded = true
		}

		err = s.record(ctx, tx, model.EventTypePaymentUpdated, actor, b, map[string]any{
			"status":     to,
			"gatewayRef": p.GatewayRef,
			"refunded":   refunded,
		})
		if err != nil {
			return nil, err
		}

		switch {
		case refunded:
			return []notify.Message{
				paymentReceivedMessage(b, p),
				cancelledMessage(b, b.CustomerID, b.CancellationReason, true),
			}, nil
		case to == model.PaymentStatusCompleted:
			return []notify.Message{paymentReceivedMessage(b, p)}, nil
		}
		return []notify.Message{paymentFailedMessage(b, p)}, nil
	})
}

func (s *Service) setPaymentStatus(ctx context.Context, tx *gorm.DB, b *model.Booking, from []model.PaymentStatus, to model.PaymentStatus) error {
	ok, err := repository.NewGormBookingRepository(tx).UpdatePaymentStatus(ctx, b.ID, from, to)
	if err != nil {
		return apperr.FromStore(err, "booking payment status")
	}
	if !ok {
		return apperr.Wrap(apperr.ErrInvalidTransition, "booking %s payment cannot move from %s to %s", b.Code, b.PaymentStatus, to)
	}
	return nil
}
