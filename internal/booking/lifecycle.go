package booking

import (
	"context"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/metrics"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/notify"
	"github.com/Leganyst/maid-marketplace/internal/repository"
	"github.com/Leganyst/maid-marketplace/internal/schedule"
)

// mutateFunc меняет заблокированное бронирование внутри транзакции и возвращает
// уведомления, которые уйдут после коммита.
type mutateFunc func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error)

// mutate applies a status change; terminal bookings are rejected before fn runs.
func (s *Service) mutate(ctx context.Context, code string, label model.BookingStatus, fn mutateFunc) (*model.Booking, error) {
	return s.update(ctx, code, string(label), func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		if b.Status.Terminal() {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "booking %s is already %s", b.Code, b.Status)
		}
		return fn(tx, b)
	})
}

// update runs fn on the locked booking and dispatches its messages after commit.
func (s *Service) update(ctx context.Context, code string, label string, fn mutateFunc) (*model.Booking, error) {
	var (
		msgs []notify.Message
		out  *model.Booking
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewGormBookingRepository(tx)

		b, err := repo.GetByCodeForUpdate(ctx, code)
		if err != nil {
			return apperr.FromStore(err, "booking")
		}
		if msgs, err = fn(tx, b); err != nil {
			return err
		}

		out, err = repo.GetByID(ctx, b.ID)
		return apperr.FromStore(err, "reload booking")
	})
	metrics.BookingTransitions.WithLabelValues(label, metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, apperr.FromStore(err, "booking")
	}

	s.log.InfoContext(ctx, "booking updated",
		slog.String("code", out.Code),
		slog.String("status", string(out.Status)),
		slog.String("payment_status", string(out.PaymentStatus)),
	)
	s.notifier.Dispatch(ctx, msgs...)
	return out, nil
}

// transition applies b.Status -> to only if the stored status is still the one read.
func (s *Service) transition(ctx context.Context, tx *gorm.DB, b *model.Booking, to model.BookingStatus, updates map[string]any) error {
	if err := CheckTransition(b.Status, to); err != nil {
		return err
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to

	ok, err := repository.NewGormBookingRepository(tx).Transition(ctx, b.ID, []model.BookingStatus{b.Status}, updates)
	if err != nil {
		return apperr.FromStore(err, "update booking")
	}
	if !ok {
		return apperr.Wrap(apperr.ErrInvalidTransition, "booking %s is no longer %s", b.Code, b.Status)
	}
	return nil
}

func (s *Service) record(ctx context.Context, tx *gorm.DB, t model.EventType, actor model.Actor, b *model.Booking, details map[string]any) error {
	err := repository.NewGormEventRepository(tx).Record(ctx, t, &actor.UserID, &b.ID, details)
	return apperr.FromStore(err, "audit event")
}

func requireMaid(ctx context.Context, tx *gorm.DB, actor model.Actor) (*model.Maid, error) {
	if actor.Role != model.UserRoleMaid {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only maids can do this")
	}
	maid, err := repository.NewGormMaidRepository(tx).GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.FromStore(err, "maid profile")
	}
	return maid, nil
}

// checkMaidFree verifies the worker can take b: available, within working hours, not double-booked.
func (s *Service) checkMaidFree(ctx context.Context, tx *gorm.DB, maid *model.Maid, b *model.Booking) error {
	if !maid.IsAvailable {
		return apperr.Wrap(apperr.ErrConflict, "maid %d is not available", maid.ID)
	}

	window, err := schedule.NewTimeRange(b.Window())
	if err != nil {
		return err
	}

	hours, err := schedule.ParseDailyHours(maid.AvailableFrom, maid.AvailableTo)
	if err != nil {
		return err
	}
	if !hours.Contains(window, s.loc) {
		return apperr.Wrap(apperr.ErrConflict, "booking %s is outside working hours %s", b.Code, hours)
	}

	busy, err := repository.NewGormBookingRepository(tx).ListActiveByMaidInRange(ctx, maid.ID, window.Start, window.End)
	if err != nil {
		return apperr.FromStore(err, "maid bookings")
	}
	existing := make([]schedule.TimeRange, 0, len(busy))
	for _, other := range busy {
		if other.ID == b.ID {
			continue
		}
		existing = append(existing, schedule.TimeRange{Start: other.ScheduledAt, End: other.ScheduledEndAt})
	}
	if has, _ := schedule.HasOverlap(window, existing, false); has {
		return apperr.Wrap(apperr.ErrConflict, "maid %d already has a booking at %s", maid.ID, schedule.FormatWindow(window, s.loc))
	}
	return nil
}

// Accept assigns the calling maid to a pending booking.
func (s *Service) Accept(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
	return s.mutate(ctx, code, model.BookingStatusAccepted, func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		maid, err := requireMaid(ctx, tx, actor)
		if err != nil {
			return nil, err
		}
		if err := CheckTransition(b.Status, model.BookingStatusAccepted); err != nil {
			return nil, err
		}
		if err := s.checkMaidFree(ctx, tx, maid, b); err != nil {
			return nil, err
		}

		now := s.now().UTC()
		err = s.transition(ctx, tx, b, model.BookingStatusAccepted, map[string]any{
			"maid_id":     maid.ID,
			"accepted_at": now,
		})
		if err != nil {
			return nil, err
		}
		if err := s.record(ctx, tx, model.EventTypeBookingAccepted, actor, b, map[string]any{"maidId": maid.ID}); err != nil {
			return nil, err
		}
		return []notify.Message{jobAcceptedMessage(b)}, nil
	})
}

// Start moves an accepted booking to in_progress; only the assigned maid may start it.
func (s *Service) Start(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
	return s.mutate(ctx, code, model.BookingStatusInProgress, func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		if _, err := requireMaid(ctx, tx, actor); err != nil {
			return nil, err
		}
		ok, err := s.isAssigned(ctx, tx, actor, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Wrap(apperr.ErrForbidden, "booking %s is assigned to another maid", b.Code)
		}

		err = s.transition(ctx, tx, b, model.BookingStatusInProgress, map[string]any{"started_at": s.now().UTC()})
		if err != nil {
			return nil, err
		}
		if err := s.record(ctx, tx, model.EventTypeBookingStarted, actor, b, nil); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

// Complete finishes an in-progress booking and settles the worker's earnings.
func (s *Service) Complete(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
	return s.mutate(ctx, code, model.BookingStatusCompleted, func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		if !actor.Role.IsAdmin() {
			ok, err := s.isAssigned(ctx, tx, actor, b)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, apperr.Wrap(apperr.ErrForbidden, "only the assigned maid or an admin can complete %s", b.Code)
			}
		}

		err := s.transition(ctx, tx, b, model.BookingStatusCompleted, map[string]any{
			"completed_at": s.now().UTC(),
			"final_price":  b.QuotedPrice,
		})
		if err != nil {
			return nil, err
		}

		maid, err := s.settle(ctx, tx, b)
		if err != nil {
			return nil, err
		}
		err = s.record(ctx, tx, model.EventTypeBookingCompleted, actor, b, map[string]any{
			"maidAmount": b.Price.MaidAmount.String(),
			"commission": b.Price.Commission.String(),
		})
		if err != nil {
			return nil, err
		}
		return jobCompletedMessages(b, maid.UserID), nil
	})
}

// settle credits the worker with the base price and deducts the platform commission.
func (s *Service) settle(ctx context.Context, tx *gorm.DB, b *model.Booking) (*model.Maid, error) {
	maidID, ok := b.Assignment()
	if !ok {
		return nil, apperr.Wrap(apperr.ErrInvalidTransition, "booking %s has no worker to settle", b.Code)
	}
	maids := repository.NewGormMaidRepository(tx)
	maid, err := maids.GetByID(ctx, maidID)
	if err != nil {
		return nil, apperr.FromStore(err, "maid profile")
	}

	w, err := s.ledger.EnsureWalletIn(ctx, tx, maid.UserID)
	if err != nil {
		return nil, err
	}

	_, err = s.ledger.RecordIn(ctx, tx, ledger.Entry{
		WalletID:    w.ID,
		Type:        model.TransactionCredit,
		Amount:      b.Price.Base,
		Description: "Earnings for booking " + b.Code,
		BookingID:   &b.ID,
	})
	if err != nil {
		return nil, err
	}
	if b.Price.Commission.IsPositive() {
		_, err = s.ledger.RecordIn(ctx, tx, ledger.Entry{
			WalletID:    w.ID,
			Type:        model.TransactionCommissionDeduction,
			Amount:      b.Price.Commission,
			Description: "Platform commission for booking " + b.Code,
			BookingID:   &b.ID,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := maids.IncrementTotalJobs(ctx, maid.ID); err != nil {
		return nil, apperr.FromStore(err, "maid total jobs")
	}
	return maid, nil
}

// cancelActor resolves who is cancelling b, or Forbidden.
func (s *Service) cancelActor(ctx context.Context, tx *gorm.DB, actor model.Actor, b *model.Booking) (model.CancelActor, error) {
	switch {
	case actor.Role.IsAdmin():
		return model.CancelActorAdmin, nil
	case actor.Role == model.UserRoleCustomer && b.CustomerID == actor.UserID:
		return model.CancelActorCustomer, nil
	case actor.Role == model.UserRoleMaid:
		ok, err := s.isAssigned(ctx, tx, actor, b)
		if err != nil {
			return "", err
		}
		if ok {
			return model.CancelActorMaid, nil
		}
	}
	return "", apperr.Wrap(apperr.ErrForbidden, "user %d cannot cancel booking %s", actor.UserID, b.Code)
}

// Cancel cancels a pending or accepted booking. A completed payment is refunded to the customer's wallet.
func (s *Service) Cancel(ctx context.Context, actor model.Actor, code, reason string) (*model.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "cancellation reason is required")
	}

	return s.mutate(ctx, code, model.BookingStatusCancelled, func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		by, err := s.cancelActor(ctx, tx, actor, b)
		if err != nil {
			return nil, err
		}

		err = s.transition(ctx, tx, b, model.BookingStatusCancelled, map[string]any{
			"cancelled_by":        by,
			"cancellation_reason": reason,
			"cancelled_at":        s.now().UTC(),
		})
		if err != nil {
			return nil, err
		}

		refunded := false
		if b.PaymentStatus == model.PaymentStatusCompleted {
			if err := s.refund(ctx, tx, b); err != nil {
				return nil, err
			}
			refunded = true
		}

		err = s.record(ctx, tx, model.EventTypeBookingCancelled, actor, b, map[string]any{
			"by":       by,
			"reason":   reason,
			"refunded": refunded,
		})
		if err != nil {
			return nil, err
		}

		msgs := []notify.Message{cancelledMessage(b, b.CustomerID, reason, refunded)}
		if maidID, ok := b.Assignment(); ok {
			maid, err := repository.NewGormMaidRepository(tx).GetByID(ctx, maidID)
			if err != nil {
				return nil, apperr.FromStore(err, "maid profile")
			}
			msgs = append(msgs, cancelledMessage(b, maid.UserID, reason, false))
		}
		return msgs, nil
	})
}

// refund returns the quoted price to the customer's wallet and marks the payment refunded.
func (s *Service) refund(ctx context.Context, tx *gorm.DB, b *model.Booking) error {
	w, err := s.ledger.EnsureWalletIn(ctx, tx, b.CustomerID)
	if err != nil {
		return err
	}

	payments := repository.NewGormPaymentRepository(tx)
	var paymentID *uint64
	p, err := payments.LatestByBooking(ctx, b.ID)
	switch {
	case err == nil:
		paymentID = &p.ID
	case !repository.IsNotFound(err):
		return apperr.FromStore(err, "payment")
	}

	_, err = s.ledger.RecordIn(ctx, tx, ledger.Entry{
		WalletID:    w.ID,
		Type:        model.TransactionRefund,
		Amount:      b.QuotedPrice,
		Description: "Refund for cancelled booking " + b.Code,
		BookingID:   &b.ID,
		PaymentID:   paymentID,
	})
	if err != nil {
		return err
	}

	ok, err := repository.NewGormBookingRepository(tx).UpdatePaymentStatus(ctx, b.ID,
		[]model.PaymentStatus{model.PaymentStatusCompleted}, model.PaymentStatusRefunded)
	if err != nil {
		return apperr.FromStore(err, "booking payment status")
	}
	if !ok {
		return apperr.Wrap(apperr.ErrInvalidTransition, "booking %s payment is no longer completed", b.Code)
	}
	if paymentID != nil {
		if _, err := payments.UpdateStatus(ctx, *paymentID, []model.PaymentStatus{model.PaymentStatusCompleted}, model.PaymentStatusRefunded); err != nil {
			return apperr.FromStore(err, "payment status")
		}
	}
	return nil
}

// MarkNoShow closes a pending or accepted booking the customer did not turn up for.
func (s *Service) MarkNoShow(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
	return s.mutate(ctx, code, model.BookingStatusNoShow, func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		if !actor.Role.IsAdmin() {
			ok, err := s.isAssigned(ctx, tx, actor, b)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, apperr.Wrap(apperr.ErrForbidden, "only the assigned maid or an admin can mark %s as no-show", b.Code)
			}
		}

		if err := s.transition(ctx, tx, b, model.BookingStatusNoShow, nil); err != nil {
			return nil, err
		}
		if err := s.record(ctx, tx, model.EventTypeBookingNoShow, actor, b, nil); err != nil {
			return nil, err
		}
		return []notify.Message{noShowMessage(b)}, nil
	})
}

// Reassign moves an accepted booking to another maid (admin override).
func (s *Service) Reassign(ctx context.Context, actor model.Actor, code string, maidID uint64) (*model.Booking, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only admins can reassign bookings")
	}

	return s.update(ctx, code, "reassigned", func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		if b.Status != model.BookingStatusAccepted {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "only accepted bookings can be reassigned, %s is %s", b.Code, b.Status)
		}
		prev, _ := b.Assignment()
		if prev == maidID {
			return nil, apperr.Wrap(apperr.ErrInvalidArgument, "booking %s is already assigned to maid %d", b.Code, maidID)
		}

		maid, err := repository.NewGormMaidRepository(tx).GetByID(ctx, maidID)
		if err != nil {
			return nil, apperr.FromStore(err, "maid profile")
		}
		if err := s.checkMaidFree(ctx, tx, maid, b); err != nil {
			return nil, err
		}

		ok, err := repository.NewGormBookingRepository(tx).Transition(ctx, b.ID,
			[]model.BookingStatus{model.BookingStatusAccepted}, map[string]any{"maid_id": maid.ID})
		if err != nil {
			return nil, apperr.FromStore(err, "update booking")
		}
		if !ok {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "booking %s is no longer accepted", b.Code)
		}

		err = s.record(ctx, tx, model.EventTypeBookingReassigned, actor, b, map[string]any{"from": prev, "to": maid.ID})
		if err != nil {
			return nil, err
		}
		return []notify.Message{jobAlertMessage(b, maid.UserID)}, nil
	})
}
