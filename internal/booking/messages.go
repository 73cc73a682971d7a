package booking

import (
	"fmt"

	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/notify"
)

func bookingData(b *model.Booking) map[string]any {
	return map[string]any{"bookingCode": b.Code}
}

func bookingCreatedMessage(b *model.Booking) notify.Message {
	return notify.Message{
		UserID:  b.CustomerID,
		Type:    model.NotificationBookingConfirmed,
		Title:   "Booking Created",
		Message: fmt.Sprintf("Your booking %s has been created and is awaiting confirmation.", b.Code),
		Data:    bookingData(b),
	}
}

func jobAcceptedMessage(b *model.Booking) notify.Message {
	return notify.Message{
		UserID:  b.CustomerID,
		Type:    model.NotificationJobAccepted,
		Title:   "Booking Accepted",
		Message: fmt.Sprintf("A maid has accepted your booking %s", b.Code),
		Data:    bookingData(b),
	}
}

func jobAlertMessage(b *model.Booking, maidUserID uint64) notify.Message {
	return notify.Message{
		UserID:  maidUserID,
		Type:    model.NotificationJobAlert,
		Title:   "New Job Assigned",
		Message: fmt.Sprintf("Booking %s has been assigned to you", b.Code),
		Data:    bookingData(b),
	}
}

func jobCompletedMessages(b *model.Booking, maidUserID uint64) []notify.Message {
	return []notify.Message{
		{
			UserID:  b.CustomerID,
			Type:    model.NotificationJobCompleted,
			Title:   "Booking Completed",
			Message: fmt.Sprintf("Your booking %s is complete. Please rate your maid.", b.Code),
			Data:    bookingData(b),
		},
		{
			UserID:  maidUserID,
			Type:    model.NotificationJobCompleted,
			Title:   "Job Completed",
			Message: fmt.Sprintf("₹%s has been credited to your wallet for booking %s", b.Price.MaidAmount.StringFixed(2), b.Code),
			Data: map[string]any{
				"bookingCode": b.Code,
				"maidAmount":  b.Price.MaidAmount.String(),
			},
		},
	}
}

func cancelledMessage(b *model.Booking, userID uint64, reason string, refunded bool) notify.Message {
	msg := fmt.Sprintf("Booking %s has been cancelled: %s", b.Code, reason)
	if refunded {
		msg += fmt.Sprintf(". ₹%s has been refunded to your wallet.", b.QuotedPrice.StringFixed(2))
	}
	return notify.Message{
		UserID:  userID,
		Type:    model.NotificationBookingCancelled,
		Title:   "Booking Cancelled",
		Message: msg,
		Data: map[string]any{
			"bookingCode": b.Code,
			"refunded":    refunded,
		},
	}
}

func noShowMessage(b *model.Booking) notify.Message {
	return notify.Message{
		UserID:  b.CustomerID,
		Type:    model.NotificationSystemAlert,
		Title:   "Missed Booking",
		Message: fmt.Sprintf("Booking %s was marked as a no-show", b.Code),
		Data:    bookingData(b),
	}
}

func paymentReceivedMessage(b *model.Booking, p *model.Payment) notify.Message {
	return notify.Message{
		UserID:  b.CustomerID,
		Type:    model.NotificationPaymentReceived,
		Title:   "Payment Received",
		Message: fmt.Sprintf("We received ₹%s for booking %s", p.Amount.StringFixed(2), b.Code),
		Data: map[string]any{
			"bookingCode": b.Code,
			"gatewayRef":  p.GatewayRef,
		},
	}
}

func paymentFailedMessage(b *model.Booking, p *model.Payment) notify.Message {
	return notify.Message{
		UserID:  b.CustomerID,
		Type:    model.NotificationPaymentFailed,
		Title:   "Payment Failed",
		Message: fmt.Sprintf("Payment for booking %s failed. Please try again.", b.Code),
		Data: map[string]any{
			"bookingCode": b.Code,
			"gatewayRef":  p.GatewayRef,
		},
	}
}

func ratingReceivedMessage(b *model.Booking, maidUserID uint64, score int) notify.Message {
	return notify.Message{
		UserID:  maidUserID,
		Type:    model.NotificationRatingReceived,
		Title:   "New Rating",
		Message: fmt.Sprintf("You received %d stars for booking %s", score, b.Code),
		Data: map[string]any{
			"bookingCode": b.Code,
			"rating":      score,
		},
	}
}
