package booking

import (
	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

// Допустимые переходы статуса бронирования.
var transitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusPending:    {model.BookingStatusAccepted, model.BookingStatusCancelled, model.BookingStatusNoShow},
	model.BookingStatusAccepted:   {model.BookingStatusInProgress, model.BookingStatusCancelled, model.BookingStatusNoShow},
	model.BookingStatusInProgress: {model.BookingStatusCompleted},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to model.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns InvalidTransition unless from -> to is allowed.
func CheckTransition(from, to model.BookingStatus) error {
	if from.Terminal() {
		return apperr.Wrap(apperr.ErrInvalidTransition, "booking is already %s", from)
	}
	if !CanTransition(from, to) {
		return apperr.Wrap(apperr.ErrInvalidTransition, "cannot move booking from %s to %s", from, to)
	}
	return nil
}
