package booking

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/notify"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

// Rate records the customer's rating of a completed booking. Each booking is rated once.
func (s *Service) Rate(ctx context.Context, actor model.Actor, code string, score int, review string) (*model.Rating, error) {
	var rating *model.Rating

	_, err := s.update(ctx, code, "rated", func(tx *gorm.DB, b *model.Booking) ([]notify.Message, error) {
		if actor.Role != model.UserRoleCustomer || b.CustomerID != actor.UserID {
			return nil, apperr.Wrap(apperr.ErrForbidden, "only the booking's customer can rate it")
		}
		if b.Status != model.BookingStatusCompleted {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "only completed bookings can be rated, %s is %s", b.Code, b.Status)
		}
		maidID, ok := b.Assignment()
		if !ok {
			return nil, apperr.Wrap(apperr.ErrInvalidTransition, "booking %s has no worker", b.Code)
		}

		rating = &model.Rating{
			BookingID:  b.ID,
			MaidID:     maidID,
			CustomerID: b.CustomerID,
			Score:      score,
			Review:     strings.TrimSpace(review),
		}
		if err := rating.Validate(); err != nil {
			return nil, err
		}
		if err := repository.NewGormRatingRepository(tx).Create(ctx, rating); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Wrap(apperr.ErrConflict, "booking %s is already rated", b.Code)
			}
			return nil, apperr.FromStore(err, "rating")
		}

		maid, err := repository.NewGormMaidRepository(tx).GetByID(ctx, maidID)
		if err != nil {
			return nil, apperr.FromStore(err, "maid profile")
		}
		return []notify.Message{ratingReceivedMessage(b, maid.UserID, score)}, nil
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}
