// Package account covers identity-side operations: sign-in after OTP
// verification, profiles, role administration, worker availability and the
// notification inbox.
package account

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/pagination"
	"github.com/Leganyst/maid-marketplace/internal/repository"
	"github.com/Leganyst/maid-marketplace/internal/schedule"
)

type Service struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(db *gorm.DB, l *ledger.Ledger, opts ...Option) *Service {
	s := &Service{
		db:     db,
		ledger: l,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignedIn is the result of SignIn.
type SignedIn struct {
	User    *model.User
	Wallet  *model.Wallet
	Created bool
}

// SignIn finds or registers the user behind a verified phone and makes sure
// they have a wallet. Deactivated users are refused.
func (s *Service) SignIn(ctx context.Context, phone string) (*SignedIn, error) {
	var out SignedIn
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewGormUserRepository(tx)

		u, created, err := users.EnsureCustomer(ctx, phone)
		if err != nil {
			return apperr.FromStore(err, "user")
		}
		if !u.IsActive {
			return apperr.Wrap(apperr.ErrForbidden, "user %d is deactivated", u.ID)
		}

		w, err := s.ledger.EnsureWalletIn(ctx, tx, u.ID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		if err := users.MarkSignedIn(ctx, u.ID, now); err != nil {
			return apperr.FromStore(err, "mark signed in")
		}
		u.LastSignedInAt = &now

		err = repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeUserVerified, &u.ID, nil, map[string]any{
			"created": created,
		})
		if err != nil {
			return apperr.FromStore(err, "audit event")
		}

		out = SignedIn{User: u, Wallet: w, Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user signed in",
		slog.Uint64("user_id", out.User.ID),
		slog.String("phone", model.MaskPhone(out.User.Phone)),
		slog.Bool("created", out.Created),
	)
	return &out, nil
}

// RecentRatingsLimit caps the reviews returned with a worker profile.
const RecentRatingsLimit = 5

// Profile is a user together with their wallet and, for maids, the worker
// profile with its rating summary and latest reviews.
type Profile struct {
	User   *model.User
	Wallet *model.Wallet
	Maid   *model.Maid

	Rating        repository.RatingSummary
	RecentRatings []model.Rating
}

func (s *Service) Profile(ctx context.Context, userID uint64) (*Profile, error) {
	u, err := repository.NewGormUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.FromStore(err, "user")
	}

	p := &Profile{User: u}
	if p.Wallet, err = s.ledger.EnsureWallet(ctx, u.ID); err != nil {
		return nil, err
	}
	if u.Role == model.UserRoleMaid {
		m, err := repository.NewGormMaidRepository(s.db).GetByUserID(ctx, u.ID)
		switch {
		case err == nil:
			p.Maid = m
		case !repository.IsNotFound(err):
			return nil, apperr.FromStore(err, "maid profile")
		}
	}
	if p.Maid != nil {
		ratings := repository.NewGormRatingRepository(s.db)
		if p.Rating, err = ratings.SummaryByMaid(ctx, p.Maid.ID); err != nil {
			return nil, apperr.FromStore(err, "maid rating")
		}
		if p.RecentRatings, _, err = ratings.ListByMaid(ctx, p.Maid.ID, RecentRatingsLimit, 0); err != nil {
			return nil, apperr.FromStore(err, "maid reviews")
		}
	}
	return p, nil
}

// SetRole changes the role of a user. Admin roles can only be granted or
// taken away by a super admin. Promotion to maid creates the worker profile.
func (s *Service) SetRole(ctx context.Context, actor model.Actor, userID uint64, role model.UserRole) (*model.User, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only admins can change roles")
	}
	if !role.Valid() {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "unknown role %q", role)
	}

	var out *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewGormUserRepository(tx)

		u, err := users.FindByID(ctx, userID)
		if err != nil {
			return apperr.FromStore(err, "user")
		}
		if (role.IsAdmin() || u.Role.IsAdmin()) && actor.Role != model.UserRoleSuperAdmin {
			return apperr.Wrap(apperr.ErrForbidden, "only a super admin can change admin roles")
		}
		prev := u.Role
		if prev == role {
			out = u
			return nil
		}

		if err := users.SetRole(ctx, u.ID, role); err != nil {
			return apperr.FromStore(err, "set role")
		}
		if role == model.UserRoleMaid {
			if _, err := repository.NewGormMaidRepository(tx).EnsureByUserID(ctx, u.ID); err != nil {
				return apperr.FromStore(err, "maid profile")
			}
		}
		if _, err := s.ledger.EnsureWalletIn(ctx, tx, u.ID); err != nil {
			return err
		}

		err = repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeRoleChanged, &u.ID, nil, map[string]any{
			"from": prev,
			"to":   role,
			"by":   actor.UserID,
		})
		if err != nil {
			return apperr.FromStore(err, "audit event")
		}

		u.Role = role
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "role changed",
		slog.Uint64("user_id", out.ID),
		slog.String("role", string(out.Role)),
		slog.Uint64("by", actor.UserID),
	)
	return out, nil
}

// SetActive (de)activates a user; inactive users cannot sign in or call the API.
func (s *Service) SetActive(ctx context.Context, actor model.Actor, userID uint64, active bool) error {
	if !actor.Role.IsAdmin() {
		return apperr.Wrap(apperr.ErrForbidden, "only admins can change user status")
	}
	if actor.UserID == userID {
		return apperr.Wrap(apperr.ErrInvalidArgument, "admins cannot change their own status")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewGormUserRepository(tx).SetActive(ctx, userID, active); err != nil {
			return apperr.FromStore(err, "user")
		}
		err := repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeUserStatusChanged, &userID, nil, map[string]any{
			"active": active,
			"by":     actor.UserID,
		})
		return apperr.FromStore(err, "audit event")
	})
}

// MaidUpdate holds the editable fields of a worker profile.
type MaidUpdate struct {
	Bio             string
	ExperienceYears int
	IsAvailable     bool
	AvailableFrom   string
	AvailableTo     string
}

// UpdateMaidProfile edits the caller's own worker profile.
func (s *Service) UpdateMaidProfile(ctx context.Context, actor model.Actor, upd MaidUpdate) (*model.Maid, error) {
	if actor.Role != model.UserRoleMaid {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only maids have a worker profile")
	}
	if upd.ExperienceYears < 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "experience years must not be negative")
	}
	from, to := strings.TrimSpace(upd.AvailableFrom), strings.TrimSpace(upd.AvailableTo)
	if _, err := schedule.ParseDailyHours(from, to); err != nil {
		return nil, err
	}

	maids := repository.NewGormMaidRepository(s.db)
	m, err := maids.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.FromStore(err, "maid profile")
	}
	m.Bio = strings.TrimSpace(upd.Bio)
	m.ExperienceYears = upd.ExperienceYears
	m.IsAvailable = upd.IsAvailable
	m.AvailableFrom, m.AvailableTo = from, to

	if err := maids.Update(ctx, m); err != nil {
		return nil, apperr.FromStore(err, "update maid profile")
	}
	out, err := maids.GetByID(ctx, m.ID)
	return out, apperr.FromStore(err, "maid profile")
}

// Notifications returns the actor's inbox, newest first.
func (s *Service) Notifications(ctx context.Context, actor model.Actor, unreadOnly bool, req pagination.Request) (pagination.Page[model.Notification], error) {
	limit, offset := req.Bounds()
	items, total, err := repository.NewGormNotificationRepository(s.db).ListByUser(ctx, actor.UserID, unreadOnly, limit, offset)
	if err != nil {
		return pagination.Page[model.Notification]{}, apperr.FromStore(err, "notifications")
	}
	return pagination.New(items, req, total), nil
}

// MarkRead marks one of the actor's notifications read.
func (s *Service) MarkRead(ctx context.Context, actor model.Actor, id uint64) error {
	ok, err := repository.NewGormNotificationRepository(s.db).MarkRead(ctx, id, actor.UserID, s.now().UTC())
	if err != nil {
		return apperr.FromStore(err, "mark read")
	}
	if !ok {
		return apperr.Wrap(apperr.ErrNotFound, "notification %d", id)
	}
	return nil
}
