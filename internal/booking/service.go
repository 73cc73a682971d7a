// Package booking implements the booking lifecycle.
//
// Status changes are conditional updates (UPDATE ... WHERE status IN (...)),
// so two concurrent transitions on one booking cannot both succeed. Side
// effects on wallets run in the same store transaction as the status change.
// Notifications are sent after commit and never fail an operation.
package booking

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/metrics"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/notify"
	"github.com/Leganyst/maid-marketplace/internal/pagination"
	"github.com/Leganyst/maid-marketplace/internal/pricing"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

const DefaultCodeRetries = 5

type Service struct {
	db         *gorm.DB
	ledger     *ledger.Ledger
	notifier   *notify.Dispatcher
	log        *slog.Logger
	now        func() time.Time
	codes      CodeGenerator
	maxRetries int
	loc        *time.Location
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCodeGenerator(g CodeGenerator) Option {
	return func(s *Service) { s.codes = g }
}

func WithCodeRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithLocation sets the zone worker hours are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(db *gorm.DB, l *ledger.Ledger, n *notify.Dispatcher, opts ...Option) *Service {
	s := &Service{
		db:         db,
		ledger:     l,
		notifier:   n,
		log:        slog.Default(),
		now:        time.Now,
		codes:      RandomCode,
		maxRetries: DefaultCodeRetries,
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateRequest struct {
	ServiceID       uint64
	ScheduledAt     time.Time
	DurationMin     int
	Location        string
	Latitude        *float64
	Longitude       *float64
	SpecialRequests string
}

func (r CreateRequest) validate(now time.Time) error {
	if r.ServiceID == 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "service id is required")
	}
	if r.ScheduledAt.IsZero() || !r.ScheduledAt.After(now) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "scheduled date must be in the future")
	}
	if r.DurationMin < model.MinBookingDurationMin || r.DurationMin > model.MaxBookingDurationMin {
		return apperr.Wrap(apperr.ErrInvalidArgument, "duration must be within [%d,%d] minutes, got %d",
			model.MinBookingDurationMin, model.MaxBookingDurationMin, r.DurationMin)
	}
	if strings.TrimSpace(r.Location) == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "location is required")
	}
	if r.Latitude != nil && (math.IsNaN(*r.Latitude) || *r.Latitude < -90 || *r.Latitude > 90) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "latitude out of range")
	}
	if r.Longitude != nil && (math.IsNaN(*r.Longitude) || *r.Longitude < -180 || *r.Longitude > 180) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "longitude out of range")
	}
	return nil
}

// Created is the result of Create.
type Created struct {
	Booking   *model.Booking
	Breakdown pricing.Breakdown
}

// Create prices a new booking for the customer and stores it as pending.
func (s *Service) Create(ctx context.Context, actor model.Actor, req CreateRequest) (*Created, error) {
	out, err := s.create(ctx, actor, req)
	metrics.BookingTransitions.WithLabelValues(string(model.BookingStatusPending), metrics.Outcome(err)).Inc()
	return out, err
}

func (s *Service) create(ctx context.Context, actor model.Actor, req CreateRequest) (*Created, error) {
	if actor.Role != model.UserRoleCustomer {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only customers can create bookings")
	}
	now := s.now().UTC()
	if err := req.validate(now); err != nil {
		return nil, err
	}

	svc, breakdown, err := s.price(ctx, req.ServiceID, now)
	if err != nil {
		return nil, err
	}

	start := req.ScheduledAt.UTC()
	b := model.Booking{
		CustomerID:      actor.UserID,
		ServiceID:       svc.ID,
		ScheduledAt:     start,
		ScheduledEndAt:  start.Add(time.Duration(req.DurationMin) * time.Minute),
		DurationMin:     req.DurationMin,
		Location:        strings.TrimSpace(req.Location),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		SpecialRequests: req.SpecialRequests,
		Status:          model.BookingStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		Price:           model.NewPriceBreakdown(breakdown),
		QuotedPrice:     breakdown.TotalAmount,
	}

	for attempt := 1; ; attempt++ {
		code, err := s.codes(now)
		if err != nil {
			return nil, err
		}
		b.ID = 0
		b.Code = code
		if err := b.Validate(); err != nil {
			return nil, err
		}

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := repository.NewGormBookingRepository(tx).Create(ctx, &b); err != nil {
				return err
			}
			return repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeBookingCreated, &actor.UserID, &b.ID, map[string]any{
				"code":        b.Code,
				"quotedPrice": b.QuotedPrice.String(),
			})
		})
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.FromStore(err, "create booking")
		}

		metrics.BookingCodeCollisions.Inc()
		s.log.WarnContext(ctx, "booking code collision", slog.String("code", code), slog.Int("attempt", attempt))
		if attempt >= s.maxRetries {
			return nil, apperr.Wrap(apperr.ErrConflict, "could not allocate a unique booking code after %d attempts", attempt)
		}
	}

	s.log.InfoContext(ctx, "booking created",
		slog.String("code", b.Code),
		slog.Uint64("customer_id", b.CustomerID),
		slog.String("quoted_price", b.QuotedPrice.String()),
	)
	s.notifier.Dispatch(ctx, bookingCreatedMessage(&b))

	return &Created{Booking: &b, Breakdown: breakdown}, nil
}

// Quote prices a service under the rule active now, without booking it.
func (s *Service) Quote(ctx context.Context, serviceID uint64) (pricing.Breakdown, error) {
	if serviceID == 0 {
		return pricing.Breakdown{}, apperr.Wrap(apperr.ErrInvalidArgument, "service id is required")
	}
	_, b, err := s.price(ctx, serviceID, s.now().UTC())
	return b, err
}

// price loads an active service and computes its rounded breakdown at the given instant.
func (s *Service) price(ctx context.Context, serviceID uint64, at time.Time) (*model.Service, pricing.Breakdown, error) {
	services := repository.NewGormServiceRepository(s.db)
	svc, err := services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, pricing.Breakdown{}, apperr.FromStore(err, "service")
	}
	if !svc.IsActive {
		return nil, pricing.Breakdown{}, apperr.Wrap(apperr.ErrNotFound, "service %d is not active", svc.ID)
	}

	rates := pricing.DefaultRates()
	rule, err := services.ActiveCommissionRule(ctx, svc.ID, at)
	switch {
	case err == nil:
		rates = rule.Rates()
	case !repository.IsNotFound(err):
		return nil, pricing.Breakdown{}, apperr.FromStore(err, "commission rule")
	}

	b, err := pricing.Calculate(svc.BasePrice, rates)
	if err != nil {
		return nil, pricing.Breakdown{}, err
	}
	return svc, b.Round(), nil
}

// Get returns the booking if actor owns it, works it, or administers.
func (s *Service) Get(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
	b, err := repository.NewGormBookingRepository(s.db).GetByCode(ctx, code)
	if err != nil {
		return nil, apperr.FromStore(err, "booking")
	}
	if err := s.authorizeView(ctx, s.db, actor, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the actor's own bookings: placed ones for customers, assigned ones for maids.
func (s *Service) List(ctx context.Context, actor model.Actor, req pagination.Request) (pagination.Page[model.Booking], error) {
	limit, offset := req.Bounds()
	repo := repository.NewGormBookingRepository(s.db)

	var (
		items []model.Booking
		total int64
		err   error
	)
	switch actor.Role {
	case model.UserRoleCustomer:
		items, total, err = repo.ListByCustomer(ctx, actor.UserID, limit, offset)
	case model.UserRoleMaid:
		maid, merr := repository.NewGormMaidRepository(s.db).GetByUserID(ctx, actor.UserID)
		if merr != nil {
			return pagination.Page[model.Booking]{}, apperr.FromStore(merr, "maid profile")
		}
		items, total, err = repo.ListByMaid(ctx, maid.ID, limit, offset)
	default:
		return pagination.Page[model.Booking]{}, apperr.Wrap(apperr.ErrForbidden, "role %s has no booking history", actor.Role)
	}
	if err != nil {
		return pagination.Page[model.Booking]{}, apperr.FromStore(err, "bookings")
	}
	return pagination.New(items, req, total), nil
}

// ListOpen returns pending bookings for the job board.
func (s *Service) ListOpen(ctx context.Context, actor model.Actor, req pagination.Request) (pagination.Page[model.Booking], error) {
	if actor.Role != model.UserRoleMaid && !actor.Role.IsAdmin() {
		return pagination.Page[model.Booking]{}, apperr.Wrap(apperr.ErrForbidden, "only maids can browse open jobs")
	}
	limit, offset := req.Bounds()
	items, total, err := repository.NewGormBookingRepository(s.db).ListOpen(ctx, limit, offset)
	if err != nil {
		return pagination.Page[model.Booking]{}, apperr.FromStore(err, "open bookings")
	}
	return pagination.New(items, req, total), nil
}

func (s *Service) authorizeView(ctx context.Context, db *gorm.DB, actor model.Actor, b *model.Booking) error {
	if actor.Role.IsAdmin() {
		return nil
	}
	if actor.Role == model.UserRoleCustomer && b.CustomerID == actor.UserID {
		return nil
	}
	if actor.Role == model.UserRoleMaid {
		ok, err := s.isAssigned(ctx, db, actor, b)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return apperr.Wrap(apperr.ErrForbidden, "booking %s is not visible to user %d", b.Code, actor.UserID)
}

// isAssigned reports whether actor is the worker assigned to b.
func (s *Service) isAssigned(ctx context.Context, db *gorm.DB, actor model.Actor, b *model.Booking) (bool, error) {
	maidID, ok := b.Assignment()
	if !ok || actor.Role != model.UserRoleMaid {
		return false, nil
	}
	maid, err := repository.NewGormMaidRepository(db).GetByUserID(ctx, actor.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, nil
		}
		return false, apperr.FromStore(err, "maid profile")
	}
	return maid.ID == maidID, nil
}
