// Package catalog manages the services customers can book and the commission
// rules that price them. Listing active services is public; every change is
// reserved for admins and written to the audit log.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/pagination"
	"github.com/Leganyst/maid-marketplace/internal/pricing"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	db  *gorm.DB
	log *slog.Logger
	now func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{db: db, log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// ServiceInput — поля услуги, которые задаёт администратор. ID 0 создаёт новую услугу.
type ServiceInput struct {
	ID            uint64
	Name          string
	Description   string
	BasePrice     decimal.Decimal
	CommissionPct decimal.Decimal // 0 — стандартные 20%
}

// RuleInput describes a commission rule. A nil GSTPct means the default 18%,
// a nil EffectiveFrom means "from now".
type RuleInput struct {
	ServiceID      uint64
	CommissionPct  decimal.Decimal
	PlatformFeePct decimal.Decimal
	GSTPct         *decimal.Decimal
	EffectiveFrom  *time.Time
	EffectiveTo    *time.Time
}

func requireAdmin(actor model.Actor) error {
	if !actor.Role.IsAdmin() {
		return apperr.Wrap(apperr.ErrForbidden, "only admins can manage the catalog")
	}
	return nil
}

// List returns services ordered by name. Only admins may see inactive ones.
func (s *Service) List(ctx context.Context, actor model.Actor, includeInactive bool, req pagination.Request) (pagination.Page[model.Service], error) {
	if includeInactive {
		if err := requireAdmin(actor); err != nil {
			return pagination.Page[model.Service]{}, err
		}
	}
	limit, offset := req.Bounds()
	items, total, err := repository.NewGormServiceRepository(s.db).List(ctx, !includeInactive, limit, offset)
	if err != nil {
		return pagination.Page[model.Service]{}, apperr.FromStore(err, "services")
	}
	return pagination.New(items, req, total), nil
}

// Save creates a service or updates an existing one.
func (s *Service) Save(ctx context.Context, actor model.Actor, in ServiceInput) (*model.Service, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	svc := model.Service{
		ID:            in.ID,
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		BasePrice:     in.BasePrice.Round(2),
		CommissionPct: in.CommissionPct,
		IsActive:      true,
	}
	if svc.CommissionPct.IsZero() {
		svc.CommissionPct = pricing.DefaultCommissionPct
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	if svc.CommissionPct.IsNegative() || svc.CommissionPct.GreaterThan(hundred) {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "commission percentage must be within [0,100], got %s", svc.CommissionPct)
	}

	var out *model.Service
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewGormServiceRepository(tx)
		if svc.ID == 0 {
			if err := repo.Create(ctx, &svc); err != nil {
				return apperr.FromStore(err, "create service")
			}
		} else {
			if _, err := repo.GetByID(ctx, svc.ID); err != nil {
				return apperr.FromStore(err, "service")
			}
			if err := repo.Update(ctx, &svc); err != nil {
				return apperr.FromStore(err, "update service")
			}
		}
		err := repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeServiceSaved, &actor.UserID, nil, map[string]any{
			"serviceId": svc.ID,
			"name":      svc.Name,
			"basePrice": svc.BasePrice.String(),
		})
		if err != nil {
			return apperr.FromStore(err, "audit event")
		}

		var gerr error
		out, gerr = repo.GetByID(ctx, svc.ID)
		return apperr.FromStore(gerr, "reload service")
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "service saved",
		slog.Uint64("service_id", out.ID),
		slog.String("name", out.Name),
		slog.String("base_price", out.BasePrice.String()),
	)
	return out, nil
}

// SetActive switches a service on or off. Inactive services cannot be quoted or booked;
// existing bookings are not touched.
func (s *Service) SetActive(ctx context.Context, actor model.Actor, id uint64, active bool) (*model.Service, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var out *model.Service
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewGormServiceRepository(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return apperr.FromStore(err, "service")
		}
		if err := repo.SetActive(ctx, id, active); err != nil {
			return apperr.FromStore(err, "service status")
		}
		err := repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeServiceSaved, &actor.UserID, nil, map[string]any{
			"serviceId": id,
			"isActive":  active,
		})
		if err != nil {
			return apperr.FromStore(err, "audit event")
		}

		var gerr error
		out, gerr = repo.GetByID(ctx, id)
		return apperr.FromStore(gerr, "reload service")
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Rules lists the commission rules of a service, latest effective first.
func (s *Service) Rules(ctx context.Context, actor model.Actor, serviceID uint64) ([]model.CommissionRule, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	repo := repository.NewGormServiceRepository(s.db)
	if _, err := repo.GetByID(ctx, serviceID); err != nil {
		return nil, apperr.FromStore(err, "service")
	}
	rules, err := repo.ListCommissionRules(ctx, serviceID)
	if err != nil {
		return nil, apperr.FromStore(err, "commission rules")
	}
	return rules, nil
}

// AddRule stores a new commission rule. Among overlapping rules the one with the
// latest effective_from wins, so a new rule supersedes older ones from its start.
func (s *Service) AddRule(ctx context.Context, actor model.Actor, in RuleInput) (*model.CommissionRule, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	from := s.now().UTC()
	if in.EffectiveFrom != nil {
		from = in.EffectiveFrom.UTC()
	}
	gst := pricing.DefaultGSTPct
	if in.GSTPct != nil {
		gst = *in.GSTPct
	}
	rule := model.CommissionRule{
		ServiceID:      in.ServiceID,
		CommissionPct:  in.CommissionPct,
		PlatformFeePct: in.PlatformFeePct,
		GSTPct:         gst,
		IsActive:       true,
		EffectiveFrom:  from,
	}
	if in.EffectiveTo != nil {
		to := in.EffectiveTo.UTC()
		rule.EffectiveTo = &to
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	for _, pct := range []decimal.Decimal{rule.CommissionPct, rule.PlatformFeePct, rule.GSTPct} {
		if pct.GreaterThan(hundred) {
			return nil, apperr.Wrap(apperr.ErrInvalidArgument, "commission rule percentages must not exceed 100, got %s", pct)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewGormServiceRepository(tx)
		if _, err := repo.GetByID(ctx, rule.ServiceID); err != nil {
			return apperr.FromStore(err, "service")
		}
		if err := repo.CreateCommissionRule(ctx, &rule); err != nil {
			return apperr.FromStore(err, "create commission rule")
		}
		err := repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeCommissionRuleChanged, &actor.UserID, nil, map[string]any{
			"ruleId":         rule.ID,
			"serviceId":      rule.ServiceID,
			"commissionPct":  rule.CommissionPct.String(),
			"platformFeePct": rule.PlatformFeePct.String(),
			"gstPct":         rule.GSTPct.String(),
		})
		return apperr.FromStore(err, "audit event")
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "commission rule added",
		slog.Uint64("rule_id", rule.ID),
		slog.Uint64("service_id", rule.ServiceID),
		slog.Time("effective_from", rule.EffectiveFrom),
	)
	return &rule, nil
}

// DeactivateRule switches a rule off; pricing falls back to the next applicable rule or the defaults.
func (s *Service) DeactivateRule(ctx context.Context, actor model.Actor, ruleID uint64) (*model.CommissionRule, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var out *model.CommissionRule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewGormServiceRepository(tx)
		if _, err := repo.GetCommissionRule(ctx, ruleID); err != nil {
			return apperr.FromStore(err, "commission rule")
		}
		if err := repo.SetCommissionRuleActive(ctx, ruleID, false); err != nil {
			return apperr.FromStore(err, "commission rule status")
		}
		err := repository.NewGormEventRepository(tx).Record(ctx, model.EventTypeCommissionRuleChanged, &actor.UserID, nil, map[string]any{
			"ruleId":   ruleID,
			"isActive": false,
		})
		if err != nil {
			return apperr.FromStore(err, "audit event")
		}

		var gerr error
		out, gerr = repo.GetCommissionRule(ctx, ruleID)
		return apperr.FromStore(gerr, "reload commission rule")
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
