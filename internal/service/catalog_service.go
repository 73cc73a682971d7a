package service

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/Leganyst/maid-marketplace/internal/api/marketplace/v1"
	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/auth"
	"github.com/Leganyst/maid-marketplace/internal/catalog"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/pagination"
)

type CatalogService struct {
	pb.UnimplementedCatalogServiceServer

	catalog *catalog.Service
}

func NewCatalogService(c *catalog.Service) *CatalogService {
	return &CatalogService{catalog: c}
}

// ListServices — публичный каталог; токен нужен только для неактивных услуг.
func (s *CatalogService) ListServices(ctx context.Context, req *pb.ListServicesRequest) (*pb.ListServicesResponse, error) {
	actor, _ := auth.ActorFrom(ctx)
	page, err := s.catalog.List(ctx, actor, req.IncludeInactive, pageRequest(req.Page))
	if err != nil {
		return nil, err
	}
	items := pagination.Map(page, func(svc model.Service) *pb.Service { return mapService(&svc) })
	return &pb.ListServicesResponse{Services: items.Items, PageInfo: mapPageInfo(items)}, nil
}

func (s *CatalogService) SaveService(ctx context.Context, req *pb.SaveServiceRequest) (*pb.ServiceResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := s.catalog.Save(ctx, actor, catalog.ServiceInput{
		ID:            req.Id,
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		CommissionPct: req.CommissionPct,
	})
	if err != nil {
		return nil, err
	}
	return &pb.ServiceResponse{Service: mapService(svc)}, nil
}

func (s *CatalogService) SetServiceActive(ctx context.Context, req *pb.SetServiceActiveRequest) (*pb.ServiceResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := s.catalog.SetActive(ctx, actor, req.Id, req.IsActive)
	if err != nil {
		return nil, err
	}
	return &pb.ServiceResponse{Service: mapService(svc)}, nil
}

func (s *CatalogService) ListCommissionRules(ctx context.Context, req *pb.ListCommissionRulesRequest) (*pb.ListCommissionRulesResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.catalog.Rules(ctx, actor, req.ServiceId)
	if err != nil {
		return nil, err
	}
	out := make([]*pb.CommissionRule, 0, len(rules))
	for i := range rules {
		out = append(out, mapCommissionRule(&rules[i]))
	}
	return &pb.ListCommissionRulesResponse{Rules: out}, nil
}

func (s *CatalogService) AddCommissionRule(ctx context.Context, req *pb.AddCommissionRuleRequest) (*pb.CommissionRuleResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	from, err := optionalTime(req.EffectiveFrom, "effective_from")
	if err != nil {
		return nil, err
	}
	to, err := optionalTime(req.EffectiveTo, "effective_to")
	if err != nil {
		return nil, err
	}
	rule, err := s.catalog.AddRule(ctx, actor, catalog.RuleInput{
		ServiceID:      req.ServiceId,
		CommissionPct:  req.CommissionPct,
		PlatformFeePct: req.PlatformFeePct,
		GSTPct:         req.GstPct,
		EffectiveFrom:  from,
		EffectiveTo:    to,
	})
	if err != nil {
		return nil, err
	}
	return &pb.CommissionRuleResponse{Rule: mapCommissionRule(rule)}, nil
}

func (s *CatalogService) DeactivateCommissionRule(ctx context.Context, req *pb.DeactivateCommissionRuleRequest) (*pb.CommissionRuleResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	rule, err := s.catalog.DeactivateRule(ctx, actor, req.Id)
	if err != nil {
		return nil, err
	}
	return &pb.CommissionRuleResponse{Rule: mapCommissionRule(rule)}, nil
}

func optionalTime(ts *timestamppb.Timestamp, field string) (*time.Time, error) {
	if ts == nil {
		return nil, nil
	}
	if err := ts.CheckValid(); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "%s: %v", field, err)
	}
	t := ts.AsTime()
	return &t, nil
}
