package marketplacev1

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type Service struct {
	Id            uint64                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description,omitempty"`
	BasePrice     decimal.Decimal        `json:"basePrice"`
	CommissionPct decimal.Decimal        `json:"commissionPct"`
	IsActive      bool                   `json:"isActive"`
	CreatedAt     *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type CommissionRule struct {
	Id             uint64                 `json:"id"`
	ServiceId      uint64                 `json:"serviceId"`
	CommissionPct  decimal.Decimal        `json:"commissionPct"`
	PlatformFeePct decimal.Decimal        `json:"platformFeePct"`
	GstPct         decimal.Decimal        `json:"gstPct"`
	IsActive       bool                   `json:"isActive"`
	EffectiveFrom  *timestamppb.Timestamp `json:"effectiveFrom"`
	EffectiveTo    *timestamppb.Timestamp `json:"effectiveTo,omitempty"`
}

type ListServicesRequest struct {
	// Неактивные услуги видит только администратор.
	IncludeInactive bool         `json:"includeInactive,omitempty"`
	Page            *PageRequest `json:"page,omitempty"`
}

type ListServicesResponse struct {
	Services []*Service `json:"services"`
	PageInfo *PageInfo  `json:"pageInfo"`
}

// SaveServiceRequest создаёт услугу (id = 0) или обновляет существующую.
type SaveServiceRequest struct {
	Id            uint64          `json:"id,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	CommissionPct decimal.Decimal `json:"commissionPct"`
}

type SetServiceActiveRequest struct {
	Id       uint64 `json:"id"`
	IsActive bool   `json:"isActive"`
}

type ServiceResponse struct {
	Service *Service `json:"service"`
}

type ListCommissionRulesRequest struct {
	ServiceId uint64 `json:"serviceId"`
}

type ListCommissionRulesResponse struct {
	Rules []*CommissionRule `json:"rules"`
}

type AddCommissionRuleRequest struct {
	ServiceId      uint64          `json:"serviceId"`
	CommissionPct  decimal.Decimal `json:"commissionPct"`
	PlatformFeePct decimal.Decimal `json:"platformFeePct"`
	// nil — 18%.
	GstPct        *decimal.Decimal       `json:"gstPct,omitempty"`
	EffectiveFrom *timestamppb.Timestamp `json:"effectiveFrom,omitempty"`
	EffectiveTo   *timestamppb.Timestamp `json:"effectiveTo,omitempty"`
}

type DeactivateCommissionRuleRequest struct {
	Id uint64 `json:"id"`
}

type CommissionRuleResponse struct {
	Rule *CommissionRule `json:"rule"`
}

const (
	CatalogService_ListServices_FullMethodName             = "/marketplace.v1.CatalogService/ListServices"
	CatalogService_SaveService_FullMethodName              = "/marketplace.v1.CatalogService/SaveService"
	CatalogService_SetServiceActive_FullMethodName         = "/marketplace.v1.CatalogService/SetServiceActive"
	CatalogService_ListCommissionRules_FullMethodName      = "/marketplace.v1.CatalogService/ListCommissionRules"
	CatalogService_AddCommissionRule_FullMethodName        = "/marketplace.v1.CatalogService/AddCommissionRule"
	CatalogService_DeactivateCommissionRule_FullMethodName = "/marketplace.v1.CatalogService/DeactivateCommissionRule"
)

// CatalogServiceServer — серверная часть CatalogService.
type CatalogServiceServer interface {
	ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
	SaveService(context.Context, *SaveServiceRequest) (*ServiceResponse, error)
	SetServiceActive(context.Context, *SetServiceActiveRequest) (*ServiceResponse, error)
	ListCommissionRules(context.Context, *ListCommissionRulesRequest) (*ListCommissionRulesResponse, error)
	AddCommissionRule(context.Context, *AddCommissionRuleRequest) (*CommissionRuleResponse, error)
	DeactivateCommissionRule(context.Context, *DeactivateCommissionRuleRequest) (*CommissionRuleResponse, error)
}

// UnimplementedCatalogServiceServer answers Unimplemented to every method.
type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListServices not implemented")
}
func (UnimplementedCatalogServiceServer) SaveService(context.Context, *SaveServiceRequest) (*ServiceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveService not implemented")
}
func (UnimplementedCatalogServiceServer) SetServiceActive(context.Context, *SetServiceActiveRequest) (*ServiceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetServiceActive not implemented")
}
func (UnimplementedCatalogServiceServer) ListCommissionRules(context.Context, *ListCommissionRulesRequest) (*ListCommissionRulesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCommissionRules not implemented")
}
func (UnimplementedCatalogServiceServer) AddCommissionRule(context.Context, *AddCommissionRuleRequest) (*CommissionRuleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddCommissionRule not implemented")
}
func (UnimplementedCatalogServiceServer) DeactivateCommissionRule(context.Context, *DeactivateCommissionRuleRequest) (*CommissionRuleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeactivateCommissionRule not implemented")
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "marketplace.v1.CatalogService",
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListServices",
			Handler: unary(CatalogService_ListServices_FullMethodName, func(srv any, ctx context.Context, in *ListServicesRequest) (*ListServicesResponse, error) {
				return srv.(CatalogServiceServer).ListServices(ctx, in)
			}),
		},
		{
			MethodName: "SaveService",
			Handler: unary(CatalogService_SaveService_FullMethodName, func(srv any, ctx context.Context, in *SaveServiceRequest) (*ServiceResponse, error) {
				return srv.(CatalogServiceServer).SaveService(ctx, in)
			}),
		},
		{
			MethodName: "SetServiceActive",
			Handler: unary(CatalogService_SetServiceActive_FullMethodName, func(srv any, ctx context.Context, in *SetServiceActiveRequest) (*ServiceResponse, error) {
				return srv.(CatalogServiceServer).SetServiceActive(ctx, in)
			}),
		},
		{
			MethodName: "ListCommissionRules",
			Handler: unary(CatalogService_ListCommissionRules_FullMethodName, func(srv any, ctx context.Context, in *ListCommissionRulesRequest) (*ListCommissionRulesResponse, error) {
				return srv.(CatalogServiceServer).ListCommissionRules(ctx, in)
			}),
		},
		{
			MethodName: "AddCommissionRule",
			Handler: unary(CatalogService_AddCommissionRule_FullMethodName, func(srv any, ctx context.Context, in *AddCommissionRuleRequest) (*CommissionRuleResponse, error) {
				return srv.(CatalogServiceServer).AddCommissionRule(ctx, in)
			}),
		},
		{
			MethodName: "DeactivateCommissionRule",
			Handler: unary(CatalogService_DeactivateCommissionRule_FullMethodName, func(srv any, ctx context.Context, in *DeactivateCommissionRuleRequest) (*CommissionRuleResponse, error) {
				return srv.(CatalogServiceServer).DeactivateCommissionRule(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "marketplace/v1/catalog",
}

// CatalogServiceClient — клиентская часть CatalogService.
type CatalogServiceClient interface {
	ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error)
	SaveService(ctx context.Context, in *SaveServiceRequest, opts ...grpc.CallOption) (*ServiceResponse, error)
	SetServiceActive(ctx context.Context, in *SetServiceActiveRequest, opts ...grpc.CallOption) (*ServiceResponse, error)
	ListCommissionRules(ctx context.Context, in *ListCommissionRulesRequest, opts ...grpc.CallOption) (*ListCommissionRulesResponse, error)
	AddCommissionRule(ctx context.Context, in *AddCommissionRuleRequest, opts ...grpc.CallOption) (*CommissionRuleResponse, error)
	DeactivateCommissionRule(ctx context.Context, in *DeactivateCommissionRuleRequest, opts ...grpc.CallOption) (*CommissionRuleResponse, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func (c *catalogServiceClient) ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error) {
	return invoke[ListServicesResponse](ctx, c.cc, CatalogService_ListServices_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) SaveService(ctx context.Context, in *SaveServiceRequest, opts ...grpc.CallOption) (*ServiceResponse, error) {
	return invoke[ServiceResponse](ctx, c.cc, CatalogService_SaveService_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) SetServiceActive(ctx context.Context, in *SetServiceActiveRequest, opts ...grpc.CallOption) (*ServiceResponse, error) {
	return invoke[ServiceResponse](ctx, c.cc, CatalogService_SetServiceActive_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) ListCommissionRules(ctx context.Context, in *ListCommissionRulesRequest, opts ...grpc.CallOption) (*ListCommissionRulesResponse, error) {
	return invoke[ListCommissionRulesResponse](ctx, c.cc, CatalogService_ListCommissionRules_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) AddCommissionRule(ctx context.Context, in *AddCommissionRuleRequest, opts ...grpc.CallOption) (*CommissionRuleResponse, error) {
	return invoke[CommissionRuleResponse](ctx, c.cc, CatalogService_AddCommissionRule_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) DeactivateCommissionRule(ctx context.Context, in *DeactivateCommissionRuleRequest, opts ...grpc.CallOption) (*CommissionRuleResponse, error) {
	return invoke[CommissionRuleResponse](ctx, c.cc, CatalogService_DeactivateCommissionRule_FullMethodName, in, opts...)
}
