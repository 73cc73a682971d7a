package marketplacev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type RequestOTPRequest struct {
	Phone string `json:"phone"`
}

func (x *RequestOTPRequest) GetPhone() string {
	if x != nil {
		return x.Phone
	}
	return ""
}

type RequestOTPResponse struct {
	Sent             bool  `json:"sent"`
	ExpiresInSeconds int64 `json:"expiresInSeconds"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (x *VerifyOTPRequest) GetPhone() string {
	if x != nil {
		return x.Phone
	}
	return ""
}

func (x *VerifyOTPRequest) GetCode() string {
	if x != nil {
		return x.Code
	}
	return ""
}

type VerifyOTPResponse struct {
	Token     string                 `json:"token"`
	ExpiresAt *timestamppb.Timestamp `json:"expiresAt"`
	User      *User                  `json:"user"`
	IsNewUser bool                   `json:"isNewUser"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	User   *User        `json:"user"`
	Wallet *Wallet      `json:"wallet,omitempty"`
	Maid   *MaidProfile `json:"maid,omitempty"`

	// Только для исполнителей.
	AverageRating float64   `json:"averageRating,omitempty"`
	TotalRatings  int64     `json:"totalRatings,omitempty"`
	RecentRatings []*Rating `json:"recentRatings,omitempty"`
}

type SetRoleRequest struct {
	UserId uint64 `json:"userId"`
	Role   string `json:"role"`
}

func (x *SetRoleRequest) GetUserId() uint64 {
	if x != nil {
		return x.UserId
	}
	return 0
}

func (x *SetRoleRequest) GetRole() string {
	if x != nil {
		return x.Role
	}
	return ""
}

type SetRoleResponse struct {
	User *User `json:"user"`
}

type SetUserActiveRequest struct {
	UserId uint64 `json:"userId"`
	Active bool   `json:"active"`
}

type SetUserActiveResponse struct{}

type UpdateMaidProfileRequest struct {
	Bio             string `json:"bio"`
	ExperienceYears int32  `json:"experienceYears"`
	IsAvailable     bool   `json:"isAvailable"`
	AvailableFrom   string `json:"availableFrom"`
	AvailableTo     string `json:"availableTo"`
}

type UpdateMaidProfileResponse struct {
	Maid *MaidProfile `json:"maid"`
}

type ListNotificationsRequest struct {
	UnreadOnly bool         `json:"unreadOnly"`
	Page       *PageRequest `json:"page,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	PageInfo      *PageInfo       `json:"pageInfo"`
}

type MarkNotificationReadRequest struct {
	Id uint64 `json:"id"`
}

type MarkNotificationReadResponse struct{}

const (
	IdentityService_RequestOTP_FullMethodName           = "/marketplace.v1.IdentityService/RequestOTP"
	IdentityService_VerifyOTP_FullMethodName            = "/marketplace.v1.IdentityService/VerifyOTP"
	IdentityService_GetProfile_FullMethodName           = "/marketplace.v1.IdentityService/GetProfile"
	IdentityService_SetRole_FullMethodName              = "/marketplace.v1.IdentityService/SetRole"
	IdentityService_SetUserActive_FullMethodName        = "/marketplace.v1.IdentityService/SetUserActive"
	IdentityService_UpdateMaidProfile_FullMethodName    = "/marketplace.v1.IdentityService/UpdateMaidProfile"
	IdentityService_ListNotifications_FullMethodName    = "/marketplace.v1.IdentityService/ListNotifications"
	IdentityService_MarkNotificationRead_FullMethodName = "/marketplace.v1.IdentityService/MarkNotificationRead"
)

// IdentityServiceServer — серверная часть IdentityService.
type IdentityServiceServer interface {
	RequestOTP(context.Context, *RequestOTPRequest) (*RequestOTPResponse, error)
	VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	SetRole(context.Context, *SetRoleRequest) (*SetRoleResponse, error)
	SetUserActive(context.Context, *SetUserActiveRequest) (*SetUserActiveResponse, error)
	UpdateMaidProfile(context.Context, *UpdateMaidProfileRequest) (*UpdateMaidProfileResponse, error)
	ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error)
	MarkNotificationRead(context.Context, *MarkNotificationReadRequest) (*MarkNotificationReadResponse, error)
}

// UnimplementedIdentityServiceServer answers Unimplemented to every method.
type UnimplementedIdentityServiceServer struct{}

func (UnimplementedIdentityServiceServer) RequestOTP(context.Context, *RequestOTPRequest) (*RequestOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestOTP not implemented")
}
func (UnimplementedIdentityServiceServer) VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyOTP not implemented")
}
func (UnimplementedIdentityServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedIdentityServiceServer) SetRole(context.Context, *SetRoleRequest) (*SetRoleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetRole not implemented")
}
func (UnimplementedIdentityServiceServer) SetUserActive(context.Context, *SetUserActiveRequest) (*SetUserActiveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetUserActive not implemented")
}
func (UnimplementedIdentityServiceServer) UpdateMaidProfile(context.Context, *UpdateMaidProfileRequest) (*UpdateMaidProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateMaidProfile not implemented")
}
func (UnimplementedIdentityServiceServer) ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListNotifications not implemented")
}
func (UnimplementedIdentityServiceServer) MarkNotificationRead(context.Context, *MarkNotificationReadRequest) (*MarkNotificationReadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkNotificationRead not implemented")
}

func RegisterIdentityServiceServer(s grpc.ServiceRegistrar, srv IdentityServiceServer) {
	s.RegisterService(&IdentityService_ServiceDesc, srv)
}

var IdentityService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "marketplace.v1.IdentityService",
	HandlerType: (*IdentityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RequestOTP",
			Handler: unary(IdentityService_RequestOTP_FullMethodName, func(srv any, ctx context.Context, in *RequestOTPRequest) (*RequestOTPResponse, error) {
				return srv.(IdentityServiceServer).RequestOTP(ctx, in)
			}),
		},
		{
			MethodName: "VerifyOTP",
			Handler: unary(IdentityService_VerifyOTP_FullMethodName, func(srv any, ctx context.Context, in *VerifyOTPRequest) (*VerifyOTPResponse, error) {
				return srv.(IdentityServiceServer).VerifyOTP(ctx, in)
			}),
		},
		{
			MethodName: "GetProfile",
			Handler: unary(IdentityService_GetProfile_FullMethodName, func(srv any, ctx context.Context, in *GetProfileRequest) (*GetProfileResponse, error) {
				return srv.(IdentityServiceServer).GetProfile(ctx, in)
			}),
		},
		{
			MethodName: "SetRole",
			Handler: unary(IdentityService_SetRole_FullMethodName, func(srv any, ctx context.Context, in *SetRoleRequest) (*SetRoleResponse, error) {
				return srv.(IdentityServiceServer).SetRole(ctx, in)
			}),
		},
		{
			MethodName: "SetUserActive",
			Handler: unary(IdentityService_SetUserActive_FullMethodName, func(srv any, ctx context.Context, in *SetUserActiveRequest) (*SetUserActiveResponse, error) {
				return srv.(IdentityServiceServer).SetUserActive(ctx, in)
			}),
		},
		{
			MethodName: "UpdateMaidProfile",
			Handler: unary(IdentityService_UpdateMaidProfile_FullMethodName, func(srv any, ctx context.Context, in *UpdateMaidProfileRequest) (*UpdateMaidProfileResponse, error) {
				return srv.(IdentityServiceServer).UpdateMaidProfile(ctx, in)
			}),
		},
		{
			MethodName: "ListNotifications",
			Handler: unary(IdentityService_ListNotifications_FullMethodName, func(srv any, ctx context.Context, in *ListNotificationsRequest) (*ListNotificationsResponse, error) {
				return srv.(IdentityServiceServer).ListNotifications(ctx, in)
			}),
		},
		{
			MethodName: "MarkNotificationRead",
			Handler: unary(IdentityService_MarkNotificationRead_FullMethodName, func(srv any, ctx context.Context, in *MarkNotificationReadRequest) (*MarkNotificationReadResponse, error) {
				return srv.(IdentityServiceServer).MarkNotificationRead(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "marketplace/v1/identity",
}

// IdentityServiceClient — клиентская часть IdentityService.
type IdentityServiceClient interface {
	RequestOTP(ctx context.Context, in *RequestOTPRequest, opts ...grpc.CallOption) (*RequestOTPResponse, error)
	VerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*VerifyOTPResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	SetRole(ctx context.Context, in *SetRoleRequest, opts ...grpc.CallOption) (*SetRoleResponse, error)
	SetUserActive(ctx context.Context, in *SetUserActiveRequest, opts ...grpc.CallOption) (*SetUserActiveResponse, error)
	UpdateMaidProfile(ctx context.Context, in *UpdateMaidProfileRequest, opts ...grpc.CallOption) (*UpdateMaidProfileResponse, error)
	ListNotifications(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error)
	MarkNotificationRead(ctx context.Context, in *MarkNotificationReadRequest, opts ...grpc.CallOption) (*MarkNotificationReadResponse, error)
}

type identityServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityServiceClient(cc grpc.ClientConnInterface) IdentityServiceClient {
	return &identityServiceClient{cc: cc}
}

func (c *identityServiceClient) RequestOTP(ctx context.Context, in *RequestOTPRequest, opts ...grpc.CallOption) (*RequestOTPResponse, error) {
	return invoke[RequestOTPResponse](ctx, c.cc, IdentityService_RequestOTP_FullMethodName, in, opts...)
}

func (c *identityServiceClient) VerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*VerifyOTPResponse, error) {
	return invoke[VerifyOTPResponse](ctx, c.cc, IdentityService_VerifyOTP_FullMethodName, in, opts...)
}

func (c *identityServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, IdentityService_GetProfile_FullMethodName, in, opts...)
}

func (c *identityServiceClient) SetRole(ctx context.Context, in *SetRoleRequest, opts ...grpc.CallOption) (*SetRoleResponse, error) {
	return invoke[SetRoleResponse](ctx, c.cc, IdentityService_SetRole_FullMethodName, in, opts...)
}

func (c *identityServiceClient) SetUserActive(ctx context.Context, in *SetUserActiveRequest, opts ...grpc.CallOption) (*SetUserActiveResponse, error) {
	return invoke[SetUserActiveResponse](ctx, c.cc, IdentityService_SetUserActive_FullMethodName, in, opts...)
}

func (c *identityServiceClient) UpdateMaidProfile(ctx context.Context, in *UpdateMaidProfileRequest, opts ...grpc.CallOption) (*UpdateMaidProfileResponse, error) {
	return invoke[UpdateMaidProfileResponse](ctx, c.cc, IdentityService_UpdateMaidProfile_FullMethodName, in, opts...)
}

func (c *identityServiceClient) ListNotifications(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error) {
	return invoke[ListNotificationsResponse](ctx, c.cc, IdentityService_ListNotifications_FullMethodName, in, opts...)
}

func (c *identityServiceClient) MarkNotificationRead(ctx context.Context, in *MarkNotificationReadRequest, opts ...grpc.CallOption) (*MarkNotificationReadResponse, error) {
	return invoke[MarkNotificationReadResponse](ctx, c.cc, IdentityService_MarkNotificationRead_FullMethodName, in, opts...)
}
