package marketplacev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type QuoteRequest struct {
	ServiceId uint64 `json:"serviceId"`
}

func (x *QuoteRequest) GetServiceId() uint64 {
	if x != nil {
		return x.ServiceId
	}
	return 0
}

type QuoteResponse struct {
	Price *PriceBreakdown `json:"price"`
}

type CreateBookingRequest struct {
	ServiceId       uint64                 `json:"serviceId"`
	ScheduledAt     *timestamppb.Timestamp `json:"scheduledAt"`
	DurationMin     int32                  `json:"durationMin"`
	Location        string                 `json:"location"`
	Latitude        *float64               `json:"latitude,omitempty"`
	Longitude       *float64               `json:"longitude,omitempty"`
	SpecialRequests string                 `json:"specialRequests,omitempty"`
}

func (x *CreateBookingRequest) GetServiceId() uint64 {
	if x != nil {
		return x.ServiceId
	}
	return 0
}

func (x *CreateBookingRequest) GetScheduledAt() *timestamppb.Timestamp {
	if x != nil {
		return x.ScheduledAt
	}
	return nil
}

type CreateBookingResponse struct {
	Booking *Booking        `json:"booking"`
	Price   *PriceBreakdown `json:"price"`
}

// BookingCodeRequest адресует бронирование по его коду.
type BookingCodeRequest struct {
	Code string `json:"code"`
}

func (x *BookingCodeRequest) GetCode() string {
	if x != nil {
		return x.Code
	}
	return ""
}

type BookingResponse struct {
	Booking *Booking `json:"booking"`
}

type ListBookingsRequest struct {
	Page *PageRequest `json:"page,omitempty"`
}

type ListBookingsResponse struct {
	Bookings []*Booking `json:"bookings"`
	PageInfo *PageInfo  `json:"pageInfo"`
}

type CancelBookingRequest struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

func (x *CancelBookingRequest) GetCode() string {
	if x != nil {
		return x.Code
	}
	return ""
}

func (x *CancelBookingRequest) GetReason() string {
	if x != nil {
		return x.Reason
	}
	return ""
}

type ReassignBookingRequest struct {
	Code   string `json:"code"`
	MaidId uint64 `json:"maidId"`
}

type InitiatePaymentRequest struct {
	Code   string `json:"code"`
	Method string `json:"method"`
}

type InitiatePaymentResponse struct {
	Booking *Booking `json:"booking"`
	Payment *Payment `json:"payment"`
}

type RateBookingRequest struct {
	Code   string `json:"code"`
	Score  int32  `json:"score"`
	Review string `json:"review,omitempty"`
}

type RateBookingResponse struct {
	Rating *Rating `json:"rating"`
}

const (
	BookingService_Quote_FullMethodName            = "/marketplace.v1.BookingService/Quote"
	BookingService_CreateBooking_FullMethodName    = "/marketplace.v1.BookingService/CreateBooking"
	BookingService_GetBooking_FullMethodName       = "/marketplace.v1.BookingService/GetBooking"
	BookingService_ListBookings_FullMethodName     = "/marketplace.v1.BookingService/ListBookings"
	BookingService_ListOpenBookings_FullMethodName = "/marketplace.v1.BookingService/ListOpenBookings"
	BookingService_AcceptBooking_FullMethodName    = "/marketplace.v1.BookingService/AcceptBooking"
	BookingService_StartBooking_FullMethodName     = "/marketplace.v1.BookingService/StartBooking"
	BookingService_CompleteBooking_FullMethodName  = "/marketplace.v1.BookingService/CompleteBooking"
	BookingService_CancelBooking_FullMethodName    = "/marketplace.v1.BookingService/CancelBooking"
	BookingService_MarkNoShow_FullMethodName       = "/marketplace.v1.BookingService/MarkNoShow"
	BookingService_ReassignBooking_FullMethodName  = "/marketplace.v1.BookingService/ReassignBooking"
	BookingService_InitiatePayment_FullMethodName  = "/marketplace.v1.BookingService/InitiatePayment"
	BookingService_ConfirmPayment_FullMethodName   = "/marketplace.v1.BookingService/ConfirmPayment"
	BookingService_FailPayment_FullMethodName      = "/marketplace.v1.BookingService/FailPayment"
	BookingService_RateBooking_FullMethodName      = "/marketplace.v1.BookingService/RateBooking"
)

// BookingServiceServer — серверная часть BookingService.
type BookingServiceServer interface {
	Quote(context.Context, *QuoteRequest) (*QuoteResponse, error)
	CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error)
	GetBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error)
	ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error)
	ListOpenBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error)
	AcceptBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error)
	StartBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error)
	CompleteBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error)
	CancelBooking(context.Context, *CancelBookingRequest) (*BookingResponse, error)
	MarkNoShow(context.Context, *BookingCodeRequest) (*BookingResponse, error)
	ReassignBooking(context.Context, *ReassignBookingRequest) (*BookingResponse, error)
	InitiatePayment(context.Context, *InitiatePaymentRequest) (*InitiatePaymentResponse, error)
	ConfirmPayment(context.Context, *BookingCodeRequest) (*BookingResponse, error)
	FailPayment(context.Context, *BookingCodeRequest) (*BookingResponse, error)
	RateBooking(context.Context, *RateBookingRequest) (*RateBookingResponse, error)
}

// UnimplementedBookingServiceServer answers Unimplemented to every method.
type UnimplementedBookingServiceServer struct{}

func (UnimplementedBookingServiceServer) Quote(context.Context, *QuoteRequest) (*QuoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Quote not implemented")
}
func (UnimplementedBookingServiceServer) CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateBooking not implemented")
}
func (UnimplementedBookingServiceServer) GetBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBooking not implemented")
}
func (UnimplementedBookingServiceServer) ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBookings not implemented")
}
func (UnimplementedBookingServiceServer) ListOpenBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOpenBookings not implemented")
}
func (UnimplementedBookingServiceServer) AcceptBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AcceptBooking not implemented")
}
func (UnimplementedBookingServiceServer) StartBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartBooking not implemented")
}
func (UnimplementedBookingServiceServer) CompleteBooking(context.Context, *BookingCodeRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteBooking not implemented")
}
func (UnimplementedBookingServiceServer) CancelBooking(context.Context, *CancelBookingRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelBooking not implemented")
}
func (UnimplementedBookingServiceServer) MarkNoShow(context.Context, *BookingCodeRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkNoShow not implemented")
}
func (UnimplementedBookingServiceServer) ReassignBooking(context.Context, *ReassignBookingRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReassignBooking not implemented")
}
func (UnimplementedBookingServiceServer) InitiatePayment(context.Context, *InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InitiatePayment not implemented")
}
func (UnimplementedBookingServiceServer) ConfirmPayment(context.Context, *BookingCodeRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmPayment not implemented")
}
func (UnimplementedBookingServiceServer) FailPayment(context.Context, *BookingCodeRequest) (*BookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FailPayment not implemented")
}
func (UnimplementedBookingServiceServer) RateBooking(context.Context, *RateBookingRequest) (*RateBookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RateBooking not implemented")
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingService_ServiceDesc, srv)
}

var BookingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "marketplace.v1.BookingService",
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Quote",
			Handler: unary(BookingService_Quote_FullMethodName, func(srv any, ctx context.Context, in *QuoteRequest) (*QuoteResponse, error) {
				return srv.(BookingServiceServer).Quote(ctx, in)
			}),
		},
		{
			MethodName: "CreateBooking",
			Handler: unary(BookingService_CreateBooking_FullMethodName, func(srv any, ctx context.Context, in *CreateBookingRequest) (*CreateBookingResponse, error) {
				return srv.(BookingServiceServer).CreateBooking(ctx, in)
			}),
		},
		{
			MethodName: "GetBooking",
			Handler: unary(BookingService_GetBooking_FullMethodName, func(srv any, ctx context.Context, in *BookingCodeRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).GetBooking(ctx, in)
			}),
		},
		{
			MethodName: "ListBookings",
			Handler: unary(BookingService_ListBookings_FullMethodName, func(srv any, ctx context.Context, in *ListBookingsRequest) (*ListBookingsResponse, error) {
				return srv.(BookingServiceServer).ListBookings(ctx, in)
			}),
		},
		{
			MethodName: "ListOpenBookings",
			Handler: unary(BookingService_ListOpenBookings_FullMethodName, func(srv any, ctx context.Context, in *ListBookingsRequest) (*ListBookingsResponse, error) {
				return srv.(BookingServiceServer).ListOpenBookings(ctx, in)
			}),
		},
		{
			MethodName: "AcceptBooking",
			Handler: unary(BookingService_AcceptBooking_FullMethodName, func(srv any, ctx context.Context, in *BookingCodeRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).AcceptBooking(ctx, in)
			}),
		},
		{
			MethodName: "StartBooking",
			Handler: unary(BookingService_StartBooking_FullMethodName, func(srv any, ctx context.Context, in *BookingCodeRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).StartBooking(ctx, in)
			}),
		},
		{
			MethodName: "CompleteBooking",
			Handler: unary(BookingService_CompleteBooking_FullMethodName, func(srv any, ctx context.Context, in *BookingCodeRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).CompleteBooking(ctx, in)
			}),
		},
		{
			MethodName: "CancelBooking",
			Handler: unary(BookingService_CancelBooking_FullMethodName, func(srv any, ctx context.Context, in *CancelBookingRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).CancelBooking(ctx, in)
			}),
		},
		{
			MethodName: "MarkNoShow",
			Handler: unary(BookingService_MarkNoShow_FullMethodName, func(srv any, ctx context.Context, in *BookingCodeRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).MarkNoShow(ctx, in)
			}),
		},
		{
			MethodName: "ReassignBooking",
			Handler: unary(BookingService_ReassignBooking_FullMethodName, func(srv any, ctx context.Context, in *ReassignBookingRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).ReassignBooking(ctx, in)
			}),
		},
		{
			MethodName: "InitiatePayment",
			Handler: unary(BookingService_InitiatePayment_FullMethodName, func(srv any, ctx context.Context, in *InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
				return srv.(BookingServiceServer).InitiatePayment(ctx, in)
			}),
		},
		{
			MethodName: "ConfirmPayment",
			Handler: unary(BookingService_ConfirmPayment_FullMethodName, func(srv any, ctx context.Context, in *BookingCodeRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).ConfirmPayment(ctx, in)
			}),
		},
		{
			MethodName: "FailPayment",
			Handler: unary(BookingService_FailPayment_FullMethodName, func(srv any, ctx context.Context, in *BookingCodeRequest) (*BookingResponse, error) {
				return srv.(BookingServiceServer).FailPayment(ctx, in)
			}),
		},
		{
			MethodName: "RateBooking",
			Handler: unary(BookingService_RateBooking_FullMethodName, func(srv any, ctx context.Context, in *RateBookingRequest) (*RateBookingResponse, error) {
				return srv.(BookingServiceServer).RateBooking(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "marketplace/v1/booking",
}

// BookingServiceClient — клиентская часть BookingService.
type BookingServiceClient interface {
	Quote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error)
	CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error)
	GetBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	ListBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error)
	ListOpenBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error)
	AcceptBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	StartBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	CompleteBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	CancelBooking(ctx context.Context, in *CancelBookingRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	MarkNoShow(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	ReassignBooking(ctx context.Context, in *ReassignBookingRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	InitiatePayment(ctx context.Context, in *InitiatePaymentRequest, opts ...grpc.CallOption) (*InitiatePaymentResponse, error)
	ConfirmPayment(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	FailPayment(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error)
	RateBooking(ctx context.Context, in *RateBookingRequest, opts ...grpc.CallOption) (*RateBookingResponse, error)
}

type bookingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingServiceClient(cc grpc.ClientConnInterface) BookingServiceClient {
	return &bookingServiceClient{cc: cc}
}

func (c *bookingServiceClient) Quote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	return invoke[QuoteResponse](ctx, c.cc, BookingService_Quote_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error) {
	return invoke[CreateBookingResponse](ctx, c.cc, BookingService_CreateBooking_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) GetBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_GetBooking_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) ListBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error) {
	return invoke[ListBookingsResponse](ctx, c.cc, BookingService_ListBookings_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) ListOpenBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error) {
	return invoke[ListBookingsResponse](ctx, c.cc, BookingService_ListOpenBookings_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) AcceptBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_AcceptBooking_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) StartBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_StartBooking_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) CompleteBooking(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_CompleteBooking_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) CancelBooking(ctx context.Context, in *CancelBookingRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_CancelBooking_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) MarkNoShow(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_MarkNoShow_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) ReassignBooking(ctx context.Context, in *ReassignBookingRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_ReassignBooking_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) InitiatePayment(ctx context.Context, in *InitiatePaymentRequest, opts ...grpc.CallOption) (*InitiatePaymentResponse, error) {
	return invoke[InitiatePaymentResponse](ctx, c.cc, BookingService_InitiatePayment_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) ConfirmPayment(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_ConfirmPayment_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) FailPayment(ctx context.Context, in *BookingCodeRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, BookingService_FailPayment_FullMethodName, in, opts...)
}

func (c *bookingServiceClient) RateBooking(ctx context.Context, in *RateBookingRequest, opts ...grpc.CallOption) (*RateBookingResponse, error) {
	return invoke[RateBookingResponse](ctx, c.cc, BookingService_RateBooking_FullMethodName, in, opts...)
}
