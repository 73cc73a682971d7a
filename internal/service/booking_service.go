package service

import (
	"context"

	pb "github.com/Leganyst/maid-marketplace/internal/api/marketplace/v1"
	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/booking"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

type BookingService struct {
	pb.UnimplementedBookingServiceServer

	bookings *booking.Service
}

func NewBookingService(bookings *booking.Service) *BookingService {
	return &BookingService{bookings: bookings}
}

// Quote — предварительный расчёт стоимости услуги.
func (s *BookingService) Quote(ctx context.Context, req *pb.QuoteRequest) (*pb.QuoteResponse, error) {
	b, err := s.bookings.Quote(ctx, req.ServiceId)
	if err != nil {
		return nil, err
	}
	return &pb.QuoteResponse{Price: mapBreakdown(b)}, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, req *pb.CreateBookingRequest) (*pb.CreateBookingResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.ScheduledAt == nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "scheduled_at is required")
	}
	if err := req.ScheduledAt.CheckValid(); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "scheduled_at: %v", err)
	}

	created, err := s.bookings.Create(ctx, actor, booking.CreateRequest{
		ServiceID:       req.ServiceId,
		ScheduledAt:     req.ScheduledAt.AsTime(),
		DurationMin:     int(req.DurationMin),
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return nil, err
	}
	return &pb.CreateBookingResponse{
		Booking: mapBooking(created.Booking),
		Price:   mapBreakdown(created.Breakdown),
	}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, req *pb.BookingCodeRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, s.bookings.Get)
}

// ListBookings — бронирования вызывающего (как клиента или как исполнителя).
func (s *BookingService) ListBookings(ctx context.Context, req *pb.ListBookingsRequest) (*pb.ListBookingsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	page, err := s.bookings.List(ctx, actor, pageRequest(req.Page))
	if err != nil {
		return nil, err
	}
	return mapBookings(page), nil
}

// ListOpenBookings — лента ожидающих заказов для исполнителей.
func (s *BookingService) ListOpenBookings(ctx context.Context, req *pb.ListBookingsRequest) (*pb.ListBookingsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	page, err := s.bookings.ListOpen(ctx, actor, pageRequest(req.Page))
	if err != nil {
		return nil, err
	}
	return mapBookings(page), nil
}

func (s *BookingService) AcceptBooking(ctx context.Context, req *pb.BookingCodeRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, s.bookings.Accept)
}

func (s *BookingService) StartBooking(ctx context.Context, req *pb.BookingCodeRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, s.bookings.Start)
}

func (s *BookingService) CompleteBooking(ctx context.Context, req *pb.BookingCodeRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, s.bookings.Complete)
}

func (s *BookingService) CancelBooking(ctx context.Context, req *pb.CancelBookingRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, func(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
		return s.bookings.Cancel(ctx, actor, code, req.Reason)
	})
}

func (s *BookingService) MarkNoShow(ctx context.Context, req *pb.BookingCodeRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, s.bookings.MarkNoShow)
}

func (s *BookingService) ReassignBooking(ctx context.Context, req *pb.ReassignBookingRequest) (*pb.BookingResponse, error) {
	if req.MaidId == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "maid_id is required")
	}
	return s.byCode(ctx, req.Code, func(ctx context.Context, actor model.Actor, code string) (*model.Booking, error) {
		return s.bookings.Reassign(ctx, actor, code, req.MaidId)
	})
}

func (s *BookingService) InitiatePayment(ctx context.Context, req *pb.InitiatePaymentRequest) (*pb.InitiatePaymentResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireCode(req.Code); err != nil {
		return nil, err
	}
	b, p, err := s.bookings.InitiatePayment(ctx, actor, req.Code, model.PaymentMethod(req.Method))
	if err != nil {
		return nil, err
	}
	return &pb.InitiatePaymentResponse{Booking: mapBooking(b), Payment: mapPayment(p)}, nil
}

func (s *BookingService) ConfirmPayment(ctx context.Context, req *pb.BookingCodeRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, s.bookings.ConfirmPayment)
}

func (s *BookingService) FailPayment(ctx context.Context, req *pb.BookingCodeRequest) (*pb.BookingResponse, error) {
	return s.byCode(ctx, req.Code, s.bookings.FailPayment)
}

func (s *BookingService) RateBooking(ctx context.Context, req *pb.RateBookingRequest) (*pb.RateBookingResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireCode(req.Code); err != nil {
		return nil, err
	}
	r, err := s.bookings.Rate(ctx, actor, req.Code, int(req.Score), req.Review)
	if err != nil {
		return nil, err
	}
	return &pb.RateBookingResponse{Rating: mapRating(r)}, nil
}

type codeOp func(ctx context.Context, actor model.Actor, code string) (*model.Booking, error)

func (s *BookingService) byCode(ctx context.Context, code string, op codeOp) (*pb.BookingResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireCode(code); err != nil {
		return nil, err
	}
	b, err := op(ctx, actor, code)
	if err != nil {
		return nil, err
	}
	return &pb.BookingResponse{Booking: mapBooking(b)}, nil
}

func requireCode(code string) error {
	if code == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "booking code is required")
	}
	return nil
}
