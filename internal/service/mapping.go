package service

import (
	"encoding/json"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/Leganyst/maid-marketplace/internal/api/marketplace/v1"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/pagination"
	"github.com/Leganyst/maid-marketplace/internal/pricing"
)

func timestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil || t.IsZero() {
		return nil
	}
	return timestamppb.New(*t)
}

func pageRequest(p *pb.PageRequest) pagination.Request {
	return pagination.Request{Page: int(p.GetPage()), PageSize: int(p.GetPageSize())}
}

func mapPageInfo[T any](p pagination.Page[T]) *pb.PageInfo {
	return &pb.PageInfo{
		Page:       int32(p.Page),
		PageSize:   int32(p.PageSize),
		TotalCount: p.Total,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func mapUser(u *model.User) *pb.User {
	if u == nil {
		return nil
	}
	out := &pb.User{
		Id:             u.ID,
		Phone:          u.Phone,
		Name:           u.Name,
		Role:           string(u.Role),
		IsActive:       u.IsActive,
		LastSignedInAt: timestamp(u.LastSignedInAt),
		CreatedAt:      timestamp(&u.CreatedAt),
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	return out
}

func mapMaid(m *model.Maid) *pb.MaidProfile {
	if m == nil {
		return nil
	}
	return &pb.MaidProfile{
		Id:                 m.ID,
		UserId:             m.UserID,
		Bio:                m.Bio,
		ExperienceYears:    int32(m.ExperienceYears),
		IsAvailable:        m.IsAvailable,
		AvailableFrom:      m.AvailableFrom,
		AvailableTo:        m.AvailableTo,
		VerificationStatus: string(m.VerificationStatus),
		TotalJobs:          int32(m.TotalJobs),
	}
}

func mapWallet(w *model.Wallet) *pb.Wallet {
	if w == nil {
		return nil
	}
	return &pb.Wallet{
		Id:             w.ID,
		UserId:         w.UserID,
		Balance:        w.Balance,
		TotalEarnings:  w.TotalEarnings,
		TotalWithdrawn: w.TotalWithdrawn,
		TotalRefunded:  w.TotalRefunded,
	}
}

func mapTransaction(t model.WalletTransaction) *pb.WalletTransaction {
	out := &pb.WalletTransaction{
		Id:            t.ID,
		WalletId:      t.WalletID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Description:   t.Description,
		CreatedAt:     timestamp(&t.CreatedAt),
	}
	if t.BookingID != nil {
		out.BookingId = *t.BookingID
	}
	if t.PaymentID != nil {
		out.PaymentId = *t.PaymentID
	}
	return out
}

func mapBreakdown(b pricing.Breakdown) *pb.PriceBreakdown {
	return &pb.PriceBreakdown{
		BasePrice:   b.BasePrice,
		Commission:  b.Commission,
		PlatformFee: b.PlatformFee,
		Gst:         b.GST,
		TotalAmount: b.TotalAmount,
		MaidAmount:  b.MaidAmount,
	}
}

func mapBooking(b *model.Booking) *pb.Booking {
	if b == nil {
		return nil
	}
	out := &pb.Booking{
		Id:                 b.ID,
		Code:               b.Code,
		CustomerId:         b.CustomerID,
		ServiceId:          b.ServiceID,
		ScheduledAt:        timestamp(&b.ScheduledAt),
		ScheduledEndAt:     timestamp(&b.ScheduledEndAt),
		DurationMin:        int32(b.DurationMin),
		Location:           b.Location,
		Latitude:           b.Latitude,
		Longitude:          b.Longitude,
		SpecialRequests:    b.SpecialRequests,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Price:              mapBreakdown(b.Price.Breakdown()),
		QuotedPrice:        b.QuotedPrice,
		CancellationReason: b.CancellationReason,
		CreatedAt:          timestamp(&b.CreatedAt),
	}
	if maidID, ok := b.Assignment(); ok {
		out.MaidId = maidID
	}
	if b.FinalPrice.Valid {
		fp := b.FinalPrice.Decimal
		out.FinalPrice = &fp
	}
	if b.CancelledBy != nil {
		out.CancelledBy = string(*b.CancelledBy)
	}
	return out
}

func mapBookings(p pagination.Page[model.Booking]) *pb.ListBookingsResponse {
	items := pagination.Map(p, func(b model.Booking) *pb.Booking { return mapBooking(&b) })
	return &pb.ListBookingsResponse{Bookings: items.Items, PageInfo: mapPageInfo(items)}
}

func mapPayment(p *model.Payment) *pb.Payment {
	if p == nil {
		return nil
	}
	return &pb.Payment{
		Id:         p.ID,
		BookingId:  p.BookingID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Method:     string(p.Method),
		GatewayRef: p.GatewayRef,
		Status:     string(p.Status),
	}
}

func mapRating(r *model.Rating) *pb.Rating {
	if r == nil {
		return nil
	}
	return &pb.Rating{
		Id:        r.ID,
		BookingId: r.BookingID,
		MaidId:    r.MaidID,
		Score:     int32(r.Score),
		Review:    r.Review,
	}
}

func mapNotification(n model.Notification) *pb.Notification {
	out := &pb.Notification{
		Id:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: timestamp(&n.CreatedAt),
	}
	if len(n.Data) > 0 {
		// битый JSON в data не должен ломать выдачу
		_ = json.Unmarshal(n.Data, &out.Data)
	}
	return out
}

func mapWithdrawal(w *model.WithdrawalRequest) *pb.Withdrawal {
	return &pb.Withdrawal{
		Id:        w.ID,
		WalletId:  w.WalletID,
		Amount:    w.Amount,
		Status:    string(w.Status),
		CreatedAt: timestamp(&w.CreatedAt),
	}
}

func mapReplay(r ledger.ReplayReport) *pb.VerifyLedgerResponse {
	return &pb.VerifyLedgerResponse{
		Entries:    int32(r.Entries),
		Computed:   r.Computed,
		Stored:     r.Stored,
		BrokenAt:   int32(r.BrokenAt),
		Consistent: r.Consistent(),
	}
}

func mapService(s *model.Service) *pb.Service {
	if s == nil {
		return nil
	}
	return &pb.Service{
		Id:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		BasePrice:     s.BasePrice,
		CommissionPct: s.CommissionPct,
		IsActive:      s.IsActive,
		CreatedAt:     timestamp(&s.CreatedAt),
	}
}

func mapCommissionRule(r *model.CommissionRule) *pb.CommissionRule {
	if r == nil {
		return nil
	}
	return &pb.CommissionRule{
		Id:             r.ID,
		ServiceId:      r.ServiceID,
		CommissionPct:  r.CommissionPct,
		PlatformFeePct: r.PlatformFeePct,
		GstPct:         r.GSTPct,
		IsActive:       r.IsActive,
		EffectiveFrom:  timestamp(&r.EffectiveFrom),
		EffectiveTo:    timestamp(r.EffectiveTo),
	}
}
