package marketplacev1

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Суммы передаются как decimal-строки ("708.00"), время — как google.protobuf.Timestamp.

type User struct {
	Id             uint64                 `json:"id"`
	Phone          string                 `json:"phone"`
	Name           string                 `json:"name,omitempty"`
	Email          string                 `json:"email,omitempty"`
	Role           string                 `json:"role"`
	IsActive       bool                   `json:"isActive"`
	LastSignedInAt *timestamppb.Timestamp `json:"lastSignedInAt,omitempty"`
	CreatedAt      *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type MaidProfile struct {
	Id                 uint64 `json:"id"`
	UserId             uint64 `json:"userId"`
	Bio                string `json:"bio,omitempty"`
	ExperienceYears    int32  `json:"experienceYears"`
	IsAvailable        bool   `json:"isAvailable"`
	AvailableFrom      string `json:"availableFrom,omitempty"`
	AvailableTo        string `json:"availableTo,omitempty"`
	VerificationStatus string `json:"verificationStatus"`
	TotalJobs          int32  `json:"totalJobs"`
}

type Wallet struct {
	Id             uint64          `json:"id"`
	UserId         uint64          `json:"userId"`
	Balance        decimal.Decimal `json:"balance"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
	TotalRefunded  decimal.Decimal `json:"totalRefunded"`
}

type WalletTransaction struct {
	Id            uint64                 `json:"id"`
	WalletId      uint64                 `json:"walletId"`
	Type          string                 `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	BalanceBefore decimal.Decimal        `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal        `json:"balanceAfter"`
	Description   string                 `json:"description,omitempty"`
	BookingId     uint64                 `json:"bookingId,omitempty"`
	PaymentId     uint64                 `json:"paymentId,omitempty"`
	CreatedAt     *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type PriceBreakdown struct {
	BasePrice   decimal.Decimal `json:"basePrice"`
	Commission  decimal.Decimal `json:"commission"`
	PlatformFee decimal.Decimal `json:"platformFee"`
	Gst         decimal.Decimal `json:"gst"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	MaidAmount  decimal.Decimal `json:"maidAmount"`
}

type Booking struct {
	Id                 uint64                 `json:"id"`
	Code               string                 `json:"code"`
	CustomerId         uint64                 `json:"customerId"`
	MaidId             uint64                 `json:"maidId,omitempty"`
	ServiceId          uint64                 `json:"serviceId"`
	ScheduledAt        *timestamppb.Timestamp `json:"scheduledAt"`
	ScheduledEndAt     *timestamppb.Timestamp `json:"scheduledEndAt"`
	DurationMin        int32                  `json:"durationMin"`
	Location           string                 `json:"location"`
	Latitude           *float64               `json:"latitude,omitempty"`
	Longitude          *float64               `json:"longitude,omitempty"`
	SpecialRequests    string                 `json:"specialRequests,omitempty"`
	Status             string                 `json:"status"`
	PaymentStatus      string                 `json:"paymentStatus"`
	Price              *PriceBreakdown        `json:"price"`
	QuotedPrice        decimal.Decimal        `json:"quotedPrice"`
	FinalPrice         *decimal.Decimal       `json:"finalPrice,omitempty"`
	CancelledBy        string                 `json:"cancelledBy,omitempty"`
	CancellationReason string                 `json:"cancellationReason,omitempty"`
	CreatedAt          *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type Payment struct {
	Id         uint64          `json:"id"`
	BookingId  uint64          `json:"bookingId"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Method     string          `json:"method"`
	GatewayRef string          `json:"gatewayRef"`
	Status     string          `json:"status"`
}

type Rating struct {
	Id        uint64 `json:"id"`
	BookingId uint64 `json:"bookingId"`
	MaidId    uint64 `json:"maidId"`
	Score     int32  `json:"score"`
	Review    string `json:"review,omitempty"`
}

type Notification struct {
	Id        uint64                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]any         `json:"data,omitempty"`
	IsRead    bool                   `json:"isRead"`
	CreatedAt *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

// PageRequest — параметры постраничной выборки; нули означают значения по умолчанию.
type PageRequest struct {
	Page     int32 `json:"page,omitempty"`
	PageSize int32 `json:"pageSize,omitempty"`
}

func (x *PageRequest) GetPage() int32 {
	if x != nil {
		return x.Page
	}
	return 0
}

func (x *PageRequest) GetPageSize() int32 {
	if x != nil {
		return x.PageSize
	}
	return 0
}

type PageInfo struct {
	Page       int32 `json:"page"`
	PageSize   int32 `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}
