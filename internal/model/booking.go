package model

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/pricing"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusNoShow
}

// HasWorker reports whether a booking in status s must carry a worker.
func (s BookingStatus) HasWorker() bool {
	return s == BookingStatusAccepted || s == BookingStatusInProgress || s == BookingStatusCompleted
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CancelActor — кто отменил бронирование.
type CancelActor string

const (
	CancelActorCustomer CancelActor = "customer"
	CancelActorMaid     CancelActor = "maid"
	CancelActorAdmin    CancelActor = "admin"
)

func (a CancelActor) Valid() bool {
	return a == CancelActorCustomer || a == CancelActorMaid || a == CancelActorAdmin
}

const (
	MinBookingDurationMin = 30
	MaxBookingDurationMin = 480
)

var bookingCodeRe = regexp.MustCompile(`^BK-\d{8}-[A-Z0-9]{5}$`)

// ValidBookingCode reports whether code has the BK-YYYYMMDD-XXXXX shape.
func ValidBookingCode(code string) bool {
	return bookingCodeRe.MatchString(code)
}

// PriceBreakdown хранится в колонках price_*.
type PriceBreakdown struct {
	Base        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Commission  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PlatformFee decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	GST         decimal.Decimal `gorm:"column:gst;type:numeric(10,2);not null"`
	Total       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	MaidAmount  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func NewPriceBreakdown(b pricing.Breakdown) PriceBreakdown {
	return PriceBreakdown{
		Base:        b.BasePrice,
		Commission:  b.Commission,
		PlatformFee: b.PlatformFee,
		GST:         b.GST,
		Total:       b.TotalAmount,
		MaidAmount:  b.MaidAmount,
	}
}

func (p PriceBreakdown) Breakdown() pricing.Breakdown {
	return pricing.Breakdown{
		BasePrice:   p.Base,
		Commission:  p.Commission,
		PlatformFee: p.PlatformFee,
		GST:         p.GST,
		TotalAmount: p.Total,
		MaidAmount:  p.MaidAmount,
	}
}

// bookings
type Booking struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Code string `gorm:"type:varchar(20);not null;uniqueIndex"`

	CustomerID uint64 `gorm:"not null;index"`
	// nil, пока бронирование в статусе pending.
	MaidID    *uint64 `gorm:"index"`
	ServiceID uint64  `gorm:"not null;index"`

	ScheduledAt    time.Time `gorm:"not null;index"`
	ScheduledEndAt time.Time `gorm:"not null"`
	DurationMin    int       `gorm:"not null"`

	Location        string   `gorm:"type:text;not null"`
	Latitude        *float64 `gorm:"type:numeric(10,8)"`
	Longitude       *float64 `gorm:"type:numeric(11,8)"`
	SpecialRequests string   `gorm:"type:text"`

	Status        BookingStatus `gorm:"type:varchar(32);not null;default:'pending';index"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(32);not null;default:'pending'"`

	Price       PriceBreakdown      `gorm:"embedded;embeddedPrefix:price_"`
	QuotedPrice decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	FinalPrice  decimal.NullDecimal `gorm:"type:numeric(10,2)"`

	Notes              string       `gorm:"type:text"`
	CancelledBy        *CancelActor `gorm:"type:varchar(16)"`
	CancellationReason string       `gorm:"type:text"`

	AcceptedAt  *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Assignment returns the worker of the booking; ok is false while unassigned.
func (b *Booking) Assignment() (maidID uint64, ok bool) {
	if b.MaidID == nil {
		return 0, false
	}
	return *b.MaidID, true
}

// Window returns the scheduled interval [ScheduledAt, ScheduledEndAt) in UTC.
func (b *Booking) Window() (time.Time, time.Time) {
	return b.ScheduledAt.UTC(), b.ScheduledEndAt.UTC()
}

// Validate checks column domains and the worker-assignment invariant.
func (b *Booking) Validate() error {
	if !ValidBookingCode(b.Code) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "malformed booking code %q", b.Code)
	}
	if b.CustomerID == 0 || b.ServiceID == 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "booking customer and service are required")
	}
	if !b.Status.Valid() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "unknown booking status %q", b.Status)
	}
	if !b.PaymentStatus.Valid() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "unknown payment status %q", b.PaymentStatus)
	}
	if b.DurationMin < MinBookingDurationMin || b.DurationMin > MaxBookingDurationMin {
		return apperr.Wrap(apperr.ErrInvalidArgument, "duration must be within [%d,%d] minutes", MinBookingDurationMin, MaxBookingDurationMin)
	}
	if !b.ScheduledEndAt.After(b.ScheduledAt) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "scheduled window is empty")
	}
	if b.Location == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "location is required")
	}
	if b.Status == BookingStatusPending && b.MaidID != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "pending booking must not have a worker")
	}
	if b.Status.HasWorker() && b.MaidID == nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "%s booking must have a worker", b.Status)
	}
	if b.CancelledBy != nil && !b.CancelledBy.Valid() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "unknown cancelling actor %q", *b.CancelledBy)
	}
	if b.QuotedPrice.IsNegative() || b.Price.Total.IsNegative() {
		return apperr.Wrap(apperr.ErrInvalidArgument, "booking price must not be negative")
	}
	return nil
}
