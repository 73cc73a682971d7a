package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type BookingRepository interface {
	// Создать новое бронирование.
	Create(ctx context.Context, booking *model.Booking) error
	// Получить бронирование по ID.
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	// Получить бронирование по коду BK-...
	GetByCode(ctx context.Context, code string) (*model.Booking, error)
	// То же, но с блокировкой строки до конца транзакции.
	GetByCodeForUpdate(ctx context.Context, code string) (*model.Booking, error)
	// Условное обновление: применяется, только если статус всё ещё один из from.
	Transition(ctx context.Context, id uint64, from []model.BookingStatus, updates map[string]any) (bool, error)
	// Условное обновление статуса оплаты.
	UpdatePaymentStatus(ctx context.Context, id uint64, from []model.PaymentStatus, to model.PaymentStatus) (bool, error)
	ListByCustomer(ctx context.Context, customerID uint64, limit, offset int) ([]model.Booking, int64, error)
	ListByMaid(ctx context.Context, maidID uint64, limit, offset int) ([]model.Booking, int64, error)
	// Открытые (pending) заявки для доски заказов.
	ListOpen(ctx context.Context, limit, offset int) ([]model.Booking, int64, error)
	// Активные заказы исполнителя, пересекающие интервал.
	ListActiveByMaidInRange(ctx context.Context, maidID uint64, from, to time.Time) ([]model.Booking, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) GetByCodeForUpdate(ctx context.Context, code string) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) Transition(
	ctx context.Context,
	id uint64,
	from []model.BookingStatus,
	updates map[string]any,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormBookingRepository) UpdatePaymentStatus(
	ctx context.Context,
	id uint64,
	from []model.PaymentStatus,
	to model.PaymentStatus,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND payment_status IN ?", id, from).
		Update("payment_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormBookingRepository) ListByCustomer(ctx context.Context, customerID uint64, limit, offset int) ([]model.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{}).Where("customer_id = ?", customerID)
	return listBookings(q, limit, offset)
}

func (r *GormBookingRepository) ListByMaid(ctx context.Context, maidID uint64, limit, offset int) ([]model.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{}).Where("maid_id = ?", maidID)
	return listBookings(q, limit, offset)
}

func (r *GormBookingRepository) ListOpen(ctx context.Context, limit, offset int) ([]model.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{}).Where("status = ?", model.BookingStatusPending)
	return listBookings(q, limit, offset)
}

func listBookings(q *gorm.DB, limit, offset int) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("scheduled_at DESC").Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *GormBookingRepository) ListActiveByMaidInRange(
	ctx context.Context,
	maidID uint64,
	from, to time.Time,
) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("maid_id = ?", maidID).
		Where("status IN ?", []model.BookingStatus{model.BookingStatusAccepted, model.BookingStatusInProgress}).
		Where("scheduled_at < ? AND scheduled_end_at > ?", to, from).
		Order("scheduled_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
