package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/db"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/notify"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type recorder struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (r *recorder) Notify(_ context.Context, m notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *recorder) ofType(t model.NotificationType) []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Message
	for _, m := range r.msgs {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

type harness struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	sent   *recorder
	svc    *Service
	phones int
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	gdb, err := db.NewMemoryDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	h := &harness{db: gdb, ledger: ledger.New(gdb, nil), sent: &recorder{}}
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	h.svc = NewService(gdb, h.ledger, notify.NewDispatcher(h.sent, nil), opts...)
	return h
}

func (h *harness) user(t *testing.T, role model.UserRole) model.Actor {
	t.Helper()

	h.phones++
	u := model.User{
		Phone:    fmt.Sprintf("98765%05d", h.phones),
		Role:     role,
		IsActive: true,
	}
	if err := h.db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return model.Actor{UserID: u.ID, Role: role}
}

func (h *harness) customer(t *testing.T) model.Actor {
	return h.user(t, model.UserRoleCustomer)
}

func (h *harness) admin(t *testing.T) model.Actor {
	return h.user(t, model.UserRoleAdmin)
}

// maid creates a maid user with a profile; hours are optional HH:MM bounds.
func (h *harness) maid(t *testing.T, hours ...string) (model.Actor, *model.Maid) {
	t.Helper()

	actor := h.user(t, model.UserRoleMaid)
	m, err := repository.NewGormMaidRepository(h.db).EnsureByUserID(context.Background(), actor.UserID)
	if err != nil {
		t.Fatalf("maid profile: %v", err)
	}
	if len(hours) == 2 {
		err := h.db.Model(&model.Maid{}).Where("id = ?", m.ID).
			Updates(map[string]any{"available_from": hours[0], "available_to": hours[1]}).Error
		if err != nil {
			t.Fatalf("maid hours: %v", err)
		}
		m.AvailableFrom, m.AvailableTo = hours[0], hours[1]
	}
	return actor, m
}

func (h *harness) service(t *testing.T, base string) *model.Service {
	t.Helper()

	h.phones++
	svc := model.Service{
		Name:      fmt.Sprintf("Deep cleaning %d", h.phones),
		BasePrice: decimal.RequireFromString(base),
		IsActive:  true,
	}
	if err := repository.NewGormServiceRepository(h.db).Create(context.Background(), &svc); err != nil {
		t.Fatalf("create service: %v", err)
	}
	return &svc
}

func (h *harness) fund(t *testing.T, userID uint64, amount string) {
	t.Helper()

	ctx := context.Background()
	w, err := h.ledger.EnsureWallet(ctx, userID)
	if err != nil {
		t.Fatalf("ensure wallet: %v", err)
	}
	_, err = h.ledger.Record(ctx, ledger.Entry{
		WalletID: w.ID,
		Type:     model.TransactionCredit,
		Amount:   decimal.RequireFromString(amount),
	})
	if err != nil {
		t.Fatalf("fund wallet: %v", err)
	}
}

func (h *harness) balance(t *testing.T, userID uint64) decimal.Decimal {
	t.Helper()

	w, err := h.ledger.WalletOf(context.Background(), userID)
	if err != nil {
		t.Fatalf("wallet of %d: %v", userID, err)
	}
	return w.Balance
}

// book creates a booking starting at hour:00 UTC on the day after testNow.
func (h *harness) book(t *testing.T, customer model.Actor, svc *model.Service, hour, minutes int) *model.Booking {
	t.Helper()

	out, err := h.svc.Create(context.Background(), customer, CreateRequest{
		ServiceID:   svc.ID,
		ScheduledAt: time.Date(2025, 3, 2, hour, 0, 0, 0, time.UTC),
		DurationMin: minutes,
		Location:    "12 MG Road, Bengaluru",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return out.Booking
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
