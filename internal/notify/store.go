package notify

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

// StoreNotifier пишет уведомления в таблицу notifications (in-app лента).
type StoreNotifier struct {
	db *gorm.DB
}

func NewStoreNotifier(db *gorm.DB) *StoreNotifier {
	return &StoreNotifier{db: db}
}

func (s *StoreNotifier) Name() string { return "store" }

func (s *StoreNotifier) Notify(ctx context.Context, m Message) error {
	n := model.Notification{
		UserID:  m.UserID,
		Type:    m.Type,
		Title:   m.Title,
		Message: m.Message,
	}
	if len(m.Data) > 0 {
		raw, err := json.Marshal(m.Data)
		if err != nil {
			return err
		}
		n.Data = datatypes.JSON(raw)
	}
	return repository.NewGormNotificationRepository(s.db).Create(ctx, &n)
}
