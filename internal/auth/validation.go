package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

// Источник данных о пользователях.
// В реале это репозиторий поверх БД, в тестах — мок.
type UserStore interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
}

// ValidateActor:
//   - проверяет идентификатор;
//   - достаёт пользователя из хранилища;
//   - проверяет, что он активен;
//   - возвращает актора с текущей ролью из хранилища, а не из токена.
func ValidateActor(ctx context.Context, store UserStore, userID uint64) (model.Actor, error) {
	if userID == 0 {
		return model.Actor{}, apperr.Wrap(apperr.ErrUnauthenticated, "missing user id")
	}

	u, err := store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Actor{}, apperr.Wrap(apperr.ErrUnauthenticated, "user %d no longer exists", userID)
		}
		return model.Actor{}, apperr.FromStore(err, "user")
	}
	if u == nil {
		return model.Actor{}, apperr.Wrap(apperr.ErrUnauthenticated, "user %d no longer exists", userID)
	}
	if !u.IsActive {
		return model.Actor{}, apperr.Wrap(apperr.ErrForbidden, "user %d is deactivated", userID)
	}

	return model.Actor{UserID: u.ID, Role: u.Role}, nil
}
