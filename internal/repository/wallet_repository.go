package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

type WalletRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Wallet, error)
	GetByUserID(ctx context.Context, userID uint64) (*model.Wallet, error)
	// Кошелёк с блокировкой строки до конца транзакции.
	GetForUpdate(ctx context.Context, id uint64) (*model.Wallet, error)
	Ensure(ctx context.Context, userID uint64) (*model.Wallet, error)
	// Записать новый баланс, если он не изменился с момента чтения.
	SaveBalance(ctx context.Context, w *model.Wallet, expected model.Wallet) (bool, error)
	AppendTransaction(ctx context.Context, t *model.WalletTransaction) error
	// Страница журнала, новые сверху.
	ListTransactions(ctx context.Context, walletID uint64, limit, offset int) ([]model.WalletTransaction, int64, error)
	// Весь журнал в порядке записи.
	AllTransactions(ctx context.Context, walletID uint64) ([]model.WalletTransaction, error)
	CreateWithdrawal(ctx context.Context, w *model.WithdrawalRequest) error
}

type GormWalletRepository struct {
	db *gorm.DB
}

func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

func (r *GormWalletRepository) GetByID(ctx context.Context, id uint64) (*model.Wallet, error) {
	var w model.Wallet
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *GormWalletRepository) GetByUserID(ctx context.Context, userID uint64) (*model.Wallet, error) {
	var w model.Wallet
	if err := r.db.WithContext(ctx).First(&w, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *GormWalletRepository) GetForUpdate(ctx context.Context, id uint64) (*model.Wallet, error) {
	var w model.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *GormWalletRepository) Ensure(ctx context.Context, userID uint64) (*model.Wallet, error) {
	w := model.Wallet{UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&w).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *GormWalletRepository) SaveBalance(ctx context.Context, w *model.Wallet, expected model.Wallet) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Wallet{}).
		Where("id = ? AND balance = ?", w.ID, expected.Balance).
		Updates(map[string]any{
			"balance":         w.Balance,
			"total_earnings":  w.TotalEarnings,
			"total_withdrawn": w.TotalWithdrawn,
			"total_refunded":  w.TotalRefunded,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormWalletRepository) AppendTransaction(ctx context.Context, t *model.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GormWalletRepository) ListTransactions(
	ctx context.Context,
	walletID uint64,
	limit, offset int,
) ([]model.WalletTransaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.WalletTransaction{}).Where("wallet_id = ?", walletID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var txs []model.WalletTransaction
	if err := q.Order("created_at DESC").Order("id DESC").Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (r *GormWalletRepository) AllTransactions(ctx context.Context, walletID uint64) ([]model.WalletTransaction, error) {
	var txs []model.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *GormWalletRepository) CreateWithdrawal(ctx context.Context, w *model.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Create(w).Error
}
