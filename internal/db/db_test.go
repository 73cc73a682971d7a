package db

import (
	"testing"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

func TestNewMemoryDB_Migrates(t *testing.T) {
	gdb, err := NewMemoryDB()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(gdb)

	for _, table := range []any{&model.Booking{}, &model.Wallet{}, &model.WalletTransaction{}, &model.OtpSession{}, &model.CommissionRule{}} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("expected table for %T", table)
		}
	}
}

func TestNewMemoryDB_ForeignKeysEnforced(t *testing.T) {
	gdb, err := NewMemoryDB()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(gdb)

	// Профиль исполнителя без пользователя нарушает внешний ключ.
	if err := gdb.Create(&model.Maid{UserID: 404}).Error; err == nil {
		t.Fatalf("expected foreign key violation")
	}
}
