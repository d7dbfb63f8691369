package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollsBack(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	boom := errors.New("boom")
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to discard the insert, got %d rows", count)
	}
}

func TestIsUniqueViolation_MessageFallback(t *testing.T) {
	if !IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "brands_slug_key"`), "") {
		t.Fatal("expected postgres message to match")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: brands.slug"), "") {
		t.Fatal("expected sqlite message to match")
	}
	if !IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "brands_slug_key"`), "brands_slug_key") {
		t.Fatal("expected named constraint to match")
	}
	if IsUniqueViolation(errors.New("something else"), "") {
		t.Fatal("expected unrelated error not to match")
	}
}

func TestIsForeignKeyViolation_MessageFallback(t *testing.T) {
	if !IsForeignKeyViolation(errors.New(`update or delete on table "categories" violates foreign key constraint "products_category_id_fkey"`)) {
		t.Fatal("expected postgres message to match")
	}
	if IsForeignKeyViolation(nil) {
		t.Fatal("expected nil not to match")
	}
}
