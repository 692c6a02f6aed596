package catalog

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestSettingsStoreDiscount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	store := &SettingsStore{pool: mock}

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("discount_percent").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("15"))

	pct, err := store.DiscountPercent(context.Background())
	if err != nil {
		t.Fatalf("discount: %v", err)
	}
	if pct != 15 {
		t.Errorf("discount = %d, want 15", pct)
	}
}

func TestSettingsStoreDiscountDefaultsToZero(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	store := &SettingsStore{pool: mock}

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("discount_percent").
		WillReturnRows(pgxmock.NewRows([]string{"value"}))

	pct, err := store.DiscountPercent(context.Background())
	if err != nil {
		t.Fatalf("discount: %v", err)
	}
	if pct != 0 {
		t.Errorf("discount = %d, want 0 when unset", pct)
	}
}

func TestSettingsStoreSetDiscountBounds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	store := &SettingsStore{pool: mock}

	if err := store.SetDiscountPercent(context.Background(), 91); err == nil {
		t.Error("expected rejection above 90")
	}
	if err := store.SetDiscountPercent(context.Background(), -1); err == nil {
		t.Error("expected rejection below 0")
	}

	mock.ExpectExec("INSERT INTO settings").
		WithArgs("discount_percent", "25").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	if err := store.SetDiscountPercent(context.Background(), 25); err != nil {
		t.Fatalf("set discount: %v", err)
	}
}

func TestSettingsStorePriceOverride(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	store := &SettingsStore{pool: mock}

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("base_price:full-detail").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("179"))

	price, found, err := store.BasePriceOverride(context.Background(), "full-detail")
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if !found || price != 179 {
		t.Errorf("override = %d found=%v, want 179 true", price, found)
	}

	if err := store.SetBasePriceOverride(context.Background(), "no-such-package", 50); err == nil {
		t.Error("expected rejection of unknown package")
	}
	if err := store.SetBasePriceOverride(context.Background(), "full-detail", 0); err == nil {
		t.Error("expected rejection of non-positive price")
	}

	mock.ExpectExec("INSERT INTO settings").
		WithArgs("base_price:full-detail", "179").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	if err := store.SetBasePriceOverride(context.Background(), "full-detail", 179); err != nil {
		t.Fatalf("set override: %v", err)
	}
}
