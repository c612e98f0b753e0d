package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"go-weather/internal/domain/model"
)

func newSqliteGateway(t *testing.T) (*SQLCCityGateway, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "weather.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	gateway, err := NewSQLCCityGateway(db, "sqlite")
	if err != nil {
		t.Fatalf("NewSQLCCityGateway() error = %v", err)
	}
	if err := gateway.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return gateway, db
}

func names(t *testing.T, gateway CityGateway) []string {
	t.Helper()
	cities, err := gateway.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	result := make([]string, 0, len(cities))
	for _, city := range cities {
		result = append(result, city.Name)
	}
	return result
}

func TestSQLCCityGateway_AddIsIdempotentAndCanonical(t *testing.T) {
	gateway, _ := newSqliteGateway(t)
	ctx := context.Background()

	for _, name := range []string{"London", " london ", "LONDON", "Paris"} {
		if err := gateway.Add(ctx, name); err != nil {
			t.Fatalf("Add(%q) error = %v", name, err)
		}
	}

	got := names(t, gateway)
	if len(got) != 2 || got[0] != "london" || got[1] != "paris" {
		t.Errorf("FindAll() = %v, want [london paris]", got)
	}
}

func TestSQLCCityGateway_InitializeKeepsData(t *testing.T) {
	gateway, _ := newSqliteGateway(t)
	ctx := context.Background()

	if err := gateway.Add(ctx, "Tokyo"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := gateway.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}

	if got := names(t, gateway); len(got) != 1 || got[0] != "tokyo" {
		t.Errorf("FindAll() = %v, want [tokyo]", got)
	}
}

func TestSQLCCityGateway_Remove(t *testing.T) {
	gateway, _ := newSqliteGateway(t)
	ctx := context.Background()

	if err := gateway.Add(ctx, "berlin"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	removed, err := gateway.Remove(ctx, " Berlin")
	if err != nil || !removed {
		t.Fatalf("Remove() = %v, %v, want true", removed, err)
	}

	removed, err = gateway.Remove(ctx, "berlin")
	if err != nil || removed {
		t.Errorf("second Remove() = %v, %v, want false", removed, err)
	}

	if got := names(t, gateway); len(got) != 0 {
		t.Errorf("FindAll() = %v, want empty", got)
	}
}

func TestSQLCCityGateway_EmptyName(t *testing.T) {
	gateway, _ := newSqliteGateway(t)

	if err := gateway.Add(context.Background(), "   "); !errors.Is(err, ErrEmptyCityName) {
		t.Errorf("Add() error = %v, want ErrEmptyCityName", err)
	}
	if _, err := gateway.Remove(context.Background(), ""); !errors.Is(err, ErrEmptyCityName) {
		t.Errorf("Remove() error = %v, want ErrEmptyCityName", err)
	}
}

func TestSQLCCityGateway_ClosedDatabase(t *testing.T) {
	gateway, db := newSqliteGateway(t)
	db.Close()

	if err := gateway.Add(context.Background(), "rome"); err == nil {
		t.Error("Add() expected error on closed database")
	}
	if _, err := gateway.FindAll(context.Background()); err == nil {
		t.Error("FindAll() expected error on closed database")
	}
}

func TestNewSQLCCityGateway_UnknownDriver(t *testing.T) {
	if _, err := NewSQLCCityGateway(nil, "oracle"); err == nil {
		t.Fatal("NewSQLCCityGateway() expected error")
	}
}

func TestSQLCHealthDBGateway(t *testing.T) {
	_, db := newSqliteGateway(t)
	gateway := NewSQLCHealthDBGateway(db, "sqlite")

	if got := gateway.Health(); got.Status != model.StatusUp || got.Details["driver"] != "sqlite" {
		t.Errorf("Health() = %+v, want UP", got)
	}

	db.Close()
	if got := gateway.Health(); got.Status != model.StatusDown {
		t.Errorf("Health() after close = %+v, want DOWN", got)
	}
}

// TestGormCityGateway runs against a real postgres when TEST_POSTGRES_DSN is set.
func TestGormCityGateway(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	gateway := NewGormCityGateway(gormDB)
	ctx := context.Background()

	if err := gateway.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { gormDB.Exec("DELETE FROM cities WHERE name = ?", "gorm-test-city") })

	if err := gateway.Add(ctx, "Gorm-Test-City"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := gateway.Add(ctx, "gorm-test-city"); err != nil {
		t.Fatalf("duplicate Add() error = %v", err)
	}

	count := 0
	for _, name := range names(t, gateway) {
		if name == "gorm-test-city" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("stored %d copies, want 1", count)
	}

	removed, err := gateway.Remove(ctx, "GORM-TEST-CITY")
	if err != nil || !removed {
		t.Errorf("Remove() = %v, %v, want true", removed, err)
	}

	if got := NewGormHealthDBGateway(gormDB).Health(); got.Status != model.StatusUp {
		t.Errorf("Health() = %+v, want UP", got)
	}
}
