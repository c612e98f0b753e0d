package city

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"go-weather/internal/domain/gateway/db"
)

func newUseCase(t *testing.T) (UseCase, *sql.DB) {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cities.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	gateway, err := db.NewSQLCCityGateway(conn, "sqlite")
	if err != nil {
		t.Fatalf("NewSQLCCityGateway() error = %v", err)
	}

	useCase := NewCityUseCase(gateway)
	if err := useCase.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return useCase, conn
}

func TestAddCity_DuplicateLeavesCountUnchanged(t *testing.T) {
	useCase, _ := newUseCase(t)
	ctx := context.Background()

	if !useCase.AddCity(ctx, "London") {
		t.Fatal("AddCity() = false, want true")
	}
	before := len(useCase.ListCities(ctx))

	if !useCase.AddCity(ctx, "london") {
		t.Fatal("duplicate AddCity() = false, want true")
	}
	if after := len(useCase.ListCities(ctx)); after != before {
		t.Errorf("count after duplicate = %d, want %d", after, before)
	}
}

func TestListCities_InsertionOrder(t *testing.T) {
	useCase, _ := newUseCase(t)
	ctx := context.Background()

	for _, name := range []string{"Oslo", "Lima", "Cairo"} {
		useCase.AddCity(ctx, name)
	}

	got := useCase.ListCities(ctx)
	want := []string{"oslo", "lima", "cairo"}
	if len(got) != len(want) {
		t.Fatalf("ListCities() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListCities()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRemoveCity(t *testing.T) {
	useCase, _ := newUseCase(t)
	ctx := context.Background()

	useCase.AddCity(ctx, "Madrid")
	if !useCase.RemoveCity(ctx, "MADRID") {
		t.Error("RemoveCity() = false, want true")
	}
	if useCase.RemoveCity(ctx, "madrid") {
		t.Error("RemoveCity() of a missing city = true, want false")
	}
}

func TestStorageFailureIsAbsorbed(t *testing.T) {
	useCase, conn := newUseCase(t)
	ctx := context.Background()
	conn.Close()

	if useCase.AddCity(ctx, "Rome") {
		t.Error("AddCity() on a closed store = true, want false")
	}
	if got := useCase.ListCities(ctx); got == nil || len(got) != 0 {
		t.Errorf("ListCities() on a closed store = %v, want empty list", got)
	}
	if useCase.RemoveCity(ctx, "Rome") {
		t.Error("RemoveCity() on a closed store = true, want false")
	}
}

func TestAddCity_BlankName(t *testing.T) {
	useCase, _ := newUseCase(t)

	if useCase.AddCity(context.Background(), "   ") {
		t.Error("AddCity() with a blank name = true, want false")
	}
}
