package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"fieldstock/internal/domain"
	"fieldstock/internal/repos"
	"fieldstock/internal/services"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// single connection so every query sees the same in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func storekeeper() *domain.User {
	return &domain.User{ID: "u-store", Username: "storekeeper", Role: domain.RoleStorekeeper}
}

func admin() *domain.User {
	return &domain.User{ID: "u-admin", Username: "admin", Role: domain.RoleAdmin}
}

func newMaterial(t *testing.T, svc *services.StockService, name string, qty, min int) *domain.Material {
	t.Helper()
	m, err := svc.Create(&domain.Material{Name: name, Category: domain.CategoryInternet, Quantity: qty, MinStockLevel: min}, storekeeper())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestUseMaterialDeductsAndRecomputes(t *testing.T) {
	db := testDB(t)
	svc := services.NewStockService(repos.NewMaterialRepo(db))

	m := newMaterial(t, svc, "Drop Wire", 10, 5)
	if m.Status != domain.StatusNormal {
		t.Fatalf("fresh material should be Normal, got %s", m.Status)
	}

	got, err := svc.UseMaterial(m.ID, 7, domain.RoleTechnician)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 3 || got.Status != domain.StatusLowStock {
		t.Fatalf("want qty=3 Low Stock, got qty=%d %s", got.Quantity, got.Status)
	}

	// and down to zero
	got, err = svc.UseMaterial(m.ID, 3, domain.RoleTechnician)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 0 || got.Status != domain.StatusOutOfStock {
		t.Fatalf("want qty=0 Out of Stock, got qty=%d %s", got.Quantity, got.Status)
	}
}

func TestUseMaterialInsufficientLeavesStockAlone(t *testing.T) {
	db := testDB(t)
	repo := repos.NewMaterialRepo(db)
	svc := services.NewStockService(repo)

	m := newMaterial(t, svc, "Cat6 Patch", 3, 5)

	if _, err := svc.UseMaterial(m.ID, 5, domain.RoleTechnician); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
	after, err := repo.ByID(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Quantity != 3 {
		t.Fatalf("failed decrement must not change quantity, got %d", after.Quantity)
	}
}

func TestUseMaterialGuards(t *testing.T) {
	db := testDB(t)
	svc := services.NewStockService(repos.NewMaterialRepo(db))
	m := newMaterial(t, svc, "Splitter", 10, 5)

	if _, err := svc.UseMaterial(m.ID, 0, domain.RoleTechnician); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero amount: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UseMaterial(m.ID, -2, domain.RoleTechnician); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative amount: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UseMaterial(m.ID, 1, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-technician: want ErrForbidden, got %v", err)
	}
	if _, err := svc.UseMaterial("no-such-id", 1, domain.RoleTechnician); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing material: want ErrNotFound, got %v", err)
	}
}

func TestPinnedStatusSurvivesHealthyMutations(t *testing.T) {
	db := testDB(t)
	svc := services.NewStockService(repos.NewMaterialRepo(db))
	m := newMaterial(t, svc, "Dish Mount", 20, 5)

	pinned, err := svc.SetPinned(m.ID, "Reserved")
	if err != nil {
		t.Fatal(err)
	}
	if pinned.Status != domain.StatusReserved {
		t.Fatalf("want Reserved, got %s", pinned.Status)
	}

	// healthy deduction keeps the pin
	got, err := svc.UseMaterial(m.ID, 5, domain.RoleTechnician)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 15 || got.Status != domain.StatusReserved {
		t.Fatalf("pin should survive, got qty=%d %s", got.Quantity, got.Status)
	}

	// but the quantity floor still wins
	got, err = svc.UseMaterial(m.ID, 12, domain.RoleTechnician)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusLowStock {
		t.Fatalf("low stock overrides the pin, got %s", got.Status)
	}

	// clearing the pin returns to derived status
	m2 := newMaterial(t, svc, "Dish Arm", 20, 5)
	if _, err := svc.SetPinned(m2.ID, "Deprecated"); err != nil {
		t.Fatal(err)
	}
	cleared, err := svc.SetPinned(m2.ID, "auto")
	if err != nil {
		t.Fatal(err)
	}
	if cleared.Status != domain.StatusNormal {
		t.Fatalf("auto should re-derive Normal, got %s", cleared.Status)
	}
}

func TestUpdateOwnershipAndNotesMasking(t *testing.T) {
	db := testDB(t)
	svc := services.NewStockService(repos.NewMaterialRepo(db))
	m := newMaterial(t, svc, "ONT Unit", 10, 5)

	// another storekeeper cannot touch it
	other := &domain.User{ID: "u-x", Username: "keeper2", Role: domain.RoleStorekeeper}
	edit := *m
	edit.Quantity = 12
	if _, err := svc.Update(&edit, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign storekeeper: want ErrForbidden, got %v", err)
	}

	// owner edits quantity, but their notes input is ignored
	edit = *m
	edit.Quantity = 2
	edit.Notes = "trying to sneak a note in"
	got, err := svc.Update(&edit, storekeeper())
	if err != nil {
		t.Fatal(err)
	}
	if got.Notes != m.Notes {
		t.Fatalf("non-admin notes edit must be masked, got %q", got.Notes)
	}
	if got.Quantity != 2 || got.Status != domain.StatusLowStock {
		t.Fatalf("update must persist and recompute, got qty=%d %s", got.Quantity, got.Status)
	}

	// admin can write notes
	edit = *got
	edit.Notes = "warehouse B, top shelf"
	got, err = svc.Update(&edit, admin())
	if err != nil {
		t.Fatal(err)
	}
	if got.Notes != "warehouse B, top shelf" {
		t.Fatalf("admin notes edit lost: %q", got.Notes)
	}
}

func TestConcurrentUseNeverOversells(t *testing.T) {
	db := testDB(t)
	svc := services.NewStockService(repos.NewMaterialRepo(db))
	m := newMaterial(t, svc, "Connector Bag", 5, 2)

	const attempts = 12
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := svc.UseMaterial(m.ID, 1, domain.RoleTechnician)
			errs <- err
		}()
	}

	okCount := 0
	for i := 0; i < attempts; i++ {
		if err := <-errs; err == nil {
			okCount++
		} else if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 5 {
		t.Fatalf("exactly 5 uses may succeed, got %d", okCount)
	}
	after, err := svc.Get(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Quantity != 0 {
		t.Fatalf("stock must end at exactly zero, got %d", after.Quantity)
	}
}
