package services_test

import (
	"errors"
	"testing"

	"fieldstock/internal/domain"
	"fieldstock/internal/repos"
	"fieldstock/internal/services"
)

func usedFixtures(t *testing.T) (*services.StockService, *services.UsedMaterialService) {
	t.Helper()
	db := testDB(t)
	materials := repos.NewMaterialRepo(db)
	return services.NewStockService(materials), services.NewUsedMaterialService(repos.NewUsedMaterialRepo(db), materials)
}

func TestAcceptUsedMaterialDeductsOnce(t *testing.T) {
	stock, used := usedFixtures(t)
	m := newMaterial(t, stock, "Coax Reel", 10, 3)

	um, err := used.Submit("u-tech", m.ID, 6)
	if err != nil {
		t.Fatal(err)
	}
	if um.Status != domain.UsedPending {
		t.Fatalf("fresh report should be Pending, got %s", um.Status)
	}

	decided, after, err := used.Accept(um.ID, "matches the job sheet")
	if err != nil {
		t.Fatal(err)
	}
	if decided.Status != domain.UsedAccepted {
		t.Fatalf("want Accepted, got %s", decided.Status)
	}
	if after.Quantity != 4 {
		t.Fatalf("want qty=4, got %d", after.Quantity)
	}

	if _, _, err := used.Accept(um.ID, ""); !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("second accept: want ErrAlreadyDecided, got %v", err)
	}
	final, err := stock.Get(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Quantity != 4 {
		t.Fatalf("double accept must not deduct twice, got %d", final.Quantity)
	}
}

func TestAcceptBeyondStockRollsBack(t *testing.T) {
	stock, used := usedFixtures(t)
	m := newMaterial(t, stock, "Couplers", 2, 1)

	um, err := used.Submit("u-tech", m.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := used.Accept(um.ID, ""); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
	again, err := used.Used.ByID(um.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != domain.UsedPending {
		t.Fatalf("failed accept must leave the report Pending, got %s", again.Status)
	}
	after, err := stock.Get(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Quantity != 2 {
		t.Fatalf("stock must be untouched, got %d", after.Quantity)
	}
}

func TestAmendOwnershipAndState(t *testing.T) {
	stock, used := usedFixtures(t)
	m := newMaterial(t, stock, "Zip Ties", 30, 5)

	um, err := used.Submit("u-tech", m.ID, 3)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := used.Amend(um.ID, "someone-else", m.ID, 4); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign technician: want ErrForbidden, got %v", err)
	}

	got, err := used.Amend(um.ID, "u-tech", m.ID, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 4 {
		t.Fatalf("amend lost, got qty=%d", got.Quantity)
	}

	if _, err := used.Reject(um.ID, "count looks off"); err != nil {
		t.Fatal(err)
	}
	if _, err := used.Amend(um.ID, "u-tech", m.ID, 2); !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("amend after decision: want ErrAlreadyDecided, got %v", err)
	}
	after, err := stock.Get(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Quantity != 30 {
		t.Fatalf("rejection must not touch stock, got %d", after.Quantity)
	}
}
