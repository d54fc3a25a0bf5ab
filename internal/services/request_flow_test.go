package services_test

import (
	"errors"
	"testing"

	"fieldstock/internal/domain"
	"fieldstock/internal/repos"
	"fieldstock/internal/services"
)

func requestFixtures(t *testing.T) (*services.StockService, *services.RequestService) {
	t.Helper()
	db := testDB(t)
	materials := repos.NewMaterialRepo(db)
	return services.NewStockService(materials), services.NewRequestService(repos.NewRequestRepo(db), materials)
}

func TestApproveDeductsStockAtomically(t *testing.T) {
	stock, reqs := requestFixtures(t)
	m := newMaterial(t, stock, "Fiber Spool", 10, 5)

	req, err := reqs.Submit(m.ID, "u-tech", 10, "full spool for the north run")
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != domain.RequestPending {
		t.Fatalf("fresh request should be Pending, got %s", req.Status)
	}

	decided, after, err := reqs.Approve(req.ID, "go ahead")
	if err != nil {
		t.Fatal(err)
	}
	if decided.Status != domain.RequestApproved || decided.AdminNote != "go ahead" {
		t.Fatalf("want Approved with note, got %s %q", decided.Status, decided.AdminNote)
	}
	if after.Quantity != 0 || after.Status != domain.StatusOutOfStock {
		t.Fatalf("want qty=0 Out of Stock after approval, got qty=%d %s", after.Quantity, after.Status)
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	stock, reqs := requestFixtures(t)
	m := newMaterial(t, stock, "Router Stock", 10, 2)

	req, err := reqs.Submit(m.ID, "u-tech", 4, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := reqs.Approve(req.ID, ""); err != nil {
		t.Fatal(err)
	}

	if _, _, err := reqs.Approve(req.ID, ""); !errors.Is(err, domain.ErrAlreadyApproved) {
		t.Fatalf("second approval: want ErrAlreadyApproved, got %v", err)
	}
	after, err := stock.Get(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Quantity != 6 {
		t.Fatalf("double approval must not deduct twice, got qty=%d", after.Quantity)
	}
}

func TestApproveBeyondStockLeavesRequestPending(t *testing.T) {
	stock, reqs := requestFixtures(t)
	m := newMaterial(t, stock, "Wall Mounts", 3, 1)

	req, err := reqs.Submit(m.ID, "u-tech", 5, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := reqs.Approve(req.ID, ""); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	// neither side of the transaction may have landed
	after, err := stock.Get(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Quantity != 3 {
		t.Fatalf("stock must be untouched, got qty=%d", after.Quantity)
	}
	again, err := reqs.Requests.ByID(req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != domain.RequestPending {
		t.Fatalf("request must stay Pending for a later retry, got %s", again.Status)
	}

	// restock and the same request goes through
	if _, err := stock.Receive(m.ID, 10); err != nil {
		t.Fatal(err)
	}
	if _, _, err := reqs.Approve(req.ID, "after delivery"); err != nil {
		t.Fatal(err)
	}
}

func TestRejectHasNoStockEffect(t *testing.T) {
	stock, reqs := requestFixtures(t)
	m := newMaterial(t, stock, "Clamps", 8, 2)

	req, err := reqs.Submit(m.ID, "u-tech", 3, "")
	if err != nil {
		t.Fatal(err)
	}
	decided, err := reqs.Reject(req.ID, "use the open box first")
	if err != nil {
		t.Fatal(err)
	}
	if decided.Status != domain.RequestRejected {
		t.Fatalf("want Rejected, got %s", decided.Status)
	}
	after, err := stock.Get(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Quantity != 8 {
		t.Fatalf("rejection must not touch stock, got qty=%d", after.Quantity)
	}

	// terminal states stay terminal
	if _, _, err := reqs.Approve(req.ID, ""); !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("approve after reject: want ErrAlreadyDecided, got %v", err)
	}
	if _, err := reqs.Reject(req.ID, ""); !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("second reject: want ErrAlreadyDecided, got %v", err)
	}
}

func TestSubmitGuards(t *testing.T) {
	stock, reqs := requestFixtures(t)
	m := newMaterial(t, stock, "Patch Panel", 5, 1)

	if _, err := reqs.Submit(m.ID, "u-tech", 0, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero qty: want ErrInvalidInput, got %v", err)
	}
	if _, err := reqs.Submit("no-such-material", "u-tech", 1, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing material: want ErrNotFound, got %v", err)
	}

	// over-stock submissions are allowed; the check happens at approval
	req, err := reqs.Submit(m.ID, "u-tech", 50, "")
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != domain.RequestPending {
		t.Fatalf("want Pending, got %s", req.Status)
	}
}

func TestSaveNoteWorksInAnyState(t *testing.T) {
	stock, reqs := requestFixtures(t)
	m := newMaterial(t, stock, "Conduit", 10, 2)

	req, err := reqs.Submit(m.ID, "u-tech", 2, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reqs.SaveNote(req.ID, "checking with vendor"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := reqs.Approve(req.ID, "ok"); err != nil {
		t.Fatal(err)
	}
	got, err := reqs.SaveNote(req.ID, "handed over on site")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.RequestApproved || got.AdminNote != "handed over on site" {
		t.Fatalf("note edit must not disturb status, got %s %q", got.Status, got.AdminNote)
	}

	if _, err := reqs.SaveNote("no-such-request", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
