package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"fieldstock/internal/domain"
)

type RequestRepo struct{ db *sqlx.DB }

func NewRequestRepo(db *sqlx.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestCols = `id, material_id, requester_id, quantity, notes, status, admin_note, requested_at`

// RequestDetail joins in the material and requester names for listings.
type RequestDetail struct {
	domain.MaterialRequest
	MaterialName string `db:"material_name" json:"material_name"`
	Requester    string `db:"requester" json:"requester"`
}

func (r *RequestRepo) Create(req *domain.MaterialRequest) error {
	_, err := r.db.Exec(`
		INSERT INTO material_requests(id, material_id, requester_id, quantity, notes)
		VALUES(?, ?, ?, ?, ?)
	`, req.ID, req.MaterialID, req.RequesterID, req.Quantity, req.Notes)
	return err
}

func (r *RequestRepo) ByID(id string) (*domain.MaterialRequest, error) {
	var req domain.MaterialRequest
	if err := r.db.Get(&req, `SELECT `+requestCols+` FROM material_requests WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) ListLatest(limit int) ([]RequestDetail, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []RequestDetail
	err := r.db.Select(&out, `
		SELECT q.id, q.material_id, q.requester_id, q.quantity, q.notes, q.status, q.admin_note, q.requested_at,
		       m.name AS material_name, u.username AS requester
		FROM material_requests q
		JOIN materials m ON m.id = q.material_id
		JOIN users u     ON u.id = q.requester_id
		ORDER BY datetime(q.requested_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

// Approve flips the request to Approved and deducts the material's stock in
// one transaction: both change together or not at all. The status guard on
// the UPDATE makes a second approval a no-op at the database level, so a
// double click can never deduct twice.
func (r *RequestRepo) Approve(id, note string) (*domain.MaterialRequest, *domain.Material, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var req domain.MaterialRequest
	if err := tx.Get(&req, `SELECT `+requestCols+` FROM material_requests WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	switch req.Status {
	case domain.RequestApproved:
		return nil, nil, domain.ErrAlreadyApproved
	case domain.RequestRejected:
		return nil, nil, domain.ErrAlreadyDecided
	}

	res, err := tx.Exec(`
		UPDATE material_requests SET status = ?, admin_note = ?
		WHERE id = ? AND status = ?
	`, domain.RequestApproved, note, id, domain.RequestPending)
	if err != nil {
		return nil, nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil, domain.ErrAlreadyApproved
	}

	m, err := deductMaterialTx(tx, req.MaterialID, req.Quantity)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	req.Status = domain.RequestApproved
	req.AdminNote = note
	return &req, m, nil
}

// Reject is a single-row write with no stock side effect. Terminal states
// stay terminal.
func (r *RequestRepo) Reject(id, note string) (*domain.MaterialRequest, error) {
	req, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	switch req.Status {
	case domain.RequestApproved:
		return nil, domain.ErrAlreadyApproved
	case domain.RequestRejected:
		return nil, domain.ErrAlreadyDecided
	}
	if _, err := r.db.Exec(`
		UPDATE material_requests SET status = ?, admin_note = ?
		WHERE id = ? AND status = ?
	`, domain.RequestRejected, note, id, domain.RequestPending); err != nil {
		return nil, err
	}
	req.Status = domain.RequestRejected
	req.AdminNote = note
	return req, nil
}

// SaveNote updates admin_note without touching status; allowed in any state.
func (r *RequestRepo) SaveNote(id, note string) (*domain.MaterialRequest, error) {
	res, err := r.db.Exec(`UPDATE material_requests SET admin_note = ? WHERE id = ?`, note, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.ByID(id)
}

func (r *RequestRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM material_requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
