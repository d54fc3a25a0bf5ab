package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"fieldstock/internal/domain"
)

type UsedMaterialRepo struct{ db *sqlx.DB }

func NewUsedMaterialRepo(db *sqlx.DB) *UsedMaterialRepo { return &UsedMaterialRepo{db: db} }

const usedCols = `id, technician_id, material_id, quantity, status, admin_note, added_at`

type UsedMaterialDetail struct {
	domain.UsedMaterial
	MaterialName string `db:"material_name" json:"material_name"`
	Technician   string `db:"technician" json:"technician"`
}

func (r *UsedMaterialRepo) Create(um *domain.UsedMaterial) error {
	_, err := r.db.Exec(`
		INSERT INTO used_materials(id, technician_id, material_id, quantity)
		VALUES(?, ?, ?, ?)
	`, um.ID, um.TechnicianID, um.MaterialID, um.Quantity)
	return err
}

func (r *UsedMaterialRepo) ByID(id string) (*domain.UsedMaterial, error) {
	var um domain.UsedMaterial
	if err := r.db.Get(&um, `SELECT `+usedCols+` FROM used_materials WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &um, nil
}

func (r *UsedMaterialRepo) ListLatest(limit int) ([]UsedMaterialDetail, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []UsedMaterialDetail
	err := r.db.Select(&out, `
		SELECT um.id, um.technician_id, um.material_id, um.quantity, um.status, um.admin_note, um.added_at,
		       m.name AS material_name, u.username AS technician
		FROM used_materials um
		JOIN materials m ON m.id = um.material_id
		JOIN users u     ON u.id = um.technician_id
		ORDER BY datetime(um.added_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

// UpdatePending lets the owning technician amend a report that has not been
// decided yet.
func (r *UsedMaterialRepo) UpdatePending(id, materialID string, qty int) (*domain.UsedMaterial, error) {
	res, err := r.db.Exec(`
		UPDATE used_materials SET material_id = ?, quantity = ?
		WHERE id = ? AND status = ?
	`, materialID, qty, id, domain.UsedPending)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.ByID(id); err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadyDecided
	}
	return r.ByID(id)
}

// Accept deducts the reported quantity through the shared compare-and-
// decrement and marks the report Accepted, atomically.
func (r *UsedMaterialRepo) Accept(id, note string) (*domain.UsedMaterial, *domain.Material, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var um domain.UsedMaterial
	if err := tx.Get(&um, `SELECT `+usedCols+` FROM used_materials WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	if um.Status != domain.UsedPending {
		return nil, nil, domain.ErrAlreadyDecided
	}

	res, err := tx.Exec(`
		UPDATE used_materials SET status = ?, admin_note = ?
		WHERE id = ? AND status = ?
	`, domain.UsedAccepted, note, id, domain.UsedPending)
	if err != nil {
		return nil, nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil, domain.ErrAlreadyDecided
	}

	m, err := deductMaterialTx(tx, um.MaterialID, um.Quantity)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	um.Status = domain.UsedAccepted
	um.AdminNote = note
	return &um, m, nil
}

func (r *UsedMaterialRepo) Reject(id, note string) (*domain.UsedMaterial, error) {
	um, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if um.Status != domain.UsedPending {
		return nil, domain.ErrAlreadyDecided
	}
	if _, err := r.db.Exec(`
		UPDATE used_materials SET status = ?, admin_note = ?
		WHERE id = ? AND status = ?
	`, domain.UsedRejected, note, id, domain.UsedPending); err != nil {
		return nil, err
	}
	um.Status = domain.UsedRejected
	um.AdminNote = note
	return um, nil
}
