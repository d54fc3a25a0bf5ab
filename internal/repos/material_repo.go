package repos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"fieldstock/internal/domain"
)

type MaterialRepo struct{ db *sqlx.DB }

func NewMaterialRepo(db *sqlx.DB) *MaterialRepo { return &MaterialRepo{db: db} }

const materialCols = `id, name, category, quantity, min_stock_level, notes, status, added_by, added_at`

// ListFilter narrows the material listing (search text, derived stock state,
// owner). Technician callers get AddedBy pinned to their own username.
type ListFilter struct {
	Search      string
	StockStatus string // "low" | "normal" | ""
	AddedBy     string
}

func (r *MaterialRepo) List(f ListFilter) ([]domain.Material, error) {
	q := `SELECT ` + materialCols + ` FROM materials`
	var conds []string
	var args []any

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, `(LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(notes) LIKE ? OR LOWER(added_by) LIKE ?)`)
		args = append(args, like, like, like, like)
	}
	switch f.StockStatus {
	case "low":
		conds = append(conds, `quantity < min_stock_level`)
	case "normal":
		conds = append(conds, `quantity >= min_stock_level`)
	}
	if f.AddedBy != "" {
		conds = append(conds, `added_by = ?`)
		args = append(args, f.AddedBy)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY datetime(added_at) DESC"

	var out []domain.Material
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *MaterialRepo) ByID(id string) (*domain.Material, error) {
	var m domain.Material
	if err := r.db.Get(&m, `SELECT `+materialCols+` FROM materials WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create persists a new material; status is derived on the way in so it can
// never start out inconsistent with quantity.
func (r *MaterialRepo) Create(m *domain.Material) error {
	m.Status = domain.RecomputeStatus(*m)
	_, err := r.db.Exec(`
		INSERT INTO materials(id, name, category, quantity, min_stock_level, notes, status, added_by)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Category, m.Quantity, m.MinStockLevel, m.Notes, m.Status, m.AddedBy)
	return err
}

// Update rewrites the editable fields and recomputes status (every persist
// path runs the recompute).
func (r *MaterialRepo) Update(m *domain.Material) error {
	m.Status = domain.RecomputeStatus(*m)
	res, err := r.db.Exec(`
		UPDATE materials
		SET name = ?, category = ?, quantity = ?, min_stock_level = ?, notes = ?, status = ?
		WHERE id = ?
	`, m.Name, m.Category, m.Quantity, m.MinStockLevel, m.Notes, m.Status, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM materials WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPinned applies a manual status override (Reserved/Deprecated) or clears
// it ("auto"). The quantity floor rules still win while stock is short.
func (r *MaterialRepo) SetPinned(id, status string) (*domain.Material, error) {
	m, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if status == "auto" {
		m.Status = domain.StatusNormal
	} else {
		m.Status = domain.StockStatus(status)
	}
	m.Status = domain.RecomputeStatus(*m)
	if _, err := r.db.Exec(`UPDATE materials SET status = ? WHERE id = ?`, m.Status, id); err != nil {
		return nil, err
	}
	return m, nil
}

// Use atomically takes qty units of stock. The conditional UPDATE is the
// authoritative check: two concurrent uses can never both pass it, so the
// quantity cannot go negative or lose an update.
func (r *MaterialRepo) Use(id string, qty int) (*domain.Material, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	m, err := deductMaterialTx(tx, id, qty)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

// deductMaterialTx subtracts qty inside tx and re-derives status. Shared by
// direct use, request approval and used-material acceptance so every
// deduction goes through the same compare-and-decrement.
func deductMaterialTx(tx *sqlx.Tx, materialID string, qty int) (*domain.Material, error) {
	var m domain.Material
	if err := tx.Get(&m, `SELECT `+materialCols+` FROM materials WHERE id = ?`, materialID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	res, err := tx.Exec(`
		UPDATE materials
		SET quantity = quantity - ?
		WHERE id = ? AND quantity >= ?
	`, qty, materialID, qty)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrInsufficientStock
	}

	m.Quantity -= qty
	m.Status = domain.RecomputeStatus(m)
	if _, err := tx.Exec(`UPDATE materials SET status = ? WHERE id = ?`, m.Status, materialID); err != nil {
		return nil, err
	}
	return &m, nil
}

// Receive adds stock (requisition returns, vendor deliveries) and recomputes
// status under the same transaction.
func (r *MaterialRepo) Receive(id string, qty int) (*domain.Material, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var m domain.Material
	if err := tx.Get(&m, `SELECT `+materialCols+` FROM materials WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE materials SET quantity = quantity + ? WHERE id = ?`, qty, id); err != nil {
		return nil, err
	}
	m.Quantity += qty
	m.Status = domain.RecomputeStatus(m)
	if _, err := tx.Exec(`UPDATE materials SET status = ? WHERE id = ?`, m.Status, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &m, nil
}
