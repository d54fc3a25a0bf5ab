package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"fieldstock/internal/domain"
)

type TaskRepo struct{ db *sqlx.DB }

func NewTaskRepo(db *sqlx.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskCols = `id, title, customer, address, technician_id, status, created_at`

func (r *TaskRepo) Create(t *domain.Task) error {
	_, err := r.db.Exec(`
		INSERT INTO tasks(id, title, customer, address, technician_id)
		VALUES(?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Customer, t.Address, t.TechnicianID)
	return err
}

func (r *TaskRepo) ByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.Get(&t, `SELECT `+taskCols+` FROM tasks WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tasks, or only those assigned to technicianID when set.
func (r *TaskRepo) List(technicianID string) ([]domain.Task, error) {
	var out []domain.Task
	if technicianID != "" {
		err := r.db.Select(&out, `
			SELECT `+taskCols+` FROM tasks WHERE technician_id = ?
			ORDER BY datetime(created_at) DESC
		`, technicianID)
		return out, err
	}
	err := r.db.Select(&out, `SELECT `+taskCols+` FROM tasks ORDER BY datetime(created_at) DESC`)
	return out, err
}

func (r *TaskRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActive backs the dashboard summary.
func (r *TaskRepo) CountActive() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM tasks WHERE status = ?`, domain.TaskInProgress)
	return n, err
}
