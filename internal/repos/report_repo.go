package repos

import (
	"github.com/jmoiron/sqlx"

	"fieldstock/internal/domain"
)

type ReportRepo struct{ db *sqlx.DB }

func NewReportRepo(db *sqlx.DB) *ReportRepo { return &ReportRepo{db: db} }

// UsageSummary aggregates request activity in a date window plus the current
// low-stock picture.
type UsageSummary struct {
	TotalUsed     int `db:"total_used" json:"total_used"`
	TotalRequests int `db:"total_requests" json:"total_requests"`
	ApprovedCount int `db:"approved_count" json:"approved_count"`
	PendingCount  int `db:"pending_count" json:"pending_count"`
	RejectedCount int `db:"rejected_count" json:"rejected_count"`
	LowStockCount int `db:"low_stock_count" json:"low_stock_count"`
}

// Summary computes the usage numbers for requests whose requested_at date
// falls in [from, to] (both YYYY-MM-DD, inclusive).
func (r *ReportRepo) Summary(from, to string) (UsageSummary, error) {
	var s UsageSummary
	err := r.db.Get(&s, `
		SELECT
		  COALESCE(SUM(CASE WHEN status = ? THEN quantity END), 0) AS total_used,
		  COUNT(*)                                                 AS total_requests,
		  COALESCE(SUM(CASE WHEN status = ? THEN 1 END), 0)        AS approved_count,
		  COALESCE(SUM(CASE WHEN status = ? THEN 1 END), 0)        AS pending_count,
		  COALESCE(SUM(CASE WHEN status = ? THEN 1 END), 0)        AS rejected_count,
		  (SELECT COUNT(*) FROM materials WHERE quantity < min_stock_level) AS low_stock_count
		FROM material_requests
		WHERE date(requested_at) BETWEEN date(?) AND date(?)
	`, domain.RequestApproved, domain.RequestApproved, domain.RequestPending, domain.RequestRejected, from, to)
	return s, err
}

// Recent returns the newest requests in the window for the report table.
func (r *ReportRepo) Recent(from, to string, limit int) ([]RequestDetail, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []RequestDetail
	err := r.db.Select(&out, `
		SELECT q.id, q.material_id, q.requester_id, q.quantity, q.notes, q.status, q.admin_note, q.requested_at,
		       m.name AS material_name, u.username AS requester
		FROM material_requests q
		JOIN materials m ON m.id = q.material_id
		JOIN users u     ON u.id = q.requester_id
		WHERE date(q.requested_at) BETWEEN date(?) AND date(?)
		ORDER BY datetime(q.requested_at) DESC
		LIMIT ?
	`, from, to, limit)
	return out, err
}

// Counts for the dashboard cards.
func (r *ReportRepo) DashboardCounts() (materials, pendingRequests int, err error) {
	if err = r.db.Get(&materials, `SELECT COUNT(*) FROM materials`); err != nil {
		return
	}
	err = r.db.Get(&pendingRequests, `SELECT COUNT(*) FROM material_requests WHERE status = ?`, domain.RequestPending)
	return
}
