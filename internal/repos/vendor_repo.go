package repos

import (
	"github.com/jmoiron/sqlx"

	"fieldstock/internal/domain"
)

type VendorRepo struct{ db *sqlx.DB }

func NewVendorRepo(db *sqlx.DB) *VendorRepo { return &VendorRepo{db: db} }

func (r *VendorRepo) Create(v *domain.Vendor) error {
	_, err := r.db.Exec(`
		INSERT INTO vendors(id, name, contact_person, email, phone, address, created_by)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.Name, v.ContactPerson, v.Email, v.Phone, v.Address, v.CreatedBy)
	return err
}

func (r *VendorRepo) List() ([]domain.Vendor, error) {
	var out []domain.Vendor
	err := r.db.Select(&out, `
		SELECT id, name, contact_person, email, phone, address, created_by, created_at
		FROM vendors ORDER BY name
	`)
	return out, err
}

func (r *VendorRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
