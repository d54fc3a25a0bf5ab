package domain

type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleStorekeeper Role = "Storekeeper"
	RoleTechnician  Role = "Technician"
)

type User struct {
	ID       string `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Name     string `db:"name" json:"name"`
	Hash     string `db:"password_hash" json:"-"`
	Role     Role   `db:"role" json:"role"`
}
