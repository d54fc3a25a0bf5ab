package domain

type Material struct {
	ID            string      `db:"id" json:"id"`
	Name          string      `db:"name" json:"name"`
	Category      string      `db:"category" json:"category"` // Internet | Dish
	Quantity      int         `db:"quantity" json:"quantity"`
	MinStockLevel int         `db:"min_stock_level" json:"min_stock_level"`
	Notes         string      `db:"notes" json:"notes"`
	Status        StockStatus `db:"status" json:"status"`
	AddedBy       string      `db:"added_by" json:"added_by"` // username of the creator
	AddedAt       string      `db:"added_at" json:"added_at"`
}

type MaterialRequest struct {
	ID          string `db:"id" json:"id"`
	MaterialID  string `db:"material_id" json:"material_id"`
	RequesterID string `db:"requester_id" json:"requester_id"`
	Quantity    int    `db:"quantity" json:"quantity"`
	Notes       string `db:"notes" json:"notes"`
	Status      string `db:"status" json:"status"` // Pending | Approved | Rejected
	AdminNote   string `db:"admin_note" json:"admin_note"`
	RequestedAt string `db:"requested_at" json:"requested_at"`
}

type Task struct {
	ID           string `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Customer     string `db:"customer" json:"customer"`
	Address      string `db:"address" json:"address"`
	TechnicianID string `db:"technician_id" json:"technician_id"`
	Status       string `db:"status" json:"status"` // Pending | In Progress | Completed
	CreatedAt    string `db:"created_at" json:"created_at"`
}

type UsedMaterial struct {
	ID           string `db:"id" json:"id"`
	TechnicianID string `db:"technician_id" json:"technician_id"`
	MaterialID   string `db:"material_id" json:"material_id"`
	Quantity     int    `db:"quantity" json:"quantity"`
	Status       string `db:"status" json:"status"` // Pending | Accepted | Rejected
	AdminNote    string `db:"admin_note" json:"admin_note"`
	AddedAt      string `db:"added_at" json:"added_at"`
}

type Vendor struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Email         string `db:"email" json:"email"`
	Phone         string `db:"phone" json:"phone"`
	Address       string `db:"address" json:"address"`
	CreatedBy     string `db:"created_by" json:"created_by"`
	CreatedAt     string `db:"created_at" json:"created_at"`
}

const (
	CategoryInternet = "Internet"
	CategoryDish     = "Dish"
)

const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestRejected = "Rejected"
)

const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

const (
	UsedPending  = "Pending"
	UsedAccepted = "Accepted"
	UsedRejected = "Rejected"
)
