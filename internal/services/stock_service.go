package services

import (
	"errors"

	"github.com/google/uuid"

	"fieldstock/internal/domain"
	"fieldstock/internal/metrics"
	"fieldstock/internal/repos"
)

// StockService is the stock ledger: it owns material records and keeps the
// derived status consistent with quantity on every mutation path.
type StockService struct {
	Materials *repos.MaterialRepo
}

func NewStockService(materials *repos.MaterialRepo) *StockService {
	return &StockService{Materials: materials}
}

// List applies the technician visibility rule: technicians only see rows
// they created.
func (s *StockService) List(f repos.ListFilter, actor *domain.User) ([]domain.Material, error) {
	if actor.Role == domain.RoleTechnician {
		f.AddedBy = actor.Username
	}
	return s.Materials.List(f)
}

func (s *StockService) Get(id string) (*domain.Material, error) {
	return s.Materials.ByID(id)
}

func (s *StockService) Create(m *domain.Material, actor *domain.User) (*domain.Material, error) {
	if !domain.CanCreateMaterial(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if m.Quantity < 0 || m.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	m.ID = uuid.NewString()
	m.AddedBy = actor.Username
	if err := s.Materials.Create(m); err != nil {
		return nil, err
	}
	return s.Materials.ByID(m.ID)
}

// Update edits an existing material. Storekeepers and technicians may only
// touch their own rows; admins any. The notes field mirrors the original
// read-only form widget: non-admin input is ignored and the stored value
// kept (field masking is a capability, not an error).
func (s *StockService) Update(m *domain.Material, actor *domain.User) (*domain.Material, error) {
	if m.Quantity < 0 || m.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	cur, err := s.Materials.ByID(m.ID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && cur.AddedBy != actor.Username {
		return nil, domain.ErrForbidden
	}
	if !domain.CanEdit(actor.Role, "notes") {
		m.Notes = cur.Notes
	}
	m.Status = cur.Status // carry any pin; recompute happens on persist
	if err := s.Materials.Update(m); err != nil {
		return nil, err
	}
	return s.Materials.ByID(m.ID)
}

func (s *StockService) Delete(id string, actor *domain.User) error {
	cur, err := s.Materials.ByID(id)
	if err != nil {
		return err
	}
	if actor.Role == domain.RoleTechnician && cur.AddedBy != actor.Username {
		return domain.ErrForbidden
	}
	return s.Materials.Delete(id)
}

// UseMaterial performs the atomic compare-and-decrement for a technician
// taking stock into the field. The role check runs here as well as in the
// handler guard: the decrement must refuse even a caller that skipped it.
func (s *StockService) UseMaterial(id string, amount int, role domain.Role) (*domain.Material, error) {
	if amount < 1 {
		return nil, domain.ErrInvalidInput
	}
	if !domain.CanUseMaterial(role) {
		return nil, domain.ErrForbidden
	}
	m, err := s.Materials.Use(id, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStock.Inc()
		}
		return nil, err
	}
	metrics.StockDecrements.WithLabelValues("use").Inc()
	return m, nil
}

// Receive books incoming stock (vendor delivery).
func (s *StockService) Receive(id string, amount int) (*domain.Material, error) {
	if amount < 1 {
		return nil, domain.ErrInvalidInput
	}
	return s.Materials.Receive(id, amount)
}

// SetPinned applies or clears a manual Reserved/Deprecated override.
func (s *StockService) SetPinned(id, status string) (*domain.Material, error) {
	return s.Materials.SetPinned(id, status)
}
