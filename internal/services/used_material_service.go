package services

import (
	"errors"

	"github.com/google/uuid"

	"fieldstock/internal/domain"
	"fieldstock/internal/metrics"
	"fieldstock/internal/repos"
)

// UsedMaterialService handles technician usage reports. Accepting one deducts
// stock through the same compare-and-decrement as request approval.
type UsedMaterialService struct {
	Used      *repos.UsedMaterialRepo
	Materials *repos.MaterialRepo
}

func NewUsedMaterialService(used *repos.UsedMaterialRepo, materials *repos.MaterialRepo) *UsedMaterialService {
	return &UsedMaterialService{Used: used, Materials: materials}
}

func (s *UsedMaterialService) List(limit int) ([]repos.UsedMaterialDetail, error) {
	return s.Used.ListLatest(limit)
}

func (s *UsedMaterialService) Submit(technicianID, materialID string, qty int) (*domain.UsedMaterial, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.Materials.ByID(materialID); err != nil {
		return nil, err
	}
	um := &domain.UsedMaterial{
		ID:           uuid.NewString(),
		TechnicianID: technicianID,
		MaterialID:   materialID,
		Quantity:     qty,
	}
	if err := s.Used.Create(um); err != nil {
		return nil, err
	}
	return s.Used.ByID(um.ID)
}

// Amend lets the reporting technician fix a still-pending report.
func (s *UsedMaterialService) Amend(id, technicianID, materialID string, qty int) (*domain.UsedMaterial, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidInput
	}
	um, err := s.Used.ByID(id)
	if err != nil {
		return nil, err
	}
	if um.TechnicianID != technicianID {
		return nil, domain.ErrForbidden
	}
	if _, err := s.Materials.ByID(materialID); err != nil {
		return nil, err
	}
	return s.Used.UpdatePending(id, materialID, qty)
}

func (s *UsedMaterialService) Accept(id, note string) (*domain.UsedMaterial, *domain.Material, error) {
	um, m, err := s.Used.Accept(id, note)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStock.Inc()
		}
		return nil, nil, err
	}
	metrics.StockDecrements.WithLabelValues("used_material").Inc()
	return um, m, nil
}

func (s *UsedMaterialService) Reject(id, note string) (*domain.UsedMaterial, error) {
	return s.Used.Reject(id, note)
}
