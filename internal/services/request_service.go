package services

import (
	"errors"

	"github.com/google/uuid"

	"fieldstock/internal/domain"
	"fieldstock/internal/metrics"
	"fieldstock/internal/repos"
)

// RequestService drives the requisition state machine:
// Pending -> Approved | Rejected, with no way back out of a terminal state.
type RequestService struct {
	Requests  *repos.RequestRepo
	Materials *repos.MaterialRepo
}

func NewRequestService(requests *repos.RequestRepo, materials *repos.MaterialRepo) *RequestService {
	return &RequestService{Requests: requests, Materials: materials}
}

func (s *RequestService) List(limit int) ([]repos.RequestDetail, error) {
	return s.Requests.ListLatest(limit)
}

// Submit creates a Pending request. Stock is not checked or reserved here;
// that only happens at approval time.
func (s *RequestService) Submit(materialID, requesterID string, qty int, note string) (*domain.MaterialRequest, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.Materials.ByID(materialID); err != nil {
		return nil, err
	}
	req := &domain.MaterialRequest{
		ID:          uuid.NewString(),
		MaterialID:  materialID,
		RequesterID: requesterID,
		Quantity:    qty,
		Notes:       note,
	}
	if err := s.Requests.Create(req); err != nil {
		return nil, err
	}
	return s.Requests.ByID(req.ID)
}

// Approve deducts stock and flips the request inside one transaction. An
// advisory pre-check gives a clean refusal when stock is obviously short;
// the authoritative re-check lives in the transaction itself.
func (s *RequestService) Approve(id, adminNote string) (*domain.MaterialRequest, *domain.Material, error) {
	req, err := s.Requests.ByID(id)
	if err != nil {
		return nil, nil, err
	}
	if req.Status == domain.RequestPending {
		if m, err := s.Materials.ByID(req.MaterialID); err == nil && m.Quantity < req.Quantity {
			metrics.InsufficientStock.Inc()
			return nil, nil, domain.ErrInsufficientStock
		}
	}

	req, m, err := s.Requests.Approve(id, adminNote)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStock.Inc()
		}
		return nil, nil, err
	}
	metrics.StockDecrements.WithLabelValues("approval").Inc()
	metrics.RequestDecisions.WithLabelValues("approved").Inc()
	return req, m, nil
}

func (s *RequestService) Reject(id, adminNote string) (*domain.MaterialRequest, error) {
	req, err := s.Requests.Reject(id, adminNote)
	if err != nil {
		return nil, err
	}
	metrics.RequestDecisions.WithLabelValues("rejected").Inc()
	return req, nil
}

func (s *RequestService) SaveNote(id, note string) (*domain.MaterialRequest, error) {
	return s.Requests.SaveNote(id, note)
}

func (s *RequestService) Delete(id string) error {
	return s.Requests.Delete(id)
}
