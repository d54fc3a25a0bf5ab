package services

import (
	"github.com/google/uuid"

	"fieldstock/internal/domain"
	"fieldstock/internal/repos"
)

type TaskService struct {
	Tasks *repos.TaskRepo
	Users *repos.UserRepo
}

func NewTaskService(tasks *repos.TaskRepo, users *repos.UserRepo) *TaskService {
	return &TaskService{Tasks: tasks, Users: users}
}

// List shows technicians their own assignments only.
func (s *TaskService) List(actor *domain.User) ([]domain.Task, error) {
	if actor.Role == domain.RoleTechnician {
		return s.Tasks.List(actor.ID)
	}
	return s.Tasks.List("")
}

func (s *TaskService) Create(title, customer, address, technicianID string) (*domain.Task, error) {
	tech, err := s.Users.ByID(technicianID)
	if err != nil {
		return nil, err
	}
	if tech.Role != domain.RoleTechnician {
		return nil, domain.ErrInvalidInput
	}
	t := &domain.Task{
		ID:           uuid.NewString(),
		Title:        title,
		Customer:     customer,
		Address:      address,
		TechnicianID: technicianID,
	}
	if err := s.Tasks.Create(t); err != nil {
		return nil, err
	}
	return s.Tasks.ByID(t.ID)
}

// UpdateStatus: technicians may move their own tasks; admins and storekeepers
// any task.
func (s *TaskService) UpdateStatus(id, status string, actor *domain.User) (*domain.Task, error) {
	t, err := s.Tasks.ByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleTechnician && t.TechnicianID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if err := s.Tasks.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	t.Status = status
	return t, nil
}

func (s *TaskService) Delete(id string) error {
	return s.Tasks.Delete(id)
}
