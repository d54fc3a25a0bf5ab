package services_test

import (
	"errors"
	"testing"

	"fieldstock/internal/domain"
	"fieldstock/internal/repos"
	"fieldstock/internal/services"
)

func TestTaskAssignmentRules(t *testing.T) {
	db := testDB(t)
	svc := services.NewTaskService(repos.NewTaskRepo(db), repos.NewUserRepo(db))

	if _, err := svc.Create("Install ONT", "Acme Corp", "12 Harbor Rd", "u-admin"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("assigning to a non-technician: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create("Install ONT", "Acme Corp", "12 Harbor Rd", "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown assignee: want ErrNotFound, got %v", err)
	}

	task, err := svc.Create("Install ONT", "Acme Corp", "12 Harbor Rd", "u-tech")
	if err != nil {
		t.Fatal(err)
	}
	if task.Status != domain.TaskPending {
		t.Fatalf("want Pending, got %s", task.Status)
	}

	tech := &domain.User{ID: "u-tech", Username: "tech1", Role: domain.RoleTechnician}
	got, err := svc.UpdateStatus(task.ID, domain.TaskInProgress, tech)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TaskInProgress {
		t.Fatalf("want In Progress, got %s", got.Status)
	}

	other := &domain.User{ID: "u-other", Username: "tech2", Role: domain.RoleTechnician}
	if _, err := svc.UpdateStatus(task.ID, domain.TaskCompleted, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign technician: want ErrForbidden, got %v", err)
	}

	// technicians only see their own tasks
	mine, err := svc.List(tech)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 {
		t.Fatalf("want 1 task for the assignee, got %d", len(mine))
	}
	none, err := svc.List(other)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("want 0 tasks for another technician, got %d", len(none))
	}
}
