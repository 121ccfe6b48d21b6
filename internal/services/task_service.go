package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ed9408/minerva-api/internal/models"
	"github.com/ed9408/minerva-api/internal/repo"
	"github.com/ed9408/minerva-api/internal/utils"
)

type TaskStore interface {
	Create(ctx context.Context, ownerID int64, title string, description *string) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error)
	GetByID(ctx context.Context, ownerID, taskID int64) (*models.Task, error)
	Update(ctx context.Context, ownerID, taskID int64, update repo.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID int64) (bool, error)
}

// TaskService passes the resolved owner id into every store call. Tasks of
// other users are indistinguishable from tasks that do not exist.
type TaskService struct {
	tasks TaskStore
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, title string, description *string) (*models.Task, error) {
	task, err := s.tasks.Create(ctx, ownerID, title, description)
	if err != nil {
		return nil, utils.ErrDomainValidation("could not create task")
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID int64) ([]models.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDomainValidation("could not list tasks")
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID int64) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound("task not found")
		}
		return nil, utils.ErrDomainValidation("could not load task")
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID int64, update repo.TaskUpdate) (*models.Task, error) {
	task, err := s.tasks.Update(ctx, ownerID, taskID, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound("task not found")
		}
		return nil, utils.ErrDomainValidation("could not update task")
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID int64) error {
	deleted, err := s.tasks.Delete(ctx, ownerID, taskID)
	if err != nil {
		return utils.ErrDomainValidation("could not delete task")
	}
	if !deleted {
		return utils.ErrNotFound("task not found")
	}
	return nil
}
