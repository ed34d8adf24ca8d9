package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/store"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/internal/validators"
	"github.com/MKhiriev/task-manager/models"
)

type taskService struct {
	taskRepository store.TaskRepository

	validator validators.Validator
	newID     utils.IDGenerator

	logger *logger.Logger
}

func NewTaskService(tasks store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: tasks,
		validator:      validators.NewTaskValidator(),
		newID:          utils.NewID,
		logger:         logger,
	}
}

func (s *taskService) Create(ctx context.Context, owner string, req models.CreateTaskRequest) (models.Task, error) {
	task := normalizeTask(models.Task{
		ID:          s.newID(),
		Description: req.Description,
		Completed:   req.Completed,
		Owner:       owner,
	})

	created, err := s.taskRepository.CreateTask(ctx, task)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("owner", owner).Msg("task creation failed")
		return models.Task{}, fmt.Errorf("task creation failed: %w", err)
	}

	return created, nil
}

func (s *taskService) Get(ctx context.Context, owner, taskID string) (models.Task, error) {
	return s.taskRepository.FindTask(ctx, owner, taskID)
}

func (s *taskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.taskRepository.ListTasks(ctx, filter)
}

// Update loads the owner's task, applies the whitelisted fields and saves
// it back. Owner and ID are never taken from the payload.
func (s *taskService) Update(ctx context.Context, owner, taskID string, payload Payload) (models.Task, error) {
	if err := taskWhitelist.Check(payload); err != nil {
		return models.Task{}, err
	}

	task, err := s.taskRepository.FindTask(ctx, owner, taskID)
	if err != nil {
		return models.Task{}, err
	}

	updated, fields, err := taskWhitelist.Apply(task, payload)
	if err != nil {
		return models.Task{}, err
	}

	updated = normalizeTask(updated)
	if len(fields) > 0 {
		if err = s.validator.Validate(ctx, updated, fields...); err != nil {
			return models.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	saved, err := s.taskRepository.UpdateTask(ctx, updated)
	if err != nil {
		return models.Task{}, fmt.Errorf("task update failed: %w", err)
	}

	return saved, nil
}

func (s *taskService) Delete(ctx context.Context, owner, taskID string) (models.Task, error) {
	return s.taskRepository.DeleteTask(ctx, owner, taskID)
}
