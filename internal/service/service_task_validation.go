package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/task-manager/internal/validators"
	"github.com/MKhiriev/task-manager/models"
)

// taskSortFields lists the fields a task listing may be ordered by.
var taskSortFields = map[string]struct{}{
	"created_at":  {},
	"createdAt":   {},
	"updated_at":  {},
	"updatedAt":   {},
	"description": {},
	"completed":   {},
}

// TaskValidationService checks create requests and list filters before they
// reach the wrapped TaskService.
type TaskValidationService struct {
	inner     TaskService
	validator validators.Validator
}

func NewTaskValidationService() TaskServiceWrapper {
	return &TaskValidationService{
		validator: validators.NewTaskValidator(),
	}
}

func (v *TaskValidationService) Create(ctx context.Context, owner string, req models.CreateTaskRequest) (models.Task, error) {
	if owner == "" {
		return models.Task{}, ErrInvalidDataProvided
	}

	task := normalizeTask(models.Task{Description: req.Description, Completed: req.Completed})
	if err := v.validator.Validate(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Create(ctx, owner, req)
}

func (v *TaskValidationService) Get(ctx context.Context, owner, taskID string) (models.Task, error) {
	return v.inner.Get(ctx, owner, taskID)
}

func (v *TaskValidationService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Owner == "" {
		return nil, ErrInvalidDataProvided
	}
	if filter.SortBy != "" {
		if _, ok := taskSortFields[filter.SortBy]; !ok {
			return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidTaskFilter, filter.SortBy)
		}
	}
	switch filter.SortOrder {
	case "", models.SortAsc, models.SortDesc:
	default:
		return nil, fmt.Errorf("%w: unknown sort order %q", ErrInvalidTaskFilter, filter.SortOrder)
	}

	return v.inner.List(ctx, filter)
}

func (v *TaskValidationService) Update(ctx context.Context, owner, taskID string, payload Payload) (models.Task, error) {
	return v.inner.Update(ctx, owner, taskID, payload)
}

func (v *TaskValidationService) Delete(ctx context.Context, owner, taskID string) (models.Task, error) {
	return v.inner.Delete(ctx, owner, taskID)
}

func (v *TaskValidationService) Wrap(inner TaskService) TaskService {
	v.inner = inner
	return v
}

// ParseSortBy splits a "<field>:<asc|desc>" query value. A missing direction
// means ascending.
func ParseSortBy(value string) (string, models.SortOrder) {
	field, order, found := strings.Cut(value, ":")
	if !found {
		return field, models.SortAsc
	}
	return field, models.SortOrder(strings.ToLower(order))
}
