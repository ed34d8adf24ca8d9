package validators

import (
	"context"

	"github.com/MKhiriev/task-manager/models"
	"github.com/go-playground/validator/v10"
)

// FieldDescription targets the task description.
const FieldDescription = "description"

// FieldCompleted targets the task completion flag. It carries no rule beyond
// being a boolean, which the decoder already enforces.
const FieldCompleted = "completed"

type taskRules struct {
	Description string `validate:"required"`
	Completed   bool
}

var taskFields = map[string]string{
	FieldDescription: "Description",
	FieldCompleted:   "Completed",
}

type TaskValidator struct {
	engine *validator.Validate
}

func NewTaskValidator() Validator {
	return &TaskValidator{engine: newEngine()}
}

func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var task models.Task
	switch value := obj.(type) {
	case models.Task:
		task = value
	case *models.Task:
		task = *value
	default:
		return ErrUnsupportedType
	}

	resolved, err := resolveFields(taskFields, fields)
	if err != nil {
		return err
	}

	rules := taskRules{Description: task.Description, Completed: task.Completed}

	return check(ctx, v.engine, rules, resolved, func(fe validator.FieldError) error {
		if fe.StructField() == "Description" {
			return ErrInvalidDescription
		}
		return fe
	})
}
