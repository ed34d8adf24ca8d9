package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/task-manager/models"
	"github.com/stretchr/testify/assert"
)

func TestTaskValidator_Validate(t *testing.T) {
	v := NewTaskValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		task    any
		fields  []string
		wantErr error
	}{
		{name: "valid", task: models.Task{Description: "buy milk"}},
		{name: "valid pointer", task: &models.Task{Description: "buy milk", Completed: true}},
		{name: "empty description", task: models.Task{}, wantErr: ErrInvalidDescription},
		{name: "completed only", task: models.Task{}, fields: []string{FieldCompleted}},
		{name: "description requested", task: models.Task{}, fields: []string{FieldDescription}, wantErr: ErrInvalidDescription},
		{name: "unknown field", task: models.Task{Description: "x"}, fields: []string{"owner"}, wantErr: ErrUnknownField},
		{name: "unsupported type", task: models.User{}, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.task, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
