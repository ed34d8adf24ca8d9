package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/task-manager/models"
	"github.com/stretchr/testify/assert"
)

func validUser() models.User {
	return models.User{
		Name:          "Arryan",
		Email:         "arryan@umich.edu",
		Age:           20,
		PlainPassword: "thisisagoodpass",
	}
}

func TestUserValidator_Validate(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(u *models.User)
		fields  []string
		wantErr error
	}{
		{name: "valid user", mutate: func(*models.User) {}},
		{name: "empty name", mutate: func(u *models.User) { u.Name = "" }, wantErr: ErrInvalidName},
		{name: "empty email", mutate: func(u *models.User) { u.Email = "" }, wantErr: ErrInvalidEmail},
		{name: "malformed email", mutate: func(u *models.User) { u.Email = "not-an-email" }, wantErr: ErrInvalidEmail},
		{name: "negative age", mutate: func(u *models.User) { u.Age = -1 }, wantErr: ErrInvalidAge},
		{name: "zero age", mutate: func(u *models.User) { u.Age = 0 }},
		{name: "short password", mutate: func(u *models.User) { u.PlainPassword = "abc123" }, wantErr: ErrPasswordTooShort},
		{name: "missing password", mutate: func(u *models.User) { u.PlainPassword = "" }, wantErr: ErrPasswordTooShort},
		{name: "password too long", mutate: func(u *models.User) { u.PlainPassword = strings.Repeat("x", 73) }, wantErr: ErrPasswordTooLong},
		{name: "72 ascii bytes", mutate: func(u *models.User) { u.PlainPassword = strings.Repeat("x", 72) }},
		{name: "multibyte password over 72 bytes", mutate: func(u *models.User) { u.PlainPassword = strings.Repeat("€", 25) }, wantErr: ErrPasswordTooLong},
		{name: "multibyte password within 72 bytes", mutate: func(u *models.User) { u.PlainPassword = strings.Repeat("€", 24) }},
		{name: "password contains password", mutate: func(u *models.User) { u.PlainPassword = "myPassWord123" }, wantErr: ErrPasswordContainsPassword},
		{
			name:   "missing password ignored when not requested",
			mutate: func(u *models.User) { u.PlainPassword = "" },
			fields: []string{FieldName, FieldAge},
		},
		{
			name:    "only requested fields are checked",
			mutate:  func(u *models.User) { *u = models.User{Name: u.Name, Email: u.Email, Age: -3} },
			fields:  []string{FieldAge},
			wantErr: ErrInvalidAge,
		},
		{name: "unknown field", mutate: func(*models.User) {}, fields: []string{"role"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			tt.mutate(&user)

			err := v.Validate(ctx, user, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidator_AcceptsPointer(t *testing.T) {
	user := validUser()
	assert.NoError(t, NewUserValidator().Validate(context.Background(), &user))
}

func TestUserValidator_UnsupportedType(t *testing.T) {
	err := NewUserValidator().Validate(context.Background(), models.Task{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
