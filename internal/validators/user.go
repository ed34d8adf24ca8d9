package validators

import (
	"context"

	"github.com/MKhiriev/task-manager/models"
	"github.com/go-playground/validator/v10"
)

// Field names accepted by the user validator.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldAge      = "age"
	FieldPassword = "password"
)

type userRules struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Age      int    `validate:"gte=0"`
	Password string `validate:"required,min=7,maxbytes=72,nopassword"`
}

var userFields = map[string]string{
	FieldName:     "Name",
	FieldEmail:    "Email",
	FieldAge:      "Age",
	FieldPassword: "Password",
}

// UserValidator checks the profile fields of a models.User. The password rule
// applies to the pending plaintext, so it should only be requested when a new
// password has been set.
type UserValidator struct {
	engine *validator.Validate
}

func NewUserValidator() Validator {
	return &UserValidator{engine: newEngine()}
}

// Validate checks obj, a models.User or *models.User. With no fields every
// rule is checked; otherwise only the named ones.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var user models.User
	switch value := obj.(type) {
	case models.User:
		user = value
	case *models.User:
		user = *value
	default:
		return ErrUnsupportedType
	}

	resolved, err := resolveFields(userFields, fields)
	if err != nil {
		return err
	}

	rules := userRules{
		Name:     user.Name,
		Email:    user.Email,
		Age:      user.Age,
		Password: user.PlainPassword,
	}

	return check(ctx, v.engine, rules, resolved, translateUserError)
}

func translateUserError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "Name":
		return ErrInvalidName
	case "Email":
		return ErrInvalidEmail
	case "Age":
		return ErrInvalidAge
	case "Password":
		switch fe.Tag() {
		case tagNoPassword:
			return ErrPasswordContainsPassword
		case tagMaxBytes:
			return ErrPasswordTooLong
		}
		return ErrPasswordTooShort
	default:
		return fe
	}
}
