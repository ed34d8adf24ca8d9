package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidName              = errors.New("name is required")
	ErrInvalidEmail             = errors.New("email is invalid")
	ErrInvalidAge               = errors.New("age must be a positive number")
	ErrPasswordTooShort         = errors.New("password must be at least 7 characters long")
	ErrPasswordTooLong          = errors.New("password must be at most 72 bytes long")
	ErrPasswordContainsPassword = errors.New(`password cannot contain "password"`)
	ErrInvalidDescription       = errors.New("description is required")
)
