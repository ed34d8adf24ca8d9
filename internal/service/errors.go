package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrValidation          = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("unable to login")
	ErrUnauthorized       = errors.New("please authenticate")

	ErrInvalidUpdates     = errors.New("invalid updates")
	ErrInvalidFieldValue  = errors.New("invalid field value")
	ErrInvalidTaskFilter  = errors.New("invalid task filter")
	ErrPasswordHashFailed = errors.New("password hashing failed")

	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
