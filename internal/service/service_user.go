// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/adapter"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/store"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/internal/validators"
	"github.com/MKhiriev/task-manager/models"
)

type userService struct {
	userRepository store.UserRepository

	sessions    SessionService
	credentials CredentialService
	validator   validators.Validator
	notifier    adapter.Notifier
	newID       utils.IDGenerator

	logger *logger.Logger
}

func NewUserService(
	users store.UserRepository,
	sessions SessionService,
	credentials CredentialService,
	notifier adapter.Notifier,
	logger *logger.Logger,
) UserService {
	return &userService{
		userRepository: users,
		sessions:       sessions,
		credentials:    credentials,
		validator:      validators.NewUserValidator(),
		notifier:       notifier,
		newID:          utils.NewID,
		logger:         logger,
	}
}

// Register validates the sign-up data, hashes the password, creates the
// account, sends the welcome mail and opens the first session.
func (s *userService) Register(ctx context.Context, user models.User) (models.User, string, error) {
	log := logger.FromContext(ctx)

	user = normalizeUser(user)
	if err := s.validator.Validate(ctx, user); err != nil {
		return models.User{}, "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user.ID = s.newID()
	user, err := applyPendingSideEffects(user, s.credentials)
	if err != nil {
		return models.User{}, "", err
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, "", fmt.Errorf("user creation ended with error: %w", err)
	}

	s.notify(ctx, welcomeMail(created))

	token, err := s.sessions.Issue(ctx, created)
	if err != nil {
		return models.User{}, "", err
	}

	return created, token, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *userService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.userRepository.FindUserByEmail(ctx, normalizeUser(models.User{Email: email}).Email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("user search by email failed: %w", err)
	}

	if !s.credentials.Verify(password, user.Password) {
		logger.FromContext(ctx).Debug().Str("user_id", user.ID).Msg("wrong password")
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, user)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

func (s *userService) Update(ctx context.Context, user models.User, payload Payload) (models.User, error) {
	updated, fields, err := userWhitelist.Apply(user, payload)
	if err != nil {
		return models.User{}, err
	}

	updated = normalizeUser(updated)
	if len(fields) > 0 {
		if err = s.validator.Validate(ctx, updated, fields...); err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	updated, err = applyPendingSideEffects(updated, s.credentials)
	if err != nil {
		return models.User{}, err
	}

	saved, err := s.userRepository.UpdateUser(ctx, updated)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID).Strs("fields", fields).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return saved, nil
}

func (s *userService) Delete(ctx context.Context, user models.User) (models.User, error) {
	if err := s.userRepository.DeleteUser(ctx, user.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID).Msg("user deletion failed")
		return models.User{}, fmt.Errorf("user deletion failed: %w", err)
	}

	s.notify(ctx, goodbyeMail(user))

	return user, nil
}

// notify delivers mail on a best-effort basis; a failed delivery never
// fails the request that triggered it.
func (s *userService) notify(ctx context.Context, mail models.Mail) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, mail); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("subject", mail.Subject).Msg("mail delivery failed")
	}
}

func welcomeMail(user models.User) models.Mail {
	return models.Mail{
		To:      user.Email,
		Name:    user.Name,
		Subject: "Thanks for joining in!",
		Text:    fmt.Sprintf("Welcome to the app, %s. Let me know how you get along with the app.", user.Name),
	}
}

func goodbyeMail(user models.User) models.Mail {
	return models.Mail{
		To:      user.Email,
		Name:    user.Name,
		Subject: "Sorry to see you go!",
		Text:    fmt.Sprintf("Goodbye, %s. I hope to see you back sometime soon.", user.Name),
	}
}
