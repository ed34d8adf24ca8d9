package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/avatar"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/store"
	"github.com/MKhiriev/task-manager/internal/workers"
)

type avatarService struct {
	userRepository store.UserRepository

	normalizer *avatar.Normalizer
	pool       workers.Runner

	logger *logger.Logger
}

func NewAvatarService(users store.UserRepository, normalizer *avatar.Normalizer, pool workers.Runner, logger *logger.Logger) AvatarService {
	return &avatarService{
		userRepository: users,
		normalizer:     normalizer,
		pool:           pool,
		logger:         logger,
	}
}

// Set rejects the upload by name and size first. Decoding and resizing run
// on the bounded worker pool; the previous avatar is replaced only after
// normalization succeeded.
func (s *avatarService) Set(ctx context.Context, userID, filename string, data []byte) error {
	if err := s.normalizer.Check(filename, int64(len(data))); err != nil {
		return err
	}

	var normalized []byte
	err := s.pool.Do(ctx, func(ctx context.Context) error {
		var err error
		normalized, err = s.normalizer.Normalize(data)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("user_id", userID).Msg("avatar normalization failed")
		return err
	}

	if err = s.userRepository.SetAvatar(ctx, userID, normalized); err != nil {
		return fmt.Errorf("storing avatar: %w", err)
	}

	return nil
}

func (s *avatarService) Clear(ctx context.Context, userID string) error {
	if err := s.userRepository.SetAvatar(ctx, userID, nil); err != nil {
		return fmt.Errorf("clearing avatar: %w", err)
	}
	return nil
}

func (s *avatarService) Get(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.userRepository.GetAvatar(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, store.ErrAvatarNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
