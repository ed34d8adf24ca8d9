package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/store"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/models"
)

// sessionService is the concrete implementation of SessionService.
// Tokens are HS256 JWTs whose subject is the user ID; the live list in the
// TokenRepository is the source of truth for revocation.
type sessionService struct {
	userRepository  store.UserRepository
	tokenRepository store.TokenRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// Zero issues tokens without an expiry.
	tokenDuration time.Duration

	// maxSessions caps the live list; zero means unlimited.
	maxSessions int

	logger *logger.Logger
}

// NewSessionService constructs a SessionService populated with the token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewSessionService(users store.UserRepository, tokens store.TokenRepository, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		userRepository:  users,
		tokenRepository: tokens,
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		maxSessions:     cfg.MaxSessions,
		logger:          logger,
	}
}

func (s *sessionService) Issue(ctx context.Context, user models.User) (string, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.ID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = s.tokenRepository.AddToken(ctx, user.ID, token.SignedString, s.maxSessions); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID).Msg("storing session token failed")
		return "", fmt.Errorf("storing session token: %w", err)
	}

	return token.SignedString, nil
}

func (s *sessionService) Revoke(ctx context.Context, user models.User, token string) error {
	if err := s.tokenRepository.RemoveToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("revoking session token: %w", err)
	}
	return nil
}

// RevokeAll ends every session of user and logs how many were live. A failed
// count is only logged.
func (s *sessionService) RevokeAll(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	live, err := s.tokenRepository.ListTokens(ctx, user.ID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("counting live sessions failed")
	}

	if err = s.tokenRepository.RemoveAllTokens(ctx, user.ID); err != nil {
		return fmt.Errorf("revoking all session tokens: %w", err)
	}

	log.Info().Str("user_id", user.ID).Int("sessions", len(live)).Msg("all sessions revoked")
	return nil
}

// Resolve verifies the signature and issuer first, then loads the owner and
// finally checks that token is still in the live list. Only storage failures
// are returned as something other than ErrUnauthorized.
func (s *sessionService) Resolve(ctx context.Context, token string) (models.User, string, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseJWTToken(token, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return models.User{}, "", ErrUnauthorized
	}

	user, err := s.userRepository.FindUserByID(ctx, parsed.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, "", ErrUnauthorized
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("loading token owner: %w", err)
	}

	live, err := s.tokenRepository.HasToken(ctx, user.ID, token)
	if err != nil {
		return models.User{}, "", fmt.Errorf("checking live sessions: %w", err)
	}
	if !live {
		log.Debug().Str("user_id", user.ID).Msg("token is revoked")
		return models.User{}, "", ErrUnauthorized
	}

	return user, token, nil
}
