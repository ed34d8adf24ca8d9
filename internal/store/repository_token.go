package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/jackc/pgerrcode"
)

// tokenRepository is the PostgreSQL-backed implementation of
// [TokenRepository]. Tokens live in the "user_tokens" child table and keep
// their insertion order through the serial token_id.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// AddToken inserts the token and, when maxSessions is positive, evicts the
// oldest tokens of the user in the same transaction.
func (r *tokenRepository) AddToken(ctx context.Context, userID, token string, maxSessions int) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.AddToken").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, addToken, userID, token); err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrUserNotFound
		}
		log.Err(err).Str("func", "*tokenRepository.AddToken").Msg("error inserting token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if maxSessions > 0 {
		if _, err = tx.ExecContext(ctx, evictTokens, userID, maxSessions); err != nil {
			log.Err(err).Str("func", "*tokenRepository.AddToken").Msg("error evicting old tokens")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "*tokenRepository.AddToken").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func (r *tokenRepository) RemoveToken(ctx context.Context, userID, token string) error {
	if _, err := r.db.ExecContext(ctx, removeToken, userID, token); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.RemoveToken").Msg("error deleting token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *tokenRepository) RemoveAllTokens(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, removeAllTokens, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.RemoveAllTokens").Msg("error deleting tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *tokenRepository) HasToken(ctx context.Context, userID, token string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, hasToken, userID, token).Scan(&exists); err != nil {
		if isMalformedID(err) {
			return false, nil
		}
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.HasToken").Msg("error checking token")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

func (r *tokenRepository) ListTokens(ctx context.Context, userID string) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listTokens, userID)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.ListTokens").Msg("error querying tokens")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tokens := make([]string, 0)
	for rows.Next() {
		var token string
		if err = rows.Scan(&token); err != nil {
			log.Err(err).Str("func", "*tokenRepository.ListTokens").Msg("error scanning token")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tokens = append(tokens, token)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*tokenRepository.ListTokens").Msg("error iterating tokens")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tokens, nil
}
