package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account rows and the avatar column of the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Age, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

// CreateUser inserts a new account and returns the canonical row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.ID, user.Name, user.Email, user.Age, user.Password)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, mapUserWriteError(err)
	}

	// scan saved user from db
	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByID retrieves the account with the given id.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

// FindUserByEmail retrieves the account with the given normalized email.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Err(); err != nil {
		if isMalformedID(err) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateUser overwrites name, email, age and password of an existing user.
//
// Error handling:
//   - no matching row → [ErrUserNotFound].
//   - unique_violation on email → [ErrEmailAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateUser, user.ID, user.Name, user.Email, user.Age, user.Password)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, mapUserWriteError(err)
	}

	updated, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: scanning error")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// DeleteUser removes the account row. Tokens and tasks go with it through
// ON DELETE CASCADE foreign keys.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	return r.execAffectingUser(ctx, "*userRepository.DeleteUser", deleteUser, userID)
}

// SetAvatar stores avatar on the user row; nil writes NULL.
func (r *userRepository) SetAvatar(ctx context.Context, userID string, avatar []byte) error {
	return r.execAffectingUser(ctx, "*userRepository.SetAvatar", setAvatar, userID, avatar)
}

func (r *userRepository) execAffectingUser(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if isMalformedID(err) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetAvatar returns the stored avatar bytes. A missing row and a NULL column
// are both reported as [ErrAvatarNotFound].
func (r *userRepository) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	log := logger.FromContext(ctx)

	var avatar []byte
	err := r.db.QueryRowContext(ctx, getAvatar, userID).Scan(&avatar)
	if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
		return nil, ErrAvatarNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAvatar").Msg("error querying avatar")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if len(avatar) == 0 {
		return nil, ErrAvatarNotFound
	}

	return avatar, nil
}

func mapUserWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrEmailAlreadyExists
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

// isMalformedID reports whether the server rejected an id that is not a
// valid UUID. Such an id cannot match any row.
func isMalformedID(err error) bool {
	return postgresError(err) == pgerrcode.InvalidTextRepresentation
}
