package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
)

// Storages groups the repositories of one backend.
type Storages struct {
	Users  UserRepository
	Tokens TokenRepository
	Tasks  TaskRepository

	closer func(ctx context.Context) error
}

// NewStorages opens the backend selected by the DSN scheme of cfg:
//
//	postgres:// or postgresql://  PostgreSQL, migrated to the latest schema
//	mongodb:// or mongodb+srv://   MongoDB, database cfg.MongoDatabase
//	memory://                      in-process maps
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		db, err := NewConnectPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("error migrating database: %w", err)
		}
		return NewPostgresStorages(db, log), nil

	case strings.HasPrefix(cfg.DSN, "mongodb://"), strings.HasPrefix(cfg.DSN, "mongodb+srv://"):
		db, err := NewConnectMongo(ctx, cfg.DSN, cfg.MongoDatabase, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			Users:  NewMongoUserRepository(db, log),
			Tokens: NewMongoTokenRepository(db, log),
			Tasks:  NewMongoTaskRepository(db, log),
			closer: db.Close,
		}, nil

	case strings.HasPrefix(cfg.DSN, "memory://"):
		log.Warn().Msg("using in-memory storage, data will not survive a restart")
		return NewMemoryStorages(NewMemoryDB()), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, cfg.DSN)
	}
}

// NewPostgresStorages wires the SQL repositories over an open connection.
func NewPostgresStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Users:  NewUserRepository(db, log),
		Tokens: NewTokenRepository(db, log),
		Tasks:  NewTaskRepository(db, log),
		closer: func(context.Context) error { return db.Close() },
	}
}

// NewMemoryStorages wires the in-memory repositories over db.
func NewMemoryStorages(db *MemoryDB) *Storages {
	return &Storages{
		Users:  NewMemoryUserRepository(db),
		Tokens: NewMemoryTokenRepository(db),
		Tasks:  NewMemoryTaskRepository(db),
	}
}

// Close releases the backend connection, if any.
func (s *Storages) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
