package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/migrations"
)

// DB is the PostgreSQL handle shared by the SQL repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded goose migrations and logs the versions it
// brought in.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		db.logger.Debug().Msg("database schema is up to date")
		return nil
	}
	db.logger.Info().Ints64("versions", applied).Msg("database migrations applied")
	return nil
}
