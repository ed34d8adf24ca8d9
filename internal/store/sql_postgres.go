package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/task-manager/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pingAttempts = 3
	pingBackoff  = time.Second
)

func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	// ping database, the server may still be starting
	if err = db.ping(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return db, nil
}

func (db *DB) ping(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if db.errorClassificator.Classify(err) != Retryable || attempt == pingAttempts {
			break
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("database is not ready, retrying ping")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingBackoff * time.Duration(attempt)):
		}
	}
	return err
}
