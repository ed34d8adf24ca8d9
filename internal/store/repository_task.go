// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
// Every statement filters on owner_id, so a task of another user behaves
// exactly like a missing one.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.Description, &task.Completed, &task.Owner, &task.CreatedAt, &task.UpdatedAt)
	return task, err
}

func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTask, task.ID, task.Description, task.Completed, task.Owner)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error inserting task")
		return models.Task{}, mapTaskWriteError(err)
	}

	created, err := scanTask(row)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error: scanning error")
		return models.Task{}, mapTaskWriteError(err)
	}

	return created, nil
}

func (r *taskRepository) FindTask(ctx context.Context, ownerID, taskID string) (models.Task, error) {
	return r.queryOne(ctx, "*taskRepository.FindTask", findTask, ownerID, taskID)
}

func (r *taskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	return r.queryOne(ctx, "*taskRepository.UpdateTask", updateTask, task.Owner, task.ID, task.Description, task.Completed)
}

func (r *taskRepository) DeleteTask(ctx context.Context, ownerID, taskID string) (models.Task, error) {
	return r.queryOne(ctx, "*taskRepository.DeleteTask", deleteTask, ownerID, taskID)
}

// queryOne runs a statement returning at most one task row. No row, or an id
// that is not a UUID, yields [ErrTaskNotFound].
func (r *taskRepository) queryOne(ctx context.Context, funcName, query string, args ...any) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		if isMalformedID(err) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error querying task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.Task{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return task, nil
}

// ListTasks returns the owner's tasks matching filter.
func (r *taskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTasksQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error querying tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*taskRepository.ListTasks").Msg("error scanning task")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error iterating tasks")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

func mapTaskWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.ForeignKeyViolation:
		// the owner was deleted concurrently
		return ErrUserNotFound
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}
