package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type taskDocument struct {
	ID          string    `bson:"_id"`
	Description string    `bson:"description"`
	Completed   bool      `bson:"completed"`
	Owner       string    `bson:"owner"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d taskDocument) model() models.Task {
	return models.Task{
		ID:          d.ID,
		Description: d.Description,
		Completed:   d.Completed,
		Owner:       d.Owner,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type mongoTaskRepository struct {
	db     *MongoDB
	logger *logger.Logger
}

func NewMongoTaskRepository(db *MongoDB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating mongo task repository")
	return &mongoTaskRepository{db: db, logger: logger}
}

func (r *mongoTaskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := taskDocument{
		ID:          task.ID,
		Description: task.Description,
		Completed:   task.Completed,
		Owner:       task.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.db.tasks().InsertOne(ctx, doc); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoTaskRepository.CreateTask").Msg("error inserting task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc.model(), nil
}

func (r *mongoTaskRepository) FindTask(ctx context.Context, ownerID, taskID string) (models.Task, error) {
	var doc taskDocument
	err := r.db.tasks().FindOne(ctx, bson.M{"_id": taskID, "owner": ownerID}).Decode(&doc)
	return r.result(ctx, "*mongoTaskRepository.FindTask", doc, err)
}

func (r *mongoTaskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	update := bson.M{"$set": bson.M{
		"description": task.Description,
		"completed":   task.Completed,
		"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err := r.db.tasks().FindOneAndUpdate(ctx, bson.M{"_id": task.ID, "owner": task.Owner}, update, opts).Decode(&doc)
	return r.result(ctx, "*mongoTaskRepository.UpdateTask", doc, err)
}

func (r *mongoTaskRepository) DeleteTask(ctx context.Context, ownerID, taskID string) (models.Task, error) {
	var doc taskDocument
	err := r.db.tasks().FindOneAndDelete(ctx, bson.M{"_id": taskID, "owner": ownerID}).Decode(&doc)
	return r.result(ctx, "*mongoTaskRepository.DeleteTask", doc, err)
}

func (r *mongoTaskRepository) result(ctx context.Context, funcName string, doc taskDocument, err error) (models.Task, error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error querying task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return doc.model(), nil
}

func (r *mongoTaskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query := bson.M{"owner": filter.Owner}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}

	field, ok := taskSortColumns[filter.SortBy]
	if !ok {
		field = "created_at"
	}
	direction := 1
	if filter.SortOrder == models.SortDesc {
		direction = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: direction}, {Key: "_id", Value: direction}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Skip > 0 {
		opts.SetSkip(int64(filter.Skip))
	}

	cur, err := r.db.tasks().Find(ctx, query, opts)
	if err != nil {
		log.Err(err).Str("func", "*mongoTaskRepository.ListTasks").Msg("error querying tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer cur.Close(ctx)

	var docs []taskDocument
	if err = cur.All(ctx, &docs); err != nil {
		log.Err(err).Str("func", "*mongoTaskRepository.ListTasks").Msg("error decoding tasks")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.model())
	}

	return tasks, nil
}
