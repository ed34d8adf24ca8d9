package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// MongoDB is the MongoDB handle shared by the document repositories. Users
// embed their token list and avatar; tasks live in their own collection.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logger.Logger
}

// NewConnectMongo connects to the deployment at dsn, pings the primary and
// makes sure the indexes the repositories rely on exist.
func NewConnectMongo(ctx context.Context, dsn, database string, log *logger.Logger) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dsn))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting database (ping)")
		_ = client.Disconnect(ctx)
		return nil, err
	}

	db := &MongoDB{
		client:   client,
		database: client.Database(database),
		logger:   log,
	}

	if err = db.EnsureIndexes(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error creating indexes")
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", database).Msg("connected to database successfully")

	return db, nil
}

// EnsureIndexes creates the unique email index on users and the owner index
// on tasks. Existing indexes are left as they are.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := db.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating users email index: %w", err)
	}

	_, err = db.tasks().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating tasks owner index: %w", err)
	}

	return nil
}

// Close disconnects the client.
func (db *MongoDB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *MongoDB) users() *mongo.Collection {
	return db.database.Collection(usersCollection)
}

func (db *MongoDB) tasks() *mongo.Collection {
	return db.database.Collection(tasksCollection)
}
