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

// userDocument is the stored shape of a user in the "users" collection.
type userDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Age       int       `bson:"age"`
	Password  string    `bson:"password"`
	Tokens    []string  `bson:"tokens"`
	Avatar    []byte    `bson:"avatar,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d userDocument) model() models.User {
	return models.User{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Age:       d.Age,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// profileProjection leaves the session list and the avatar out of reads.
var profileProjection = bson.D{{Key: "tokens", Value: 0}, {Key: "avatar", Value: 0}}

type mongoUserRepository struct {
	db     *MongoDB
	logger *logger.Logger
}

func NewMongoUserRepository(db *MongoDB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{db: db, logger: logger}
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := userDocument{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		Password:  user.Password,
		Tokens:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.db.users().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc.model(), nil
}

func (r *mongoUserRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, "*mongoUserRepository.FindUserByID", bson.M{"_id": userID})
}

func (r *mongoUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*mongoUserRepository.FindUserByEmail", bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, funcName string, filter bson.M) (models.User, error) {
	var doc userDocument
	err := r.db.users().FindOne(ctx, filter, options.FindOne().SetProjection(profileProjection)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc.model(), nil
}

func (r *mongoUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"email":      user.Email,
		"age":        user.Age,
		"password":   user.Password,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(profileProjection)

	var doc userDocument
	err := r.db.users().FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.User{}, ErrUserNotFound
	case mongo.IsDuplicateKeyError(err):
		return models.User{}, ErrEmailAlreadyExists
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.UpdateUser").Msg("error updating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc.model(), nil
}

// DeleteUser removes every task the user owns and then the user document.
// Tasks go first so that a failure leaves the account in place and the
// delete can be retried.
func (r *mongoUserRepository) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.tasks().DeleteMany(ctx, bson.M{"owner": userID}); err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.DeleteUser").Msg("error deleting owned tasks")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	res, err := r.db.users().DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *mongoUserRepository) SetAvatar(ctx context.Context, userID string, avatar []byte) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{"$set": bson.M{"avatar": avatar, "updated_at": now}}
	if avatar == nil {
		update = bson.M{"$unset": bson.M{"avatar": ""}, "$set": bson.M{"updated_at": now}}
	}

	res, err := r.db.users().UpdateByID(ctx, userID, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.SetAvatar").Msg("error storing avatar")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *mongoUserRepository) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	var doc struct {
		Avatar []byte `bson:"avatar"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "avatar", Value: 1}})

	err := r.db.users().FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAvatarNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.GetAvatar").Msg("error querying avatar")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if len(doc.Avatar) == 0 {
		return nil, ErrAvatarNotFound
	}

	return doc.Avatar, nil
}
