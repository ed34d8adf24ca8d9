package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTokenRepository keeps tokens inline in the user document. Each call
// is a single-document update, so it is atomic on its own.
type mongoTokenRepository struct {
	db     *MongoDB
	logger *logger.Logger
}

func NewMongoTokenRepository(db *MongoDB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating mongo token repository")
	return &mongoTokenRepository{db: db, logger: logger}
}

// AddToken pushes token to the end of the list. With a positive maxSessions
// the $slice modifier keeps only the newest entries.
func (r *mongoTokenRepository) AddToken(ctx context.Context, userID, token string, maxSessions int) error {
	push := bson.M{"$each": bson.A{token}}
	if maxSessions > 0 {
		push["$slice"] = -maxSessions
	}

	res, err := r.db.users().UpdateByID(ctx, userID, bson.M{"$push": bson.M{"tokens": push}})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoTokenRepository.AddToken").Msg("error pushing token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *mongoTokenRepository) RemoveToken(ctx context.Context, userID, token string) error {
	_, err := r.db.users().UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"tokens": token}})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoTokenRepository.RemoveToken").Msg("error pulling token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *mongoTokenRepository) RemoveAllTokens(ctx context.Context, userID string) error {
	_, err := r.db.users().UpdateByID(ctx, userID, bson.M{"$set": bson.M{"tokens": bson.A{}}})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoTokenRepository.RemoveAllTokens").Msg("error clearing tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *mongoTokenRepository) HasToken(ctx context.Context, userID, token string) (bool, error) {
	count, err := r.db.users().CountDocuments(ctx, bson.M{"_id": userID, "tokens": token}, options.Count().SetLimit(1))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoTokenRepository.HasToken").Msg("error checking token")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count > 0, nil
}

func (r *mongoTokenRepository) ListTokens(ctx context.Context, userID string) ([]string, error) {
	var doc struct {
		Tokens []string `bson:"tokens"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "tokens", Value: 1}})

	err := r.db.users().FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []string{}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoTokenRepository.ListTokens").Msg("error querying tokens")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if doc.Tokens == nil {
		doc.Tokens = []string{}
	}

	return doc.Tokens, nil
}
