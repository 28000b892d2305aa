package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Luckywi/balzac-api/internal/models"
)

// SavePushToken registers a device token, replacing any previous document
// for the same token value.
func (s *Store) SavePushToken(ctx context.Context, token, platform string) error {
	doc := models.PushToken{
		ID:        uuid.NewString(),
		Token:     token,
		Platform:  platform,
		CreatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collTokens).ReplaceOne(ctx, bson.M{"token": token}, doc, opts); err != nil {
		return fmt.Errorf("save push token: %w", err)
	}
	return nil
}

// ListPushTokens returns every registered device token value.
func (s *Store) ListPushTokens(ctx context.Context) ([]string, error) {
	cursor, err := s.db.Collection(collTokens).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list push tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.PushToken
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode push tokens: %w", err)
	}
	tokens := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Token != "" {
			tokens = append(tokens, d.Token)
		}
	}
	return tokens, nil
}

// DeletePushToken removes a token the push gateway reported as dead.
func (s *Store) DeletePushToken(ctx context.Context, token string) error {
	if _, err := s.db.Collection(collTokens).DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete push token: %w", err)
	}
	s.logger.Debug().Msg("stale push token removed")
	return nil
}
