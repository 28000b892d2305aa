// Package store persists the salon documents in MongoDB. Collections
// mirror the original document shapes: a singleton salon config, one
// availability document per staff member, the appointment book, the
// services catalog and registered push tokens.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	collSalon    = "salon"
	collStaff    = "staff"
	collRdvs     = "rdvs"
	collServices = "services"
	collSections = "sections"
	collTokens   = "fcmTokens"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrSlotTaken is returned when an appointment write would overlap an
	// existing one for the same staff member.
	ErrSlotTaken = errors.New("slot no longer available")
)

// Store wraps the mongo database handle.
type Store struct {
	db     *mongo.Database
	client *mongo.Client
	logger *zerolog.Logger
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri, dbName string, logger *zerolog.Logger) (*Store, error) {
	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{
		db:     client.Database(dbName),
		client: client,
		logger: logger,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	logger.Info().Str("database", dbName).Msg("connected to mongo")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	rdvIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "staffId", Value: 1}, {Key: "start", Value: 1}},
	}
	if _, err := s.db.Collection(collRdvs).Indexes().CreateOne(ctx, rdvIdx); err != nil {
		return fmt.Errorf("create rdvs index: %w", err)
	}

	tokenIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.db.Collection(collTokens).Indexes().CreateOne(ctx, tokenIdx); err != nil {
		return fmt.Errorf("create tokens index: %w", err)
	}
	return nil
}

// Ping checks the connection, used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
