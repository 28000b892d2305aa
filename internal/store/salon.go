package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Luckywi/balzac-api/internal/models"
)

// salonDocID is the fixed id of the singleton salon configuration document.
const salonDocID = "config"

type salonDoc struct {
	ID                 string `bson:"_id"`
	models.SalonConfig `bson:",inline"`
}

// GetSalonConfig loads the singleton salon configuration.
func (s *Store) GetSalonConfig(ctx context.Context) (*models.SalonConfig, error) {
	var doc salonDoc
	err := s.db.Collection(collSalon).FindOne(ctx, bson.M{"_id": salonDocID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find salon config: %w", err)
	}
	return &doc.SalonConfig, nil
}

// SaveSalonConfig overwrites the whole configuration document, the only
// mutation the save action performs.
func (s *Store) SaveSalonConfig(ctx context.Context, cfg *models.SalonConfig) error {
	cfg.UpdatedAt = time.Now()
	doc := salonDoc{ID: salonDocID, SalonConfig: *cfg}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collSalon).ReplaceOne(ctx, bson.M{"_id": salonDocID}, doc, opts); err != nil {
		return fmt.Errorf("save salon config: %w", err)
	}
	s.logger.Info().Msg("salon config saved")
	return nil
}
