package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Luckywi/balzac-api/internal/models"
)

// GetStaffAvailability loads the personal calendar of one staff member.
func (s *Store) GetStaffAvailability(ctx context.Context, staffID string) (*models.StaffAvailability, error) {
	var doc models.StaffAvailability
	err := s.db.Collection(collStaff).FindOne(ctx, bson.M{"staffId": staffID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find staff %s: %w", staffID, err)
	}
	return &doc, nil
}

// SaveStaffAvailability upserts the full staff document keyed by staffId.
func (s *Store) SaveStaffAvailability(ctx context.Context, doc *models.StaffAvailability) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collStaff).ReplaceOne(ctx, bson.M{"staffId": doc.StaffID}, doc, opts); err != nil {
		return fmt.Errorf("save staff %s: %w", doc.StaffID, err)
	}
	s.logger.Info().Str("staff_id", doc.StaffID).Msg("staff availability saved")
	return nil
}

// ListStaff returns every staff availability document.
func (s *Store) ListStaff(ctx context.Context) ([]models.StaffAvailability, error) {
	cursor, err := s.db.Collection(collStaff).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "staffId", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.StaffAvailability
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode staff: %w", err)
	}
	return out, nil
}
