package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Luckywi/balzac-api/internal/models"
)

// GetService loads one catalog service by id.
func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := s.db.Collection(collServices).FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find service %s: %w", id, err)
	}
	return &svc, nil
}

// ListServices returns the catalog, optionally filtered by section.
func (s *Store) ListServices(ctx context.Context, sectionID string) ([]models.Service, error) {
	filter := bson.M{}
	if sectionID != "" {
		filter["sectionId"] = sectionID
	}
	cursor, err := s.db.Collection(collServices).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Service
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return out, nil
}

// SaveService upserts a catalog service keyed by id.
func (s *Store) SaveService(ctx context.Context, svc *models.Service) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collServices).ReplaceOne(ctx, bson.M{"id": svc.ID}, svc, opts); err != nil {
		return fmt.Errorf("save service %s: %w", svc.ID, err)
	}
	s.logger.Info().Str("service_id", svc.ID).Str("title", svc.Title).Msg("service saved")
	return nil
}

// DeleteService removes one catalog service.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	res, err := s.db.Collection(collServices).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	s.logger.Info().Str("service_id", id).Msg("service deleted")
	return nil
}

// ListSections returns the catalog sections.
func (s *Store) ListSections(ctx context.Context) ([]models.ServiceSection, error) {
	cursor, err := s.db.Collection(collSections).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ServiceSection
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return out, nil
}

// SaveSection upserts a catalog section keyed by id.
func (s *Store) SaveSection(ctx context.Context, section *models.ServiceSection) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collSections).ReplaceOne(ctx, bson.M{"id": section.ID}, section, opts); err != nil {
		return fmt.Errorf("save section %s: %w", section.ID, err)
	}
	s.logger.Info().Str("section_id", section.ID).Str("title", section.Title).Msg("section saved")
	return nil
}

// DeleteSection removes a section together with every service in it.
func (s *Store) DeleteSection(ctx context.Context, id string) error {
	if _, err := s.db.Collection(collServices).DeleteMany(ctx, bson.M{"sectionId": id}); err != nil {
		return fmt.Errorf("delete services of section %s: %w", id, err)
	}
	res, err := s.db.Collection(collSections).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete section %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	s.logger.Info().Str("section_id", id).Msg("section deleted")
	return nil
}
