package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Luckywi/balzac-api/internal/models"
)

// CreateAppointment persists a booking after re-checking that no existing
// appointment for the same staff member overlaps it. The check-then-insert
// is the write-time conflict surface for two clients booking from stale
// snapshots; it narrows the race window to the gap between the two
// operations rather than closing it with a server-side transaction.
//
// Stored timestamps are fixed-width local strings, so lexicographic $lt/$gt
// match chronological order.
func (s *Store) CreateAppointment(ctx context.Context, rdv *models.Appointment) error {
	filter := bson.M{
		"staffId": rdv.StaffID,
		"start":   bson.M{"$lt": rdv.End},
		"end":     bson.M{"$gt": rdv.Start},
	}
	n, err := s.db.Collection(collRdvs).CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if n > 0 {
		return ErrSlotTaken
	}

	if _, err := s.db.Collection(collRdvs).InsertOne(ctx, rdv); err != nil {
		return fmt.Errorf("insert rdv: %w", err)
	}
	s.logger.Info().
		Str("rdv_id", rdv.ID).
		Str("staff_id", rdv.StaffID).
		Str("start", rdv.Start).
		Msg("appointment created")
	return nil
}

// AppointmentsForDay returns the appointments of one staff member starting
// on the given "YYYY-MM-DD" date.
func (s *Store) AppointmentsForDay(ctx context.Context, staffID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"staffId": staffID,
		"start":   bson.M{"$regex": primitive.Regex{Pattern: "^" + date}},
	}
	return s.findAppointments(ctx, filter)
}

// ListAppointments returns appointments whose start date falls in the
// inclusive [from, to] "YYYY-MM-DD" range, optionally filtered by staff.
func (s *Store) ListAppointments(ctx context.Context, from, to, staffID string) ([]models.Appointment, error) {
	filter := bson.M{
		// "≤ to" must include the whole end day, hence the exclusive
		// bound just past it.
		"start": bson.M{"$gte": from, "$lt": to + "T24"},
	}
	if staffID != "" {
		filter["staffId"] = staffID
	}
	return s.findAppointments(ctx, filter)
}

func (s *Store) findAppointments(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	cursor, err := s.db.Collection(collRdvs).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find rdvs: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Appointment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode rdvs: %w", err)
	}
	return out, nil
}

// GetAppointment loads one appointment by id.
func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var rdv models.Appointment
	err := s.db.Collection(collRdvs).FindOne(ctx, bson.M{"id": id}).Decode(&rdv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find rdv %s: %w", id, err)
	}
	return &rdv, nil
}

// DeleteAppointment removes a booking.
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	res, err := s.db.Collection(collRdvs).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete rdv %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	s.logger.Info().Str("rdv_id", id).Msg("appointment deleted")
	return nil
}
