// Package booking is the fetch-then-compute boundary around the pure
// availability engine: it loads fresh documents from the store, invokes the
// resolver or checker, and persists bookings with a write-time conflict
// re-check.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Luckywi/balzac-api/internal/availability"
	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
	"github.com/Luckywi/balzac-api/internal/store"
)

var (
	ErrPastSlot        = errors.New("cannot book in the past")
	ErrSlotUnavailable = errors.New("slot not available")
	ErrInvalidInput    = errors.New("invalid booking input")
)

// Repository is the slice of the store the booking flows need.
type Repository interface {
	GetSalonConfig(ctx context.Context) (*models.SalonConfig, error)
	GetStaffAvailability(ctx context.Context, staffID string) (*models.StaffAvailability, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	AppointmentsForDay(ctx context.Context, staffID, date string) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, rdv *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

// Notifier is told about new bookings; push delivery lives behind it.
type Notifier interface {
	AppointmentCreated(ctx context.Context, rdv *models.Appointment)
}

// Service wires the store, the optional redis cache and the notifier.
type Service struct {
	repo     Repository
	redis    *redis.Client
	cacheTTL time.Duration
	notifier Notifier
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, logger *zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// UseRedisCache enables caching of computed slot lists.
func (s *Service) UseRedisCache(client *redis.Client, ttl time.Duration) {
	s.redis = client
	s.cacheTTL = ttl
}

// UseNotifier enables booking notifications.
func (s *Service) UseNotifier(n Notifier) {
	s.notifier = n
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) {
	s.now = now
}

// Slots returns the bookable "HH:mm" start times for a service with a given
// staff member on a date.
func (s *Service) Slots(ctx context.Context, date time.Time, staffID, serviceID string) ([]string, error) {
	service, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service.Duration <= 0 {
		return nil, fmt.Errorf("%w: service %s has no duration", ErrInvalidInput, serviceID)
	}

	dateStr := date.Format(models.DateLayout)
	cacheKey := fmt.Sprintf("slots:%s:%s:%d", staffID, dateStr, service.Duration)

	var cached []string
	if s.readCache(ctx, cacheKey, &cached) {
		metrics.IncSlotsCache("hit")
		return cached, nil
	}
	metrics.IncSlotsCache("miss")

	salon, err := s.loadSalon(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.loadStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	rdvs, err := s.repo.AppointmentsForDay(ctx, staffID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	slots := availability.AvailableSlots(date, staffID, service.Duration, salon, staff, rdvs, s.now())
	metrics.IncSlotsComputed()

	s.writeCache(ctx, cacheKey, slots)
	return slots, nil
}

// CheckSlot validates a free-form interval dragged on the calendar.
// staffID may be empty for the whole-salon view. The returned reason is one
// of "past", "unavailable" or "" when bookable.
func (s *Service) CheckSlot(ctx context.Context, start, end time.Time, staffID string) (bool, string, error) {
	if availability.BeforeToday(start, s.now()) {
		return false, "past", nil
	}

	salon, err := s.loadSalon(ctx)
	if err != nil {
		return false, "", err
	}

	var staff *models.StaffAvailability
	if staffID != "" {
		staff, err = s.loadStaff(ctx, staffID)
		if err != nil {
			return false, "", err
		}
		if staff == nil {
			// Filtering on a staff member without a calendar: blocked.
			return false, "unavailable", nil
		}
	}

	if availability.SlotUnavailable(start, end, salon, staff) {
		return false, "unavailable", nil
	}
	return true, "", nil
}

// BookingRequest carries the booking form fields.
type BookingRequest struct {
	ServiceID   string
	StaffID     string
	Start       string // models.DateTimeLayout
	ClientName  string
	ClientPhone string
	ClientEmail string
	Notes       string
	Source      string
}

// Book validates the requested slot against a fresh snapshot and persists
// it. store.ErrSlotTaken surfaces when another client won the slot between
// snapshot and write.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if req.ServiceID == "" || req.StaffID == "" {
		return nil, fmt.Errorf("%w: service_id and staff_id are required", ErrInvalidInput)
	}
	start, err := time.ParseInLocation(models.DateTimeLayout, req.Start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start %q", ErrInvalidInput, req.Start)
	}
	if !start.After(s.now()) {
		return nil, ErrPastSlot
	}

	service, err := s.repo.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.Duration <= 0 {
		return nil, fmt.Errorf("%w: service %s has no duration", ErrInvalidInput, req.ServiceID)
	}
	end := start.Add(time.Duration(service.Duration) * time.Minute)

	salon, err := s.loadSalon(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.loadStaff(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		// A booking always targets one staff member; nil would read as
		// "no staff filter" below and validate against salon rules only.
		return nil, ErrSlotUnavailable
	}
	if availability.SlotUnavailable(start, end, salon, staff) {
		return nil, ErrSlotUnavailable
	}

	source := req.Source
	if source != models.SourceAdmin {
		source = models.SourceClient
	}
	rdv := &models.Appointment{
		ID:              uuid.NewString(),
		ServiceID:       service.ID,
		ServiceTitle:    service.Title,
		ServiceDuration: service.Duration,
		StaffID:         req.StaffID,
		Start:           start.Format(models.DateTimeLayout),
		End:             end.Format(models.DateTimeLayout),
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientEmail:     req.ClientEmail,
		Price:           service.EffectivePrice(),
		Notes:           req.Notes,
		Source:          source,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.CreateAppointment(ctx, rdv); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			metrics.IncRdvConflict()
		}
		return nil, err
	}
	metrics.IncRdvCreated(source)
	s.invalidateSlots(ctx, rdv.StaffID, start.Format(models.DateLayout))

	if s.notifier != nil {
		s.notifier.AppointmentCreated(ctx, rdv)
	}
	return rdv, nil
}

// Cancel removes a booking and invalidates the cached slots of its day.
func (s *Service) Cancel(ctx context.Context, id string) error {
	rdv, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	if start, err := rdv.StartTime(); err == nil {
		s.invalidateSlots(ctx, rdv.StaffID, start.Format(models.DateLayout))
	}
	return nil
}

// loadSalon maps a missing config document to nil; the engine fails closed
// on nil and every flow degrades to "unavailable" rather than erroring.
func (s *Service) loadSalon(ctx context.Context) (*models.SalonConfig, error) {
	cfg, err := s.repo.GetSalonConfig(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load salon config: %w", err)
	}
	return cfg, nil
}

func (s *Service) loadStaff(ctx context.Context, staffID string) (*models.StaffAvailability, error) {
	staff, err := s.repo.GetStaffAvailability(ctx, staffID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load staff %s: %w", staffID, err)
	}
	return staff, nil
}
