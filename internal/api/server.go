// Package api exposes the booking engine over HTTP to the salon app:
// availability queries, slot checks, bookings, the operating calendars,
// the services catalog and push token registration.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Luckywi/balzac-api/internal/booking"
	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
)

// MaxListDaysRange is the maximum listing/export window in days.
const MaxListDaysRange = 90

// BookingService is the slice of the booking layer the handlers use.
type BookingService interface {
	Slots(ctx context.Context, date time.Time, staffID, serviceID string) ([]string, error)
	CheckSlot(ctx context.Context, start, end time.Time, staffID string) (bool, string, error)
	Book(ctx context.Context, req booking.BookingRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, id string) error
	InvalidateStaffSlots(ctx context.Context, staffID string)
	InvalidateAllSlots(ctx context.Context)
}

// DataStore is the slice of the document store the handlers read and write.
type DataStore interface {
	GetSalonConfig(ctx context.Context) (*models.SalonConfig, error)
	SaveSalonConfig(ctx context.Context, cfg *models.SalonConfig) error
	GetStaffAvailability(ctx context.Context, staffID string) (*models.StaffAvailability, error)
	SaveStaffAvailability(ctx context.Context, doc *models.StaffAvailability) error
	ListStaff(ctx context.Context) ([]models.StaffAvailability, error)
	ListServices(ctx context.Context, sectionID string) ([]models.Service, error)
	SaveService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id string) error
	ListSections(ctx context.Context) ([]models.ServiceSection, error)
	SaveSection(ctx context.Context, section *models.ServiceSection) error
	DeleteSection(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, from, to, staffID string) ([]models.Appointment, error)
	SavePushToken(ctx context.Context, token, platform string) error
	Ping(ctx context.Context) error
}

// HTTPServer serves the salon booking API.
type HTTPServer struct {
	booking BookingService
	db      DataStore
	logger  *zerolog.Logger
	server  *http.Server
}

// Options tunes the HTTP server.
type Options struct {
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	PrometheusEnabled bool
}

// NewHTTPServer wires the routes.
func NewHTTPServer(opts Options, bookingSvc BookingService, db DataStore, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{booking: bookingSvc, db: db, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/availability", s.handleAvailability)
	mux.HandleFunc("POST /api/slots/check", s.handleSlotCheck)
	mux.HandleFunc("GET /api/salon", s.handleGetSalon)
	mux.HandleFunc("PUT /api/salon", s.handlePutSalon)
	mux.HandleFunc("GET /api/staff", s.handleListStaff)
	mux.HandleFunc("GET /api/staff/{id}/availability", s.handleGetStaff)
	mux.HandleFunc("PUT /api/staff/{id}/availability", s.handlePutStaff)
	mux.HandleFunc("GET /api/services", s.handleListServices)
	mux.HandleFunc("POST /api/services", s.handleCreateService)
	mux.HandleFunc("PUT /api/services/{id}", s.handlePutService)
	mux.HandleFunc("DELETE /api/services/{id}", s.handleDeleteService)
	mux.HandleFunc("GET /api/sections", s.handleListSections)
	mux.HandleFunc("POST /api/sections", s.handleCreateSection)
	mux.HandleFunc("PUT /api/sections/{id}", s.handlePutSection)
	mux.HandleFunc("DELETE /api/sections/{id}", s.handleDeleteSection)
	mux.HandleFunc("POST /api/rdvs", s.handleCreateRdv)
	mux.HandleFunc("GET /api/rdvs", s.handleListRdvs)
	mux.HandleFunc("DELETE /api/rdvs/{id}", s.handleDeleteRdv)
	mux.HandleFunc("GET /api/rdvs/export", s.handleExportRdvs)
	mux.HandleFunc("POST /api/push/tokens", s.handleRegisterToken)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if opts.PrometheusEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      mux,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Start blocks serving until the listener fails or Shutdown is called.
func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routing for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("healthz")
	if err := s.db.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
