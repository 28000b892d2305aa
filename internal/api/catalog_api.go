package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
	"github.com/Luckywi/balzac-api/internal/store"
)

// handleListServices returns the services catalog.
// GET /api/services?section_id=...
func (s *HTTPServer) handleListServices(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("services_list")

	services, err := s.db.ListServices(r.Context(), r.URL.Query().Get("section_id"))
	if err != nil {
		s.logger.Error().Err(err).Msg("list services")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	writeJSON(w, http.StatusOK, services)
}

// handleListSections returns the catalog sections.
// GET /api/sections
func (s *HTTPServer) handleListSections(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("sections_list")

	sections, err := s.db.ListSections(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list sections")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if sections == nil {
		sections = []models.ServiceSection{}
	}
	writeJSON(w, http.StatusOK, sections)
}

// ServiceRequest is the create/update payload for a catalog service.
type ServiceRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Duration      int     `json:"duration"` // minutes
	OriginalPrice float64 `json:"original_price"`
	Discount      int     `json:"discount,omitempty"` // percent, e.g. -15
	SectionID     string  `json:"section_id"`
}

func (req *ServiceRequest) toService(id string) (*models.Service, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if req.OriginalPrice < 0 {
		return nil, fmt.Errorf("original_price cannot be negative")
	}
	if req.Discount > 0 || req.Discount <= -100 {
		return nil, fmt.Errorf("discount must be a percentage between -99 and 0")
	}
	if req.SectionID == "" {
		return nil, fmt.Errorf("section_id is required")
	}
	svc := &models.Service{
		ID:            id,
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		Duration:      req.Duration,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
		SectionID:     req.SectionID,
	}
	if req.Discount < 0 {
		svc.DiscountedPrice = req.OriginalPrice * (1 + float64(req.Discount)/100)
	}
	return svc, nil
}

// handleCreateService adds a service to the catalog.
// POST /api/services
func (s *HTTPServer) handleCreateService(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("services_create")
	s.saveService(w, r, uuid.NewString(), http.StatusCreated)
}

// handlePutService overwrites a catalog service. The path id wins.
// PUT /api/services/{id}
func (s *HTTPServer) handlePutService(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("services_put")
	s.saveService(w, r, r.PathValue("id"), http.StatusOK)
}

func (s *HTTPServer) saveService(w http.ResponseWriter, r *http.Request, id string, okStatus int) {
	var req ServiceRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	svc, err := req.toService(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.db.SaveService(r.Context(), svc); err != nil {
		s.logger.Error().Err(err).Msg("save service")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, okStatus, svc)
}

// handleDeleteService removes a catalog service.
// DELETE /api/services/{id}
func (s *HTTPServer) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("services_delete")

	if err := s.db.DeleteService(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		s.logger.Error().Err(err).Msg("delete service")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SectionRequest is the create/update payload for a catalog section.
type SectionRequest struct {
	Title string `json:"title"`
}

// handleCreateSection adds a catalog section.
// POST /api/sections
func (s *HTTPServer) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("sections_create")
	s.saveSection(w, r, uuid.NewString(), http.StatusCreated)
}

// handlePutSection renames a catalog section. The path id wins.
// PUT /api/sections/{id}
func (s *HTTPServer) handlePutSection(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("sections_put")
	s.saveSection(w, r, r.PathValue("id"), http.StatusOK)
}

func (s *HTTPServer) saveSection(w http.ResponseWriter, r *http.Request, id string, okStatus int) {
	var req SectionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	section := &models.ServiceSection{ID: id, Title: title}
	if err := s.db.SaveSection(r.Context(), section); err != nil {
		s.logger.Error().Err(err).Msg("save section")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, okStatus, section)
}

// handleDeleteSection removes a section and every service in it.
// DELETE /api/sections/{id}
func (s *HTTPServer) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("sections_delete")

	if err := s.db.DeleteSection(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "section not found")
			return
		}
		s.logger.Error().Err(err).Msg("delete section")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterTokenRequest registers a device for booking notifications.
type RegisterTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform,omitempty"`
}

// handleRegisterToken stores an FCM device token.
// POST /api/push/tokens
func (s *HTTPServer) handleRegisterToken(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("push_register")

	var req RegisterTokenRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := s.db.SavePushToken(r.Context(), req.Token, req.Platform); err != nil {
		s.logger.Error().Err(err).Msg("save push token")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
