package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Luckywi/balzac-api/internal/booking"
	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
	"github.com/Luckywi/balzac-api/internal/store"
)

// AvailabilityResponse lists the bookable start times for one day.
type AvailabilityResponse struct {
	Date      string   `json:"date"`
	StaffID   string   `json:"staff_id"`
	ServiceID string   `json:"service_id"`
	Slots     []string `json:"slots"`
}

// handleAvailability returns the bookable slots for a service, staff member
// and date.
// GET /api/availability?date=YYYY-MM-DD&staff_id=...&service_id=...
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")

	q := r.URL.Query()
	dateStr := q.Get("date")
	staffID := q.Get("staff_id")
	serviceID := q.Get("service_id")
	if dateStr == "" || staffID == "" || serviceID == "" {
		writeError(w, http.StatusBadRequest, "date, staff_id and service_id are required")
		return
	}
	date, err := time.ParseInLocation(models.DateLayout, dateStr, time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	slots, err := s.booking.Slots(r.Context(), date, staffID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "service not found")
		case errors.Is(err, booking.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error().Err(err).Msg("compute availability")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Date:      dateStr,
		StaffID:   staffID,
		ServiceID: serviceID,
		Slots:     slots,
	})
}

// SlotCheckRequest is a free-form interval dragged on the calendar.
type SlotCheckRequest struct {
	Start   string `json:"start"`              // Format: YYYY-MM-DDTHH:mm:ss
	End     string `json:"end"`                // Format: YYYY-MM-DDTHH:mm:ss
	StaffID string `json:"staff_id,omitempty"` // Optional: staff filter
}

// SlotCheckResponse reports whether the interval can host a booking.
type SlotCheckResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // "past", "unavailable"
}

// handleSlotCheck validates a manually selected interval.
// POST /api/slots/check
func (s *HTTPServer) handleSlotCheck(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("slots_check")

	var req SlotCheckRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start, err := time.ParseInLocation(models.DateTimeLayout, req.Start, time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start; expected YYYY-MM-DDTHH:mm:ss")
		return
	}
	end, err := time.ParseInLocation(models.DateTimeLayout, req.End, time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end; expected YYYY-MM-DDTHH:mm:ss")
		return
	}
	if !start.Before(end) {
		writeError(w, http.StatusBadRequest, "start must be before end")
		return
	}

	available, reason, err := s.booking.CheckSlot(r.Context(), start, end, req.StaffID)
	if err != nil {
		s.logger.Error().Err(err).Msg("check slot")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, SlotCheckResponse{Available: available, Reason: reason})
}
