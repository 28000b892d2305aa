package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
	"github.com/Luckywi/balzac-api/internal/store"
)

// handleListStaff returns every staff member's availability document.
// GET /api/staff
func (s *HTTPServer) handleListStaff(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("staff_list")

	staff, err := s.db.ListStaff(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list staff")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if staff == nil {
		staff = []models.StaffAvailability{}
	}
	writeJSON(w, http.StatusOK, staff)
}

// handleGetStaff returns one staff member's calendar.
// GET /api/staff/{id}/availability
func (s *HTTPServer) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("staff_get")

	doc, err := s.db.GetStaffAvailability(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "staff member not found")
			return
		}
		s.logger.Error().Err(err).Msg("load staff availability")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handlePutStaff overwrites one staff member's calendar. The path id wins
// over whatever staffId the body carries.
// PUT /api/staff/{id}/availability
func (s *HTTPServer) handlePutStaff(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("staff_put")

	var doc models.StaffAvailability
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	doc.StaffID = r.PathValue("id")

	if err := validateStaffAvailability(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fillBreakIDs(doc.Breaks)
	fillVacationIDs(doc.Vacations)

	if err := s.db.SaveStaffAvailability(r.Context(), &doc); err != nil {
		s.logger.Error().Err(err).Msg("save staff availability")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.booking.InvalidateStaffSlots(r.Context(), doc.StaffID)
	writeJSON(w, http.StatusOK, &doc)
}

func validateStaffAvailability(doc *models.StaffAvailability) error {
	if doc.StaffID == "" {
		return fmt.Errorf("staff id is required")
	}
	for day, d := range doc.WorkingHours {
		if !day.Valid() {
			return fmt.Errorf("unknown day %q", day)
		}
		if !d.Working {
			continue
		}
		for _, rg := range d.Ranges {
			if !rg.Valid() {
				return fmt.Errorf("invalid range %s-%s on %s", rg.Start, rg.End, day)
			}
		}
	}
	return validateClosures(doc.Breaks, doc.Vacations)
}
