package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Luckywi/balzac-api/internal/booking"
	"github.com/Luckywi/balzac-api/internal/export"
	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
	"github.com/Luckywi/balzac-api/internal/store"
)

// CreateRdvRequest is the booking form payload.
type CreateRdvRequest struct {
	ServiceID   string `json:"service_id"`
	StaffID     string `json:"staff_id"`
	Start       string `json:"start"` // Format: YYYY-MM-DDTHH:mm:ss
	ClientName  string `json:"client_name,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Source      string `json:"source,omitempty"` // "admin" or "client"
}

// handleCreateRdv books a slot.
// POST /api/rdvs
func (s *HTTPServer) handleCreateRdv(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rdvs_create")

	var req CreateRdvRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rdv, err := s.booking.Book(r.Context(), booking.BookingRequest{
		ServiceID:   req.ServiceID,
		StaffID:     req.StaffID,
		Start:       req.Start,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Notes:       req.Notes,
		Source:      req.Source,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidInput), errors.Is(err, booking.ErrPastSlot):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, booking.ErrSlotUnavailable):
			writeError(w, http.StatusConflict, "slot not available")
		case errors.Is(err, store.ErrSlotTaken):
			writeError(w, http.StatusConflict, "slot no longer available, please retry")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "service not found")
		default:
			s.logger.Error().Err(err).Msg("create rdv")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, rdv)
}

// handleListRdvs lists appointments in a date range.
// GET /api/rdvs?from=YYYY-MM-DD&to=YYYY-MM-DD&staff_id=...
func (s *HTTPServer) handleListRdvs(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rdvs_list")

	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rdvs, err := s.db.ListAppointments(r.Context(), from, to, r.URL.Query().Get("staff_id"))
	if err != nil {
		s.logger.Error().Err(err).Msg("list rdvs")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if rdvs == nil {
		rdvs = []models.Appointment{}
	}
	writeJSON(w, http.StatusOK, rdvs)
}

// handleDeleteRdv cancels an appointment.
// DELETE /api/rdvs/{id}
func (s *HTTPServer) handleDeleteRdv(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rdvs_delete")

	if err := s.booking.Cancel(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		s.logger.Error().Err(err).Msg("cancel rdv")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportRdvs streams the appointment book as an Excel workbook.
// GET /api/rdvs/export?from=YYYY-MM-DD&to=YYYY-MM-DD&staff_id=...
func (s *HTTPServer) handleExportRdvs(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rdvs_export")

	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rdvs, err := s.db.ListAppointments(r.Context(), from, to, r.URL.Query().Get("staff_id"))
	if err != nil {
		s.logger.Error().Err(err).Msg("load rdvs for export")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	book, err := export.AppointmentBook(rdvs)
	if err != nil {
		s.logger.Error().Err(err).Msg("build export workbook")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer book.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=rdvs_%s_%s.xlsx", from, to))
	if err := book.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("stream export workbook")
	}
}

func parseDateRange(r *http.Request) (from, to string, err error) {
	q := r.URL.Query()
	if date := q.Get("date"); date != "" {
		// Single-day shorthand.
		from, to = date, date
	} else {
		from, to = q.Get("from"), q.Get("to")
	}
	if from == "" || to == "" {
		return "", "", fmt.Errorf("date or from/to is required")
	}
	fromDate, err := time.Parse(models.DateLayout, from)
	if err != nil {
		return "", "", fmt.Errorf("invalid from format; expected YYYY-MM-DD")
	}
	toDate, err := time.Parse(models.DateLayout, to)
	if err != nil {
		return "", "", fmt.Errorf("invalid to format; expected YYYY-MM-DD")
	}
	if fromDate.After(toDate) {
		return "", "", fmt.Errorf("from must be before or equal to to")
	}
	if int(toDate.Sub(fromDate).Hours()/24) > MaxListDaysRange {
		return "", "", fmt.Errorf("date range exceeds maximum of %d days", MaxListDaysRange)
	}
	return from, to, nil
}
