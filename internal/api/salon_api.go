package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
	"github.com/Luckywi/balzac-api/internal/store"
)

// handleGetSalon returns the salon operating calendar.
// GET /api/salon
func (s *HTTPServer) handleGetSalon(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("salon_get")

	cfg, err := s.db.GetSalonConfig(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "salon config not set")
			return
		}
		s.logger.Error().Err(err).Msg("load salon config")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handlePutSalon overwrites the salon operating calendar.
// PUT /api/salon
func (s *HTTPServer) handlePutSalon(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("salon_put")

	var cfg models.SalonConfig
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateSalonConfig(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fillBreakIDs(cfg.Breaks)
	fillVacationIDs(cfg.Vacations)

	if err := s.db.SaveSalonConfig(r.Context(), &cfg); err != nil {
		s.logger.Error().Err(err).Msg("save salon config")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// Opening hours changed; every cached slot list is suspect.
	s.booking.InvalidateAllSlots(r.Context())
	writeJSON(w, http.StatusOK, &cfg)
}

func validateSalonConfig(cfg *models.SalonConfig) error {
	for day, enabled := range cfg.WorkDays {
		if !day.Valid() {
			return fmt.Errorf("unknown day %q", day)
		}
		if !enabled {
			continue
		}
		hours, ok := cfg.WorkHours[day]
		if !ok {
			return fmt.Errorf("missing work hours for %s", day)
		}
		if !hours.Valid() {
			return fmt.Errorf("invalid work hours for %s", day)
		}
	}
	return validateClosures(cfg.Breaks, cfg.Vacations)
}

func validateClosures(breaks []models.Break, vacations []models.Vacation) error {
	for _, b := range breaks {
		if !b.Day.Valid() {
			return fmt.Errorf("break %s: unknown day %q", b.ID, b.Day)
		}
		if !(models.TimeRange{Start: b.Start, End: b.End}).Valid() {
			return fmt.Errorf("break %s: invalid time range", b.ID)
		}
	}
	for _, v := range vacations {
		if v.StartDate == "" || v.EndDate == "" || v.StartDate > v.EndDate {
			return fmt.Errorf("vacation %s: invalid date range", v.ID)
		}
	}
	return nil
}

func fillBreakIDs(breaks []models.Break) {
	for i := range breaks {
		if breaks[i].ID == "" {
			breaks[i].ID = uuid.NewString()
		}
	}
}

func fillVacationIDs(vacations []models.Vacation) {
	for i := range vacations {
		if vacations[i].ID == "" {
			vacations[i].ID = uuid.NewString()
		}
	}
}
