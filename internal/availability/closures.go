package availability

import (
	"time"

	"github.com/Luckywi/balzac-api/internal/models"
)

// The closure checks below are shared by the slot resolver and the
// free-form interval checker so the two can never disagree on what
// "closed" means. A missing document or a missing day entry always reads
// as closed: the engine under-books rather than over-books.

// SalonClosed reports whether the salon is shut for the whole calendar day,
// either because the weekday is off or because a vacation covers the date.
func SalonClosed(salon *models.SalonConfig, date time.Time) bool {
	if salon == nil {
		return true
	}
	if !salon.OpenOn(models.DayOf(date)) {
		return true
	}
	return salon.OnVacation(date.Format(models.DateLayout))
}

// StaffOff reports whether the staff member is away for the whole day,
// either not working that weekday or on vacation.
func StaffOff(staff *models.StaffAvailability, date time.Time) bool {
	if staff == nil {
		return true
	}
	if _, ok := staff.DayOn(models.DayOf(date)); !ok {
		return true
	}
	return staff.OnVacation(date.Format(models.DateLayout))
}

// BeforeToday is the cheap guard callers evaluate before anything else:
// any interval starting before the current calendar day is rejected
// regardless of configuration.
func BeforeToday(start, now time.Time) bool {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start.Before(midnight)
}
