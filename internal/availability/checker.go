package availability

import (
	"time"

	"github.com/Luckywi/balzac-api/internal/models"
)

// SlotUnavailable decides whether a free-form interval dragged on the
// calendar is blocked. Unlike AvailableSlots it validates arbitrary
// boundaries, not duration-aligned grid slots, so it re-derives the same
// closed/open rules against the raw interval.
//
// staff is nil when no staff filter is active; callers filtering on a staff
// member whose document is missing must treat the slot as blocked
// themselves (a nil staff here means "whole salon view", not "unknown
// staff"). A nil salon blocks everything.
func SlotUnavailable(start, end time.Time, salon *models.SalonConfig, staff *models.StaffAvailability) bool {
	if SalonClosed(salon, start) {
		return true
	}
	if staff != nil && StaffOff(staff, start) {
		return true
	}

	day := models.DayOf(start)
	from := ClockOf(start)
	to := ClockOf(end)

	salonHours, ok := salon.HoursOn(day)
	if !ok {
		return true
	}
	window, ok := parseRange(salonHours.Start, salonHours.End)
	if !ok {
		return true
	}
	if from < window.start || to > window.end {
		return true
	}
	for _, b := range parseBreaks(salon.BreaksOn(day)) {
		if b.intersects(from, to) {
			return true
		}
	}

	if staff != nil {
		staffDay, _ := staff.DayOn(day)
		if len(staffDay.Ranges) > 0 && !insideAnyRange(staffDay.Ranges, from, to) {
			return true
		}
		for _, b := range parseBreaks(staff.BreaksOn(day)) {
			if b.intersects(from, to) {
				return true
			}
		}
	}

	return false
}

// insideAnyRange reports whether one working range fully contains the
// interval; straddling two adjacent ranges does not count.
func insideAnyRange(ranges []models.TimeRange, from, to Clock) bool {
	for _, r := range ranges {
		sp, ok := parseRange(r.Start, r.End)
		if !ok {
			continue
		}
		if sp.start <= from && to <= sp.end {
			return true
		}
	}
	return false
}
