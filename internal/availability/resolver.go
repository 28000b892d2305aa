package availability

import (
	"time"

	"github.com/Luckywi/balzac-api/internal/models"
)

// AvailableSlots returns every bookable start time for a service of the
// given duration on the given date, as ascending "HH:mm" strings on the
// 15-minute grid.
//
// The appointment list may be pre-filtered or not; only entries matching
// staffID and starting on the requested date are considered. now excludes
// slots that have already begun; production callers pass time.Now().
//
// The function never fails: malformed or missing configuration yields
// fewer slots, never wrong ones.
func AvailableSlots(
	date time.Time,
	staffID string,
	duration int,
	salon *models.SalonConfig,
	staff *models.StaffAvailability,
	rdvs []models.Appointment,
	now time.Time,
) []string {
	if duration <= 0 {
		return nil
	}
	if SalonClosed(salon, date) {
		return nil
	}
	if StaffOff(staff, date) {
		return nil
	}

	day := models.DayOf(date)
	salonHours, ok := salon.HoursOn(day)
	if !ok {
		return nil
	}
	window, ok := parseRange(salonHours.Start, salonHours.End)
	if !ok {
		return nil
	}

	staffDay, _ := staff.DayOn(day)
	workRanges := clipRanges(staffDay.Ranges, window)
	if len(workRanges) == 0 {
		return nil
	}

	salonBreaks := parseBreaks(salon.BreaksOn(day))
	staffBreaks := parseBreaks(staff.BreaksOn(day))

	dateStr := date.Format(models.DateLayout)
	var dayRdvs []models.Appointment
	for _, rdv := range rdvs {
		if rdv.StaffID == staffID && rdv.OnDate(dateStr) {
			dayRdvs = append(dayRdvs, rdv)
		}
	}

	var slots []string
	for _, r := range workRanges {
		for t := r.start; t <= r.end; t = t.Add(SlotStep) {
			// A slot ending exactly on the range end is still bookable.
			slotEnd := t.Add(duration)
			if slotEnd > r.end {
				break
			}

			slotStart := t.At(date)
			if !slotStart.After(now) {
				continue
			}
			// Half-open on both sides: a slot ending exactly at a break
			// start, or starting exactly at a break end, stays valid.
			if anyOverlaps(salonBreaks, t, slotEnd) || anyOverlaps(staffBreaks, t, slotEnd) {
				continue
			}
			if conflicts(dayRdvs, slotStart, slotEnd.At(date)) {
				continue
			}
			slots = append(slots, t.String())
		}
	}
	return slots
}

// clipRanges intersects the staff working ranges with the salon window,
// discarding ranges that fall entirely outside it. The clipped ranges keep
// their stored order; staff documents hold them disjoint and sorted.
func clipRanges(ranges []models.TimeRange, window span) []span {
	var out []span
	for _, r := range ranges {
		sp, ok := parseRange(r.Start, r.End)
		if !ok {
			continue
		}
		if sp.start >= window.end || sp.end <= window.start {
			continue
		}
		if sp.start < window.start {
			sp.start = window.start
		}
		if sp.end > window.end {
			sp.end = window.end
		}
		out = append(out, sp)
	}
	return out
}

func anyOverlaps(spans []span, start, end Clock) bool {
	for _, s := range spans {
		if s.overlaps(start, end) {
			return true
		}
	}
	return false
}

func conflicts(rdvs []models.Appointment, start, end time.Time) bool {
	for i := range rdvs {
		if rdvs[i].OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}
