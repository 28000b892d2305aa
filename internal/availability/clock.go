// Package availability computes bookable time slots from the salon
// operating calendar, a staff member's personal calendar and the
// appointments already on the books. Everything here is pure: callers
// fetch the documents and pass them in together with "now".
package availability

import (
	"fmt"
	"time"

	"github.com/Luckywi/balzac-api/internal/models"
)

// SlotStep is the fixed grid the booking UI walks, in minutes.
const SlotStep = 15

// Clock is a minute of day (0..1439). The stored "HH:mm" strings compare
// correctly as strings because they are zero padded; minutes keep the same
// ordering and make the boundary arithmetic explicit.
type Clock int

// ParseClock parses a zero-padded 24h "HH:mm" string.
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if len(s) != 5 || s[2] != ':' || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return Clock(h*60 + m), nil
}

// ClockOf truncates an instant to its minute of day.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

// String formats the clock back to "HH:mm".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock shifted by n minutes. The result may run past the
// end of the day; callers compare it against range ends before using it.
func (c Clock) Add(n int) Clock {
	return c + Clock(n)
}

// At anchors the clock on a calendar date in the process-local zone.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(c)/60, int(c)%60, 0, 0, time.Local)
}

// span is a parsed half-open clock interval.
type span struct {
	start, end Clock
}

// parseRange converts a stored range, rejecting malformed or inverted ones.
func parseRange(start, end string) (span, bool) {
	s, err := ParseClock(start)
	if err != nil {
		return span{}, false
	}
	e, err := ParseClock(end)
	if err != nil {
		return span{}, false
	}
	if s >= e {
		return span{}, false
	}
	return span{start: s, end: e}, true
}

// parseBreaks converts stored breaks to spans, dropping malformed entries.
// Dropping is safe here only because breaks restrict availability; a break
// that cannot be parsed is handled by the caller's fail-closed checks on
// the enclosing working ranges.
func parseBreaks(breaks []models.Break) []span {
	var out []span
	for _, b := range breaks {
		if sp, ok := parseRange(b.Start, b.End); ok {
			out = append(out, sp)
		}
	}
	return out
}

// overlaps is the standard half-open interval test.
func (s span) overlaps(start, end Clock) bool {
	return start < s.end && end > s.start
}

// intersects is the three-way overlap test used for drag selections:
// the interval starts inside the span, ends inside it, or fully covers it.
func (s span) intersects(start, end Clock) bool {
	if start >= s.start && start < s.end {
		return true
	}
	if end > s.start && end <= s.end {
		return true
	}
	return start <= s.start && end >= s.end
}
