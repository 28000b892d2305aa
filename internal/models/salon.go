package models

import "time"

// Layouts for the wall-clock strings stored in documents. All times are
// local; no timezone handling happens anywhere in the service.
const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// TimeRange is a same-day interval of zero-padded "HH:mm" strings.
type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Valid requires a well-formed, non-empty range.
func (r TimeRange) Valid() bool {
	if _, err := time.Parse(ClockLayout, r.Start); err != nil {
		return false
	}
	if _, err := time.Parse(ClockLayout, r.End); err != nil {
		return false
	}
	return r.Start < r.End
}

// Break is a recurring weekly closure window, scoped to the salon or to
// one staff member depending on which document holds it.
type Break struct {
	ID    string `bson:"id" json:"id"`
	Day   Day    `bson:"day" json:"day"`
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Vacation is a closed date range, inclusive of both endpoints.
type Vacation struct {
	ID          string `bson:"id" json:"id"`
	StartDate   string `bson:"startDate" json:"startDate"`
	EndDate     string `bson:"endDate" json:"endDate"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Contains reports whether the given "YYYY-MM-DD" date falls inside the
// vacation. The end date counts as closed through 23:59:59, so a plain
// string comparison on zero-padded dates is exact.
func (v Vacation) Contains(date string) bool {
	return v.StartDate <= date && date <= v.EndDate
}

// SalonConfig is the singleton salon operating calendar.
type SalonConfig struct {
	WorkDays  map[Day]bool      `bson:"workDays" json:"workDays"`
	WorkHours map[Day]TimeRange `bson:"workHours" json:"workHours"`
	Breaks    []Break           `bson:"breaks" json:"breaks"`
	Vacations []Vacation        `bson:"vacations" json:"vacations"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// OpenOn reports whether the salon operates on the given day at all.
func (c *SalonConfig) OpenOn(day Day) bool {
	return c != nil && c.WorkDays[day]
}

// HoursOn returns the salon working window for a day. ok is false when the
// day has no configured hours, which callers must treat as closed.
func (c *SalonConfig) HoursOn(day Day) (TimeRange, bool) {
	if c == nil {
		return TimeRange{}, false
	}
	hours, ok := c.WorkHours[day]
	if !ok || !hours.Valid() {
		return TimeRange{}, false
	}
	return hours, true
}

// OnVacation reports whether the "YYYY-MM-DD" date is inside any salon vacation.
func (c *SalonConfig) OnVacation(date string) bool {
	if c == nil {
		return false
	}
	for _, v := range c.Vacations {
		if v.Contains(date) {
			return true
		}
	}
	return false
}

// BreaksOn returns the salon breaks recurring on the given day.
func (c *SalonConfig) BreaksOn(day Day) []Break {
	if c == nil {
		return nil
	}
	var out []Break
	for _, b := range c.Breaks {
		if b.Day == day {
			out = append(out, b)
		}
	}
	return out
}
