package models

// StaffDay describes one weekday of a staff member's personal schedule.
// Ranges may be empty or hold several disjoint windows (split shift).
// When Working is false the ranges are ignored even if present.
type StaffDay struct {
	Working bool        `bson:"working" json:"working"`
	Ranges  []TimeRange `bson:"ranges" json:"ranges"`
}

// StaffAvailability is the personal calendar of one staff member.
type StaffAvailability struct {
	StaffID      string           `bson:"staffId" json:"staffId"`
	WorkingHours map[Day]StaffDay `bson:"workingHours" json:"workingHours"`
	Breaks       []Break          `bson:"breaks" json:"breaks"`
	Vacations    []Vacation       `bson:"vacations" json:"vacations"`
}

// DayOn returns the staff schedule for a day. ok is false when the day is
// absent or marked not working.
func (s *StaffAvailability) DayOn(day Day) (StaffDay, bool) {
	if s == nil {
		return StaffDay{}, false
	}
	d, ok := s.WorkingHours[day]
	if !ok || !d.Working {
		return StaffDay{}, false
	}
	return d, true
}

// OnVacation reports whether the "YYYY-MM-DD" date is inside any staff vacation.
func (s *StaffAvailability) OnVacation(date string) bool {
	if s == nil {
		return false
	}
	for _, v := range s.Vacations {
		if v.Contains(date) {
			return true
		}
	}
	return false
}

// BreaksOn returns the staff breaks recurring on the given day.
func (s *StaffAvailability) BreaksOn(day Day) []Break {
	if s == nil {
		return nil
	}
	var out []Break
	for _, b := range s.Breaks {
		if b.Day == day {
			out = append(out, b)
		}
	}
	return out
}
