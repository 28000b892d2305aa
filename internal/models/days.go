package models

import "time"

// Day is a weekday key as stored in salon and staff documents.
// Documents keep the French labels the mobile app writes; time.Weekday is
// the only in-process day representation, converted here and nowhere else.
type Day string

const (
	Monday    Day = "Lundi"
	Tuesday   Day = "Mardi"
	Wednesday Day = "Mercredi"
	Thursday  Day = "Jeudi"
	Friday    Day = "Vendredi"
	Saturday  Day = "Samedi"
	Sunday    Day = "Dimanche"
)

var weekdayToDay = map[time.Weekday]Day{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayOf returns the document day key for a calendar date.
func DayOf(t time.Time) Day {
	return weekdayToDay[t.Weekday()]
}

// AllDays lists the seven days in ISO order, Monday first.
func AllDays() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is one of the seven known day labels.
func (d Day) Valid() bool {
	for _, day := range AllDays() {
		if d == day {
			return true
		}
	}
	return false
}
