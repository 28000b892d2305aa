package models

import (
	"strings"
	"time"
)

// Appointment sources.
const (
	SourceAdmin  = "admin"
	SourceClient = "client"
)

// Appointment is a confirmed booking (a "rdv" in the salon app).
// Start and End are zoneless local timestamps in DateTimeLayout; the date
// part of Start is what ties an appointment to a calendar day.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	ServiceID       string    `bson:"serviceId" json:"serviceId"`
	ServiceTitle    string    `bson:"serviceTitle" json:"serviceTitle"`
	ServiceDuration int       `bson:"serviceDuration" json:"serviceDuration"`
	StaffID         string    `bson:"staffId" json:"staffId"`
	Start           string    `bson:"start" json:"start"`
	End             string    `bson:"end" json:"end"`
	ClientName      string    `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ClientPhone     string    `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`
	ClientEmail     string    `bson:"clientEmail,omitempty" json:"clientEmail,omitempty"`
	Price           float64   `bson:"price,omitempty" json:"price,omitempty"`
	Paid            bool      `bson:"paid" json:"paid"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Source          string    `bson:"source" json:"source"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// ParseTimestamp accepts the stored local layout and, for tolerance with
// rows written by older app builds, RFC 3339 with the offset discarded. All
// results live in the process-local zone so wall-clock comparisons hold.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
}

// StartTime parses the start timestamp.
func (a *Appointment) StartTime() (time.Time, error) {
	return ParseTimestamp(a.Start)
}

// EndTime parses the end timestamp.
func (a *Appointment) EndTime() (time.Time, error) {
	return ParseTimestamp(a.End)
}

// OnDate reports whether the appointment starts on the given "YYYY-MM-DD" day.
func (a *Appointment) OnDate(date string) bool {
	return strings.HasPrefix(a.Start, date)
}

// OverlapsInterval reports whether [start, end) intersects the appointment's
// half-open interval. Unparseable timestamps count as overlapping so a
// corrupt row can never cause a double booking.
func (a *Appointment) OverlapsInterval(start, end time.Time) bool {
	aStart, err := a.StartTime()
	if err != nil {
		return true
	}
	aEnd, err := a.EndTime()
	if err != nil {
		return true
	}
	return start.Before(aEnd) && end.After(aStart)
}

// OverlapsWith reports whether two appointments intersect.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	oStart, err := other.StartTime()
	if err != nil {
		return true
	}
	oEnd, err := other.EndTime()
	if err != nil {
		return true
	}
	return a.OverlapsInterval(oStart, oEnd)
}
