package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func localTime(hour, min int) time.Time {
	return time.Date(2026, time.January, 5, hour, min, 0, 0, time.Local)
}

func TestAppointment_StartEndTime(t *testing.T) {
	a := Appointment{Start: "2026-01-05T10:00:00", End: "2026-01-05T10:45:00"}

	start, err := a.StartTime()
	assert.NoError(t, err)
	assert.Equal(t, localTime(10, 0), start)

	end, err := a.EndTime()
	assert.NoError(t, err)
	assert.Equal(t, localTime(10, 45), end)
}

func TestAppointment_RFC3339Fallback(t *testing.T) {
	// Older app builds wrote toISOString() timestamps; the offset is
	// discarded and the wall-clock reading kept.
	a := Appointment{Start: "2026-01-05T10:00:00+01:00"}

	start, err := a.StartTime()
	assert.NoError(t, err)
	assert.Equal(t, localTime(10, 0), start)
}

func TestAppointment_OnDate(t *testing.T) {
	a := Appointment{Start: "2026-01-05T10:00:00"}

	assert.True(t, a.OnDate("2026-01-05"))
	assert.False(t, a.OnDate("2026-01-06"))
}

func TestAppointment_OverlapsInterval(t *testing.T) {
	a := Appointment{Start: "2026-01-05T10:00:00", End: "2026-01-05T11:00:00"}

	assert.False(t, a.OverlapsInterval(localTime(9, 0), localTime(10, 0)), "abuts start")
	assert.False(t, a.OverlapsInterval(localTime(11, 0), localTime(12, 0)), "abuts end")
	assert.True(t, a.OverlapsInterval(localTime(9, 30), localTime(10, 30)), "crosses start")
	assert.True(t, a.OverlapsInterval(localTime(10, 15), localTime(10, 45)), "contained")
	assert.True(t, a.OverlapsInterval(localTime(9, 0), localTime(12, 0)), "covers")
}

func TestAppointment_MalformedTimesOverlap(t *testing.T) {
	a := Appointment{Start: "garbage", End: "2026-01-05T11:00:00"}

	assert.True(t, a.OverlapsInterval(localTime(9, 0), localTime(9, 30)),
		"unparseable rows count as conflicting")
}

func TestVacation_Contains(t *testing.T) {
	v := Vacation{StartDate: "2026-02-10", EndDate: "2026-02-14"}

	assert.True(t, v.Contains("2026-02-10"), "start date inclusive")
	assert.True(t, v.Contains("2026-02-14"), "end date inclusive")
	assert.True(t, v.Contains("2026-02-12"))
	assert.False(t, v.Contains("2026-02-09"))
	assert.False(t, v.Contains("2026-02-15"))
}

func TestTimeRange_Valid(t *testing.T) {
	assert.True(t, TimeRange{Start: "09:00", End: "18:00"}.Valid())
	assert.False(t, TimeRange{Start: "18:00", End: "09:00"}.Valid(), "inverted")
	assert.False(t, TimeRange{Start: "09:00", End: "09:00"}.Valid(), "empty")
	assert.False(t, TimeRange{Start: "", End: "18:00"}.Valid())
	assert.False(t, TimeRange{Start: "9h00", End: "18:00"}.Valid())
}

func TestDayOf(t *testing.T) {
	assert.Equal(t, Monday, DayOf(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, Sunday, DayOf(time.Date(2026, time.January, 4, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, Saturday, DayOf(time.Date(2026, time.January, 10, 12, 30, 0, 0, time.Local)))
}

func TestSalonConfig_Lookups(t *testing.T) {
	cfg := &SalonConfig{
		WorkDays:  map[Day]bool{Monday: true, Tuesday: false},
		WorkHours: map[Day]TimeRange{Monday: {Start: "09:00", End: "18:00"}},
		Breaks: []Break{
			{ID: "b1", Day: Monday, Start: "12:00", End: "13:00"},
			{ID: "b2", Day: Friday, Start: "12:00", End: "14:00"},
		},
	}

	assert.True(t, cfg.OpenOn(Monday))
	assert.False(t, cfg.OpenOn(Tuesday))
	assert.False(t, cfg.OpenOn(Wednesday), "missing day reads as closed")

	hours, ok := cfg.HoursOn(Monday)
	assert.True(t, ok)
	assert.Equal(t, "09:00", hours.Start)
	_, ok = cfg.HoursOn(Tuesday)
	assert.False(t, ok)

	assert.Len(t, cfg.BreaksOn(Monday), 1)
	assert.Empty(t, cfg.BreaksOn(Sunday))

	var nilCfg *SalonConfig
	assert.False(t, nilCfg.OpenOn(Monday))
	_, ok = nilCfg.HoursOn(Monday)
	assert.False(t, ok)
}

func TestStaffAvailability_DayOn(t *testing.T) {
	staff := &StaffAvailability{
		StaffID: "bea",
		WorkingHours: map[Day]StaffDay{
			Monday:  {Working: true, Ranges: []TimeRange{{Start: "09:00", End: "12:00"}}},
			Tuesday: {Working: false, Ranges: []TimeRange{{Start: "09:00", End: "12:00"}}},
		},
	}

	d, ok := staff.DayOn(Monday)
	assert.True(t, ok)
	assert.Len(t, d.Ranges, 1)

	_, ok = staff.DayOn(Tuesday)
	assert.False(t, ok, "working=false ignores ranges")

	_, ok = staff.DayOn(Wednesday)
	assert.False(t, ok)
}

func TestService_EffectivePrice(t *testing.T) {
	assert.Equal(t, 45.0, (&Service{OriginalPrice: 45}).EffectivePrice())
	assert.Equal(t, 38.25, (&Service{OriginalPrice: 45, DiscountedPrice: 38.25, Discount: -15}).EffectivePrice())
}
