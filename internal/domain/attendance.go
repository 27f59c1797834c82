package domain

import "time"

// AttendanceDateLayout is the wire layout of attended days
const AttendanceDateLayout = "2006-01-02"

// AttendanceDay is a calendar day the member checked in on
type AttendanceDay struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseAttendanceDay parses a YYYY-MM-DD string
func ParseAttendanceDay(s string) (AttendanceDay, error) {
	t, err := time.Parse(AttendanceDateLayout, s)
	if err != nil {
		return AttendanceDay{}, err
	}
	return DayOf(t), nil
}

// DayOf truncates a time to its calendar day in the time's own location
func DayOf(t time.Time) AttendanceDay {
	y, m, d := t.Date()
	return AttendanceDay{Year: y, Month: m, Day: d}
}

// String formats the day in wire layout
func (d AttendanceDay) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(AttendanceDateLayout)
}
