// Package calendar is the calendar capability the strptime engine builds
// its values with. The engine only hands over integer components; every
// question about whether a year/month/day exists, which weekday it falls
// on or which instant a wall clock reading names is answered here.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDate is returned (wrapped) for impossible year/month/day
	// combinations.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTime is returned (wrapped) for out of range time components.
	ErrInvalidTime = errors.New("invalid time")
)

// Calendar validates and inspects calendar values.
type Calendar interface {
	// Name is the key the calendar is registered under, see Lookup.
	Name() string
	// Date validates year, month and day and returns the date.
	Date(year, month, day int) (Date, error)
	// Time validates the clock components. microsecond is already scaled
	// to millionths of a second; precision is the number of significant
	// fractional digits.
	Time(hour, minute, second, microsecond, precision int) (Time, error)
	// DayOfWeek returns 1 for Monday through 7 for Sunday.
	DayOfWeek(d Date) int
	// DayOfYear returns 1 for January 1st.
	DayOfYear(d Date) int
	// QuarterOfYear returns 1 through 4.
	QuarterOfYear(d Date) int
	// Today returns the current date according to clk.
	Today(clk Clock) Date
}

// Date is a calendar day without a time or a zone.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	if d.Year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Microsecond is a sub-second value together with the number of digits
// it was observed with.
type Microsecond struct {
	Value     int
	Precision int
}

// Time is a wall clock reading without a date or a zone.
type Time struct {
	Hour        int
	Minute      int
	Second      int
	Microsecond Microsecond
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if p := t.Microsecond.Precision; p > 0 {
		frac := fmt.Sprintf("%06d", t.Microsecond.Value)
		s += "." + frac[:p]
	}
	return s
}

// NaiveDateTime is a date and a time without any zone information.
type NaiveDateTime struct {
	Date Date
	Time Time
}

func (n NaiveDateTime) String() string {
	return n.Date.String() + " " + n.Time.String()
}

// UTC reads the naive value as a UTC wall clock and returns the instant.
func (n NaiveDateTime) UTC() time.Time {
	return time.Date(n.Date.Year, time.Month(n.Date.Month), n.Date.Day,
		n.Time.Hour, n.Time.Minute, n.Time.Second,
		n.Time.Microsecond.Value*int(time.Microsecond), time.UTC)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the process clock.
var SystemClock Clock = ClockFunc(time.Now)

// Fixed returns a clock that is always at t.
func Fixed(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

var calendars = map[string]Calendar{
	ISO.Name(): ISO,
}

// Lookup returns the calendar registered under name.
func Lookup(name string) (Calendar, bool) {
	c, ok := calendars[name]
	return c, ok
}
