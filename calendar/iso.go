package calendar

import (
	"fmt"
	"time"
)

// ISO is the proleptic Gregorian calendar with ISO weekday numbering.
var ISO Calendar = iso{}

type iso struct{}

func (iso) Name() string { return "iso" }

func (iso) Date(year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if day < 1 || day > daysInMonth(month, year) {
		return Date{}, fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDate, day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func (iso) Time(hour, minute, second, microsecond, precision int) (Time, error) {
	switch {
	case hour < 0 || hour > 23:
		return Time{}, fmt.Errorf("%w: hour %d out of range", ErrInvalidTime, hour)
	case minute < 0 || minute > 59:
		return Time{}, fmt.Errorf("%w: minute %d out of range", ErrInvalidTime, minute)
	case second < 0 || second > 59:
		return Time{}, fmt.Errorf("%w: second %d out of range", ErrInvalidTime, second)
	case precision < 0 || precision > 6:
		return Time{}, fmt.Errorf("%w: precision %d out of range", ErrInvalidTime, precision)
	case microsecond < 0 || microsecond > 999999:
		return Time{}, fmt.Errorf("%w: microsecond %d out of range", ErrInvalidTime, microsecond)
	}
	return Time{
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		Microsecond: Microsecond{Value: microsecond, Precision: precision},
	}, nil
}

func (iso) DayOfWeek(d Date) int {
	wd := int(d.time().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (iso) DayOfYear(d Date) int {
	return d.time().YearDay()
}

func (iso) QuarterOfYear(d Date) int {
	return (d.Month-1)/3 + 1
}

func (iso) Today(clk Clock) Date {
	y, m, d := clk.Now().UTC().Date()
	return Date{Year: y, Month: int(m), Day: d}
}

func (d Date) time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Proleptic Gregorian: every fourth year, except centuries not divisible by 400.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthLength = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysInMonth expects month in 1..12.
func daysInMonth(month, year int) int {
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return monthLength[month-1]
}
