package strptime

import (
	"time"

	"github.com/araddon/strptime/calendar"
)

// ParseDate parses input with format and builds a validated date.
func ParseDate(input, format string, opts ...Option) (calendar.Date, error) {
	f, err := Compile(format)
	if err != nil {
		return calendar.Date{}, err
	}
	return f.ParseDate(input, opts...)
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(input, format string, opts ...Option) calendar.Date {
	d, err := ParseDate(input, format, opts...)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// ParseTime parses input with format and builds a validated time of day.
func ParseTime(input, format string, opts ...Option) (calendar.Time, error) {
	f, err := Compile(format)
	if err != nil {
		return calendar.Time{}, err
	}
	return f.ParseTime(input, opts...)
}

// MustParseTime is like ParseTime but panics on error.
func MustParseTime(input, format string, opts ...Option) calendar.Time {
	t, err := ParseTime(input, format, opts...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// ParseNaiveDateTime parses input with format into a date and time without
// a zone. Zone fields in the input are matched but ignored.
func ParseNaiveDateTime(input, format string, opts ...Option) (calendar.NaiveDateTime, error) {
	f, err := Compile(format)
	if err != nil {
		return calendar.NaiveDateTime{}, err
	}
	return f.ParseNaiveDateTime(input, opts...)
}

// MustParseNaiveDateTime is like ParseNaiveDateTime but panics on error.
func MustParseNaiveDateTime(input, format string, opts ...Option) calendar.NaiveDateTime {
	n, err := ParseNaiveDateTime(input, format, opts...)
	if err != nil {
		panic(err.Error())
	}
	return n
}

// ParseDateTime parses input with format and resolves the result to an
// instant, returned in UTC unless a custom resolver decides otherwise.
func ParseDateTime(input, format string, opts ...Option) (time.Time, error) {
	f, err := Compile(format)
	if err != nil {
		return time.Time{}, err
	}
	return f.ParseDateTime(input, opts...)
}

// MustParseDateTime is like ParseDateTime but panics on error.
func MustParseDateTime(input, format string, opts ...Option) time.Time {
	t, err := ParseDateTime(input, format, opts...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

func (f *Format) ParseDate(input string, opts ...Option) (calendar.Date, error) {
	o, fields, err := f.prepare(input, opts)
	if err != nil {
		return calendar.Date{}, err
	}
	d, err := assembleDate(fields, o)
	if err != nil {
		o.logFailure(f, input, err)
	}
	return d, err
}

func (f *Format) ParseTime(input string, opts ...Option) (calendar.Time, error) {
	o, fields, err := f.prepare(input, opts)
	if err != nil {
		return calendar.Time{}, err
	}
	t, err := assembleTime(fields, o)
	if err != nil {
		o.logFailure(f, input, err)
	}
	return t, err
}

func (f *Format) ParseNaiveDateTime(input string, opts ...Option) (calendar.NaiveDateTime, error) {
	o, fields, err := f.prepare(input, opts)
	if err != nil {
		return calendar.NaiveDateTime{}, err
	}
	n, err := assembleNaiveDateTime(fields, o)
	if err != nil {
		o.logFailure(f, input, err)
	}
	return n, err
}

func (f *Format) ParseDateTime(input string, opts ...Option) (time.Time, error) {
	o, fields, err := f.prepare(input, opts)
	if err != nil {
		return time.Time{}, err
	}
	t, err := assembleDateTime(fields, o)
	if err != nil {
		o.logFailure(f, input, err)
	}
	return t, err
}

func (f *Format) prepare(input string, opts []Option) (*options, Fields, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, Fields{}, err
	}
	fields, err := f.parse(input, o)
	if err != nil {
		return nil, Fields{}, err
	}
	return o, fields, nil
}

func assembleDate(fields Fields, o *options) (calendar.Date, error) {
	year, month, day, err := dateDefaults(fields, o)
	if err != nil {
		return calendar.Date{}, err
	}
	cal := o.calendar
	d, err := cal.Date(year, month, day)
	if err != nil {
		return calendar.Date{}, &ValidationError{Kind: InvalidDate, Err: err}
	}

	checks := []struct {
		field Optional[int]
		of    func(calendar.Date) int
	}{
		{fields.DayOfWeek, cal.DayOfWeek},
		{fields.DayOfYear, cal.DayOfYear},
		{fields.Quarter, cal.QuarterOfYear},
	}
	for _, c := range checks {
		if v, ok := c.field.Get(); ok && c.of(d) != v {
			return calendar.Date{}, &ValidationError{Kind: InvalidDate}
		}
	}
	return d, nil
}

// dateDefaults returns the year, month and day to build a date from.
// Absent month and day are 1.
func dateDefaults(fields Fields, o *options) (year, month, day int, err error) {
	if year, err = resolveYear(fields, o); err != nil {
		return 0, 0, 0, err
	}
	month, day = 1, 1
	if v, ok := fields.Month.Get(); ok {
		month = v
	}
	if v, ok := fields.Day.Get(); ok {
		day = v
	}
	return year, month, day, nil
}

// resolveYear picks the full year, falling back to the two-digit year read
// through the pivot window and then to year 0.
func resolveYear(fields Fields, o *options) (int, error) {
	if v, ok := fields.Year.Get(); ok {
		return v, nil
	}
	raw, ok := fields.Year2.Get()
	if !ok {
		return 0, nil
	}
	pivot, ok := o.pivotYear.Get()
	if !ok {
		return 0, &OptionError{Kind: MissingOption, Key: "pivot_year"}
	}
	if raw < 0 {
		return raw, nil
	}
	century := o.calendar.Today(o.clock).Year / 100
	if raw <= pivot {
		return century*100 + raw, nil
	}
	return (century-1)*100 + raw, nil
}

func assembleTime(fields Fields, o *options) (calendar.Time, error) {
	c, err := timeDefaults(fields)
	if err != nil {
		return calendar.Time{}, err
	}
	t, err := o.calendar.Time(c.hour, c.minute, c.second, c.microsecond, c.precision)
	if err != nil {
		return calendar.Time{}, &ValidationError{Kind: InvalidTime, Err: err}
	}
	return t, nil
}

type clockReading struct {
	hour, minute, second   int
	microsecond, precision int
}

// timeDefaults returns the components to build a time from. Without an
// hour field the time is midnight and minute, second and microsecond
// fields are not consulted.
func timeDefaults(fields Fields) (clockReading, error) {
	if !fields.Hour.Valid && !fields.Hour12.Valid {
		return clockReading{}, nil
	}
	hour, err := resolveHour(fields)
	if err != nil {
		return clockReading{}, err
	}
	c := clockReading{hour: hour}
	if v, ok := fields.Minute.Get(); ok {
		c.minute = v
	}
	if v, ok := fields.Second.Get(); ok {
		c.second = v
	}
	if v, ok := fields.Microsecond.Get(); ok {
		c.microsecond, c.precision = v.Value, v.Digits
		for i := v.Digits; i < 6; i++ {
			c.microsecond *= 10
		}
	}
	return c, nil
}

// resolveHour reconciles the 24-hour and the 12-hour reading. A 12-hour
// value is only meaningful together with am/pm.
func resolveHour(fields Fields) (int, error) {
	h12, ok := fields.Hour12.Get()
	if !ok {
		h, _ := fields.Hour.Get()
		return h, nil
	}
	meridiem, ok := fields.AmPm.Get()
	if !ok || h12 < 1 || h12 > 12 {
		return 0, &ValidationError{Kind: InvalidTime}
	}
	hour := h12
	switch {
	case h12 == 12 && meridiem == AM:
		hour = 0
	case h12 == 12:
		hour = 12
	case meridiem == PM:
		hour += 12
	}
	if h, ok := fields.Hour.Get(); ok && h != hour {
		return 0, &ValidationError{Kind: InvalidTime}
	}
	return hour, nil
}

func assembleNaiveDateTime(fields Fields, o *options) (calendar.NaiveDateTime, error) {
	d, err := assembleDate(fields, o)
	if err != nil {
		return calendar.NaiveDateTime{}, err
	}
	t, err := assembleTime(fields, o)
	if err != nil {
		return calendar.NaiveDateTime{}, err
	}
	return calendar.NaiveDateTime{Date: d, Time: t}, nil
}

func assembleDateTime(fields Fields, o *options) (time.Time, error) {
	n, err := assembleNaiveDateTime(fields, o)
	if err != nil {
		return time.Time{}, err
	}
	resolve := o.zone
	if resolve == nil {
		resolve = DefaultZoneResolver
	}
	return resolve(n, fields.ZoneAbbr, fields.ZoneOffset)
}
