package strptime

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Optional is a value that may be absent.
type Optional[T comparable] struct {
	Value T
	Valid bool
}

// Some returns a present Optional holding v.
func Some[T comparable](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Valid }

func (o Optional[T]) ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// Meridiem is the am/pm half of a 12-hour clock reading.
type Meridiem int

const (
	AM Meridiem = iota + 1
	PM
)

func (m Meridiem) String() string {
	switch m {
	case AM:
		return "am"
	case PM:
		return "pm"
	}
	return "unknown"
}

func (m Meridiem) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Fraction is the digit run read by %f: its value and how many digits it
// had.
type Fraction struct {
	Value  int `json:"value"`
	Digits int `json:"digits"`
}

// Fields holds the values a parse extracted, before any calendar is
// involved. Each field is written at most once per parse; names are stored
// as their 1-based position in the configured list.
type Fields struct {
	Day         Optional[int]
	Month       Optional[int]
	Year        Optional[int]
	Year2       Optional[int]
	Hour        Optional[int]
	Hour12      Optional[int]
	Minute      Optional[int]
	Second      Optional[int]
	Microsecond Optional[Fraction]
	AmPm        Optional[Meridiem]
	DayOfWeek   Optional[int]
	DayOfYear   Optional[int]
	Quarter     Optional[int]
	ZoneAbbr    Optional[string]
	// ZoneOffset is in seconds east of UTC.
	ZoneOffset Optional[int]
}

// store writes v into o. Writing the value already present is a no-op,
// writing a different one is a conflict.
func store[T comparable](o *Optional[T], in Instruction, v T) error {
	if o.Valid {
		if o.Value == v {
			return nil
		}
		return &ParseError{Kind: Conflict, Modifier: in.String(), Expected: o.Value, Got: v}
	}
	*o = Some(v)
	return nil
}

type fieldsJSON struct {
	Day         *int      `json:"day,omitempty"`
	Month       *int      `json:"month,omitempty"`
	Year        *int      `json:"year,omitempty"`
	Year2       *int      `json:"year_2_digit,omitempty"`
	Hour        *int      `json:"hour,omitempty"`
	Hour12      *int      `json:"hour_12,omitempty"`
	Minute      *int      `json:"minute,omitempty"`
	Second      *int      `json:"second,omitempty"`
	Microsecond *Fraction `json:"microsecond,omitempty"`
	AmPm        *Meridiem `json:"am_pm,omitempty"`
	DayOfWeek   *int      `json:"day_of_week,omitempty"`
	DayOfYear   *int      `json:"day_of_year,omitempty"`
	Quarter     *int      `json:"quarter,omitempty"`
	ZoneAbbr    *string   `json:"zone_abbr,omitempty"`
	ZoneOffset  *int      `json:"zone_offset,omitempty"`
}

// MarshalJSON writes the present fields only.
func (f Fields) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldsJSON{
		Day:         f.Day.ptr(),
		Month:       f.Month.ptr(),
		Year:        f.Year.ptr(),
		Year2:       f.Year2.ptr(),
		Hour:        f.Hour.ptr(),
		Hour12:      f.Hour12.ptr(),
		Minute:      f.Minute.ptr(),
		Second:      f.Second.ptr(),
		Microsecond: f.Microsecond.ptr(),
		AmPm:        f.AmPm.ptr(),
		DayOfWeek:   f.DayOfWeek.ptr(),
		DayOfYear:   f.DayOfYear.ptr(),
		Quarter:     f.Quarter.ptr(),
		ZoneAbbr:    f.ZoneAbbr.ptr(),
		ZoneOffset:  f.ZoneOffset.ptr(),
	})
}

// String lists the present fields as name=value pairs.
func (f Fields) String() string {
	var parts []string
	add := func(name string, v any, ok bool) {
		if ok {
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}
	add("year", f.Year.Value, f.Year.Valid)
	add("year_2_digit", f.Year2.Value, f.Year2.Valid)
	add("month", f.Month.Value, f.Month.Valid)
	add("day", f.Day.Value, f.Day.Valid)
	add("day_of_week", f.DayOfWeek.Value, f.DayOfWeek.Valid)
	add("day_of_year", f.DayOfYear.Value, f.DayOfYear.Valid)
	add("quarter", f.Quarter.Value, f.Quarter.Valid)
	add("hour", f.Hour.Value, f.Hour.Valid)
	add("hour_12", f.Hour12.Value, f.Hour12.Valid)
	add("am_pm", f.AmPm.Value, f.AmPm.Valid)
	add("minute", f.Minute.Value, f.Minute.Valid)
	add("second", f.Second.Value, f.Second.Valid)
	if us, ok := f.Microsecond.Get(); ok {
		add("microsecond", fmt.Sprintf("%d/%d", us.Value, us.Digits), true)
	}
	add("zone_abbr", f.ZoneAbbr.Value, f.ZoneAbbr.Valid)
	add("zone_offset", f.ZoneOffset.Value, f.ZoneOffset.Valid)
	return strings.Join(parts, " ")
}
