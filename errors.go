package strptime

import (
	"fmt"
)

// FormatErrorKind classifies a FormatStringError.
type FormatErrorKind int

const (
	InvalidModifier FormatErrorKind = iota + 1
)

func (k FormatErrorKind) String() string {
	switch k {
	case InvalidModifier:
		return "invalid_modifier"
	}
	return "unknown"
}

// FormatStringError reports a malformed format string.
type FormatStringError struct {
	Kind FormatErrorKind
	// Modifier is the canonical text of the offending modifier.
	Modifier string
}

func (e *FormatStringError) Error() string {
	return fmt.Sprintf("strptime: %s %q", e.Kind, e.Modifier)
}

// OptionErrorKind classifies an OptionError.
type OptionErrorKind int

const (
	MissingOption OptionErrorKind = iota + 1
	UnknownOption
	InvalidOption
	// CycleOption marks a shorthand whose preferred format refers back to
	// a shorthand that is already being expanded.
	CycleOption
)

func (k OptionErrorKind) String() string {
	switch k {
	case MissingOption:
		return "missing"
	case UnknownOption:
		return "unknown"
	case InvalidOption:
		return "invalid"
	case CycleOption:
		return "cycle"
	}
	return "unknown_kind"
}

// OptionError reports a missing, unknown or unusable option.
type OptionError struct {
	Kind OptionErrorKind
	Key  string
	// Modifier is set for CycleOption.
	Modifier string
	Err      error
}

func (e *OptionError) Error() string {
	s := fmt.Sprintf("strptime: %s option %q", e.Kind, e.Key)
	if e.Modifier != "" {
		s += " at " + e.Modifier
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *OptionError) Unwrap() error { return e.Err }

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	ExpectedExact ParseErrorKind = iota + 1
	InvalidString
	InvalidInteger
	Conflict
	InvalidInput
)

func (k ParseErrorKind) String() string {
	switch k {
	case ExpectedExact:
		return "expected_exact"
	case InvalidString:
		return "invalid_string"
	case InvalidInteger:
		return "invalid_integer"
	case Conflict:
		return "conflict"
	case InvalidInput:
		return "invalid_input"
	}
	return "unknown"
}

// ParseError reports input that does not match a valid format.
//
// Expected and Got depend on the kind: ExpectedExact carries the literal
// and the remaining input, Conflict carries the value already stored and
// the differing new value (an int position for name fields, a Meridiem
// for am/pm), the remaining kinds carry the remaining input in Got.
type ParseError struct {
	Kind     ParseErrorKind
	Modifier string
	Expected any
	Got      any
}

func (e *ParseError) Error() string {
	s := "strptime: " + e.Kind.String()
	if e.Modifier != "" {
		s += " at " + e.Modifier
	}
	switch e.Kind {
	case ExpectedExact, Conflict:
		s += fmt.Sprintf(": expected %v, got %v", quote(e.Expected), quote(e.Got))
	default:
		if e.Got != nil {
			s += fmt.Sprintf(": got %v", quote(e.Got))
		}
	}
	return s
}

func quote(v any) any {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return v
}

// ValidationErrorKind classifies a ValidationError.
type ValidationErrorKind int

const (
	InvalidDate ValidationErrorKind = iota + 1
	InvalidTime
	UnknownTimezoneAbbr
	// InvalidZoneOffset marks an explicit offset contradicting the offset
	// a zone abbreviation resolves to.
	InvalidZoneOffset
)

func (k ValidationErrorKind) String() string {
	switch k {
	case InvalidDate:
		return "invalid_date"
	case InvalidTime:
		return "invalid_time"
	case UnknownTimezoneAbbr:
		return "unknown_timezone_abbr"
	case InvalidZoneOffset:
		return "invalid_zone_offset"
	}
	return "unknown"
}

// ValidationError reports matched fields that do not form a real value.
type ValidationError struct {
	Kind ValidationErrorKind
	// Abbr is the zone abbreviation for the zone kinds.
	Abbr string
	Err  error
}

func (e *ValidationError) Error() string {
	s := "strptime: " + e.Kind.String()
	if e.Abbr != "" {
		s += " " + e.Abbr
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ValidationError) Unwrap() error { return e.Err }
