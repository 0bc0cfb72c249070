package strptime

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Parse compiles format and matches input against it. Use Compile and
// Format.Parse to reuse a format across many inputs.
func Parse(input, format string, opts ...Option) (Fields, error) {
	f, err := Compile(format)
	if err != nil {
		return Fields{}, err
	}
	return f.Parse(input, opts...)
}

// MustParse is like Parse but panics on error.
func MustParse(input, format string, opts ...Option) Fields {
	fields, err := Parse(input, format, opts...)
	if err != nil {
		panic(err.Error())
	}
	return fields
}

// Parse matches input against the format and returns the extracted fields.
// Matching is a single left to right pass; the whole input has to be
// consumed.
func (f *Format) Parse(input string, opts ...Option) (Fields, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return Fields{}, err
	}
	return f.parse(input, o)
}

func (f *Format) parse(input string, o *options) (Fields, error) {
	fields, err := f.match(input, o)
	if err != nil {
		o.logFailure(f, input, err)
		return Fields{}, err
	}
	return fields, nil
}

func (o *options) logFailure(f *Format, input string, err error) {
	o.logger.Debug("strptime: parse failed",
		zap.String("input", input),
		zap.String("format", f.source),
		zap.Error(err))
}

func (f *Format) match(input string, o *options) (Fields, error) {
	if !o.pivotYear.Valid {
		var seen [numShorthands]bool
		if o.needsPivot(f, &seen) {
			return Fields{}, &OptionError{Kind: MissingOption, Key: "pivot_year"}
		}
	}
	m := matcher{opts: o, rest: input}
	if err := m.run(f.instructions); err != nil {
		return Fields{}, err
	}
	if m.rest != "" {
		return Fields{}, &ParseError{Kind: InvalidInput, Got: m.rest}
	}
	return m.fields, nil
}

// matcher is the per call state of a parse.
type matcher struct {
	opts   *options
	rest   string
	fields Fields
}

func (m *matcher) run(instructions []Instruction) error {
	for _, in := range instructions {
		if err := m.step(in); err != nil {
			return err
		}
	}
	return nil
}

func (m *matcher) step(in Instruction) error {
	if s, ok := shorthandOf(in.Modifier); ok {
		return m.expand(s, in)
	}
	if m.rest == "" {
		if in.IsLiteral() {
			return &ParseError{Kind: InvalidInput, Expected: in.Literal, Got: ""}
		}
		return &ParseError{Kind: InvalidInput, Modifier: in.String(), Got: ""}
	}

	f := &m.fields
	switch in.Modifier {
	case 0:
		if !strings.HasPrefix(m.rest, in.Literal) {
			return &ParseError{Kind: ExpectedExact, Expected: in.Literal, Got: m.rest}
		}
		m.rest = m.rest[len(in.Literal):]
		return nil
	case 'a', 'A', 'b', 'B':
		v, err := m.name(in, m.opts.names(in.Modifier))
		if err != nil {
			return err
		}
		return store(f.intField(in.Field()), in, v)
	case 'p', 'P':
		v, err := m.name(in, m.opts.names(in.Modifier))
		if err != nil {
			return err
		}
		return store(&f.AmPm, in, Meridiem(v))
	case 'd', 'H', 'I', 'j', 'm', 'M', 'q', 'S', 'u':
		v, err := m.unsigned(in, false)
		if err != nil {
			return err
		}
		return store(f.intField(in.Field()), in, v)
	case 'y':
		v, err := m.signed(in, false)
		if err != nil {
			return err
		}
		return store(&f.Year2, in, v)
	case 'Y':
		v, err := m.signed(in, true)
		if err != nil {
			return err
		}
		return store(&f.Year, in, v)
	case 'f':
		v, err := m.fraction(in)
		if err != nil {
			return err
		}
		return store(&f.Microsecond, in, v)
	case 'z':
		v, err := m.offset(in)
		if err != nil {
			return err
		}
		return store(&f.ZoneOffset, in, v)
	case 'Z':
		v, err := m.zoneAbbr(in)
		if err != nil {
			return err
		}
		return store(&f.ZoneAbbr, in, v)
	case '%':
		if m.rest[0] != '%' {
			return &ParseError{Kind: ExpectedExact, Modifier: in.String(), Expected: "%", Got: m.rest}
		}
		m.rest = m.rest[1:]
		return nil
	}
	return &FormatStringError{Kind: InvalidModifier, Modifier: in.String()}
}

func (f *Fields) intField(field Field) *Optional[int] {
	switch field {
	case FieldDay:
		return &f.Day
	case FieldMonth:
		return &f.Month
	case FieldHour:
		return &f.Hour
	case FieldHour12:
		return &f.Hour12
	case FieldDayOfYear:
		return &f.DayOfYear
	case FieldMinute:
		return &f.Minute
	case FieldQuarter:
		return &f.Quarter
	case FieldSecond:
		return &f.Second
	case FieldDayOfWeek:
		return &f.DayOfWeek
	}
	panic("strptime: no integer field " + field.String())
}

// names returns the list a name modifier matches against.
func (o *options) names(c byte) []string {
	switch c {
	case 'a':
		return o.abbrDaysOfWeek
	case 'A':
		return o.daysOfWeek
	case 'b':
		return o.abbrMonths
	case 'B':
		return o.months
	case 'p':
		return []string{strings.ToUpper(o.amPm[0]), strings.ToUpper(o.amPm[1])}
	}
	return o.amPm[:]
}

// expand matches the preferred format of a shorthand in place.
func (m *matcher) expand(s shorthand, in Instruction) error {
	if m.opts.cyclic(s) {
		return &OptionError{Kind: CycleOption, Key: shorthandKeys[s], Modifier: in.String()}
	}
	p := m.opts.preferred[s]
	if p.err != nil {
		return p.err
	}
	return m.run(p.format.instructions)
}

// cyclic reports whether expanding s can lead back to s.
func (o *options) cyclic(s shorthand) bool {
	var seen [numShorthands]bool
	var walk func(shorthand) bool
	walk = func(cur shorthand) bool {
		p := o.preferred[cur]
		if p.err != nil {
			return false
		}
		for _, in := range p.format.instructions {
			next, ok := shorthandOf(in.Modifier)
			if !ok {
				continue
			}
			if next == s {
				return true
			}
			if !seen[next] {
				seen[next] = true
				if walk(next) {
					return true
				}
			}
		}
		return false
	}
	return walk(s)
}

// skipPadding drops leading padding characters, at most Width of them
// when the width is fixed.
func (m *matcher) skipPadding(in Instruction) string {
	s := m.rest
	if in.Padding == NoPadding {
		return s
	}
	i := 0
	for i < len(s) && s[i] == byte(in.Padding) && (in.Width == 0 || i < in.Width) {
		i++
	}
	return s[i:]
}

// name matches the first entry of names the input starts with and returns
// its 1-based position.
func (m *matcher) name(in Instruction, names []string) (int, error) {
	s := m.skipPadding(in)
	for i, name := range names {
		if strings.HasPrefix(s, name) {
			m.rest = s[len(name):]
			return i + 1, nil
		}
	}
	return 0, &ParseError{Kind: InvalidString, Modifier: in.String(), Got: s}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// unsigned reads a decimal number. Without padding, or with a width of 0,
// the field takes every leading digit. Otherwise it spans at most Width
// positions, padding characters first; exact fields need Width digits.
func (m *matcher) unsigned(in Instruction, exact bool) (int, error) {
	s := m.rest
	i, digits := 0, 0
	if in.Padding == NoPadding || in.Width == 0 {
		if in.Padding != NoPadding {
			for i < len(s) && s[i] == byte(in.Padding) && !isDigit(s[i]) {
				i++
			}
		}
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	} else {
	positions:
		for i < len(s) && i < in.Width {
			switch c := s[i]; {
			case isDigit(c):
				digits++
			case digits == 0 && c == byte(in.Padding):
			default:
				break positions
			}
			i++
		}
		if exact && digits > 0 && digits < in.Width {
			return 0, &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: s}
		}
	}
	if digits == 0 {
		return 0, &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: s}
	}
	v, err := strconv.Atoi(s[i-digits : i])
	if err != nil {
		return 0, &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: s}
	}
	m.rest = s[i:]
	return v, nil
}

func (m *matcher) signed(in Instruction, exact bool) (int, error) {
	if strings.HasPrefix(m.rest, "-") {
		m.rest = m.rest[1:]
		v, err := m.unsigned(in, exact)
		return -v, err
	}
	return m.unsigned(in, exact)
}

func (m *matcher) fraction(in Instruction) (Fraction, error) {
	s := m.rest
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return Fraction{}, &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: s}
	}
	v, err := strconv.Atoi(s[:i])
	if err != nil {
		return Fraction{}, &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: s}
	}
	m.rest = s[i:]
	return Fraction{Value: v, Digits: i}, nil
}

// maxOffsetHours bounds the hour part of a %z offset.
const maxOffsetHours = 99

// offset reads a mandatory sign and an hhmm number and returns seconds.
// Minutes have to be below 60 and hours at most maxOffsetHours.
func (m *matcher) offset(in Instruction) (int, error) {
	sign := 1
	switch m.rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: m.rest}
	}
	m.rest = m.rest[1:]
	digits := m.rest
	v, err := m.unsigned(in, true)
	if err != nil {
		return 0, err
	}
	hours, minutes := v/100, v%100
	if minutes >= 60 || hours > maxOffsetHours {
		return 0, &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: digits}
	}
	return sign * (hours*3600 + minutes*60), nil
}

func (m *matcher) zoneAbbr(in Instruction) (string, error) {
	s := m.skipPadding(in)
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return "", &ParseError{Kind: InvalidString, Modifier: in.String(), Got: s}
	}
	m.rest = s[i:]
	return s[:i], nil
}
