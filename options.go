package strptime

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/araddon/strptime/calendar"
)

// Defaults for the preferred shorthand formats.
const (
	DefaultPreferredDate     = "%Y-%m-%d"
	DefaultPreferredTime     = "%H:%M:%S"
	DefaultPreferredDateTime = "%Y-%m-%d %H:%M:%S"
)

var (
	defaultMonthNames = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	defaultAbbreviatedMonthNames = []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	defaultDayOfWeekNames = []string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}
	defaultAbbreviatedDayOfWeekNames = []string{
		"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
	}
	defaultAmPmNames = [2]string{"am", "pm"}

	defaultPreferred = [numShorthands]preferredFormat{
		shorthandDate:     {format: MustCompile(DefaultPreferredDate)},
		shorthandTime:     {format: MustCompile(DefaultPreferredTime)},
		shorthandDateTime: {format: MustCompile(DefaultPreferredDateTime)},
	}

	validate = validator.New()
)

// preferredFormat is a shorthand expansion compiled when options are
// resolved. A compile error is kept and only reported when a format
// actually uses the shorthand.
type preferredFormat struct {
	format *Format
	err    error
}

type options struct {
	calendar       calendar.Calendar
	clock          calendar.Clock
	preferred      [numShorthands]preferredFormat
	months         []string
	abbrMonths     []string
	daysOfWeek     []string
	abbrDaysOfWeek []string
	amPm           [2]string
	pivotYear      Optional[int]
	zone           ZoneResolver
	logger         *zap.Logger
}

// Option overrides one setting of a single parse call.
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		calendar:       calendar.ISO,
		clock:          calendar.SystemClock,
		preferred:      defaultPreferred,
		months:         defaultMonthNames,
		abbrMonths:     defaultAbbreviatedMonthNames,
		daysOfWeek:     defaultDayOfWeekNames,
		abbrDaysOfWeek: defaultAbbreviatedDayOfWeekNames,
		amPm:           defaultAmPmNames,
		logger:         zap.NewNop(),
	}
}

func resolveOptions(opts []Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithCalendar selects the calendar values are built with.
func WithCalendar(c calendar.Calendar) Option {
	return func(o *options) error {
		if c == nil {
			return &OptionError{Kind: InvalidOption, Key: "calendar"}
		}
		o.calendar = c
		return nil
	}
}

// WithClock replaces the clock used to find the current century.
func WithClock(c calendar.Clock) Option {
	return func(o *options) error {
		if c == nil {
			return &OptionError{Kind: InvalidOption, Key: "clock"}
		}
		o.clock = c
		return nil
	}
}

func withPreferred(s shorthand, format string) Option {
	return func(o *options) error {
		f, err := Compile(format)
		o.preferred[s] = preferredFormat{format: f, err: err}
		return nil
	}
}

// WithPreferredDate sets the format %x expands to.
func WithPreferredDate(format string) Option { return withPreferred(shorthandDate, format) }

// WithPreferredTime sets the format %X expands to.
func WithPreferredTime(format string) Option { return withPreferred(shorthandTime, format) }

// WithPreferredDateTime sets the format %c expands to.
func WithPreferredDateTime(format string) Option {
	return withPreferred(shorthandDateTime, format)
}

func withNames(key string, n int, dst func(*options) *[]string, names []string) Option {
	return func(o *options) error {
		if err := validate.Var(names, "len="+strconv.Itoa(n)+",dive,required"); err != nil {
			return &OptionError{Kind: InvalidOption, Key: key, Err: err}
		}
		*dst(o) = append([]string(nil), names...)
		return nil
	}
}

// WithMonthNames sets the twelve names %B matches.
func WithMonthNames(names ...string) Option {
	return withNames("month_names", 12, func(o *options) *[]string { return &o.months }, names)
}

// WithAbbreviatedMonthNames sets the twelve names %b matches.
func WithAbbreviatedMonthNames(names ...string) Option {
	return withNames("abbreviated_month_names", 12, func(o *options) *[]string { return &o.abbrMonths }, names)
}

// WithDayOfWeekNames sets the seven names %A matches, Monday first.
func WithDayOfWeekNames(names ...string) Option {
	return withNames("day_of_week_names", 7, func(o *options) *[]string { return &o.daysOfWeek }, names)
}

// WithAbbreviatedDayOfWeekNames sets the seven names %a matches, Monday
// first.
func WithAbbreviatedDayOfWeekNames(names ...string) Option {
	return withNames("abbreviated_day_of_week_names", 7, func(o *options) *[]string { return &o.abbrDaysOfWeek }, names)
}

// WithAmPmNames sets the am and pm labels. %P matches them as given, %p
// upper-cased.
func WithAmPmNames(am, pm string) Option {
	return func(o *options) error {
		if err := validate.Var([]string{am, pm}, "dive,required"); err != nil {
			return &OptionError{Kind: InvalidOption, Key: "am_pm_names", Err: err}
		}
		o.amPm = [2]string{am, pm}
		return nil
	}
}

// WithPivotYear sets the two-digit year at or below which %y reads as the
// current century. It is required by formats using %y.
func WithPivotYear(year int) Option {
	return func(o *options) error {
		if err := validate.Var(year, "min=0,max=99"); err != nil {
			return &OptionError{Kind: InvalidOption, Key: "pivot_year", Err: err}
		}
		o.pivotYear = Some(year)
		return nil
	}
}

// WithZoneResolver replaces the default zone policy of ParseDateTime.
func WithZoneResolver(r ZoneResolver) Option {
	return func(o *options) error {
		if r == nil {
			return &OptionError{Kind: InvalidOption, Key: "time_zone"}
		}
		o.zone = r
		return nil
	}
}

// WithLogger makes failed parses log at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.logger = l
		}
		return nil
	}
}

// needsPivot reports whether matching f may reach %y, following
// shorthand expansions at most once each.
func (o *options) needsPivot(f *Format, seen *[numShorthands]bool) bool {
	if f.twoDigitYear {
		return true
	}
	for _, in := range f.instructions {
		s, ok := shorthandOf(in.Modifier)
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		if p := o.preferred[s]; p.err == nil && o.needsPivot(p.format, seen) {
			return true
		}
	}
	return false
}
