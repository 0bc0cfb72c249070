package strptime

// Field is the semantic field a modifier reads.
type Field int

const (
	FieldDayOfWeek Field = iota + 1
	FieldMonth
	FieldAmPm
	FieldDay
	FieldHour
	FieldHour12
	FieldDayOfYear
	FieldMinute
	FieldQuarter
	FieldSecond
	FieldMicrosecond
	FieldYear
	FieldYear2
	FieldZoneOffset
	FieldZoneAbbr
	FieldDate
	FieldTime
	FieldDateTime
	FieldPercent
)

var fieldNames = map[Field]string{
	FieldDayOfWeek:   "day_of_week",
	FieldMonth:       "month",
	FieldAmPm:        "am_pm",
	FieldDay:         "day",
	FieldHour:        "hour",
	FieldHour12:      "hour_12",
	FieldDayOfYear:   "day_of_year",
	FieldMinute:      "minute",
	FieldQuarter:     "quarter",
	FieldSecond:      "second",
	FieldMicrosecond: "microsecond",
	FieldYear:        "year",
	FieldYear2:       "year_2_digit",
	FieldZoneOffset:  "zone_offset",
	FieldZoneAbbr:    "zone_abbr",
	FieldDate:        "date",
	FieldTime:        "time",
	FieldDateTime:    "datetime",
	FieldPercent:     "percent",
}

func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return "unknown"
}

// Padding is the character filling a field on its left.
type Padding byte

const (
	// NoPadding makes a field variable width.
	NoPadding    Padding = 0
	SpacePadding Padding = ' '
	ZeroPadding  Padding = '0'
)

func (p Padding) flag() byte {
	switch p {
	case NoPadding:
		return '-'
	case SpacePadding:
		return '_'
	}
	return '0'
}

type modifier struct {
	field   Field
	padding Padding
	width   int
}

// Width 0 means variable.
var modifiers = map[byte]modifier{
	'a': {FieldDayOfWeek, SpacePadding, 0},
	'A': {FieldDayOfWeek, SpacePadding, 0},
	'b': {FieldMonth, SpacePadding, 0},
	'B': {FieldMonth, SpacePadding, 0},
	'p': {FieldAmPm, SpacePadding, 0},
	'P': {FieldAmPm, SpacePadding, 0},
	'c': {FieldDateTime, ZeroPadding, 0},
	'd': {FieldDay, ZeroPadding, 2},
	'f': {FieldMicrosecond, ZeroPadding, 0},
	'H': {FieldHour, ZeroPadding, 2},
	'I': {FieldHour12, ZeroPadding, 2},
	'j': {FieldDayOfYear, ZeroPadding, 3},
	'm': {FieldMonth, ZeroPadding, 2},
	'M': {FieldMinute, ZeroPadding, 2},
	'q': {FieldQuarter, ZeroPadding, 1},
	'S': {FieldSecond, ZeroPadding, 2},
	'u': {FieldDayOfWeek, ZeroPadding, 1},
	'x': {FieldDate, ZeroPadding, 0},
	'X': {FieldTime, ZeroPadding, 0},
	'y': {FieldYear2, ZeroPadding, 2},
	'Y': {FieldYear, ZeroPadding, 4},
	'z': {FieldZoneOffset, ZeroPadding, 4},
	'Z': {FieldZoneAbbr, SpacePadding, 0},
	'%': {FieldPercent, ZeroPadding, 0},
}

// shorthand indexes into the preferred format slots.
type shorthand int

const (
	shorthandDate shorthand = iota
	shorthandTime
	shorthandDateTime
	numShorthands
)

var shorthandKeys = [numShorthands]string{
	shorthandDate:     "preferred_date",
	shorthandTime:     "preferred_time",
	shorthandDateTime: "preferred_datetime",
}

func shorthandOf(c byte) (shorthand, bool) {
	switch c {
	case 'x':
		return shorthandDate, true
	case 'X':
		return shorthandTime, true
	case 'c':
		return shorthandDateTime, true
	}
	return 0, false
}
