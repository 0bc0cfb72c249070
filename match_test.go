package strptime

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

type fieldsTest struct {
	in, format string
	opts       []Option
	out        Fields
}

var testFields = []fieldsTest{
	{in: "2024-03-05", format: "%Y-%m-%d", out: Fields{Year: Some(2024), Month: Some(3), Day: Some(5)}},
	{in: "", format: "", out: Fields{}},
	{in: "Wednesday, Wed", format: "%A, %a", out: Fields{DayOfWeek: Some(3)}},
	{in: "Wednesday 3", format: "%A %u", out: Fields{DayOfWeek: Some(3)}},
	{in: "May 07", format: "%B %d", out: Fields{Month: Some(5), Day: Some(7)}},
	{in: "Mar 3 03", format: "%b %-m %m", out: Fields{Month: Some(3)}},
	{in: "+0130", format: "%z", out: Fields{ZoneOffset: Some(5400)}},
	{in: "-0130", format: "%z", out: Fields{ZoneOffset: Some(-5400)}},
	{in: "+0000", format: "%z", out: Fields{ZoneOffset: Some(0)}},
	{in: "+5", format: "%-z", out: Fields{ZoneOffset: Some(300)}},
	{in: " 5", format: "%_d", out: Fields{Day: Some(5)}},
	{in: "5/", format: "%d/", out: Fields{Day: Some(5)}},
	{in: "123", format: "%-d", out: Fields{Day: Some(123)}},
	{in: "07", format: "%-d", out: Fields{Day: Some(7)}},
	{in: "2024", format: "%_4Y", out: Fields{Year: Some(2024)}},
	{in: "+9959", format: "%z", out: Fields{ZoneOffset: Some(359940)}},
	{in: "+130", format: "%-z", out: Fields{ZoneOffset: Some(5400)}},
	{in: "-0044", format: "%Y", out: Fields{Year: Some(-44)}},
	{in: "12345", format: "%-Y", out: Fields{Year: Some(12345)}},
	{in: "-5", format: "%y", opts: []Option{WithPivotYear(50)}, out: Fields{Year2: Some(-5)}},
	{in: "18", format: "%y", opts: []Option{WithPivotYear(50)}, out: Fields{Year2: Some(18)}},
	{in: "123", format: "%f", out: Fields{Microsecond: Some(Fraction{Value: 123, Digits: 3})}},
	{in: "000120", format: "%f", out: Fields{Microsecond: Some(Fraction{Value: 120, Digits: 6})}},
	{in: "CEST", format: "%Z", out: Fields{ZoneAbbr: Some("CEST")}},
	{in: "  UTC", format: "%Z", out: Fields{ZoneAbbr: Some("UTC")}},
	{in: "PM", format: "%p", out: Fields{AmPm: Some(PM)}},
	{in: "am", format: "%P", out: Fields{AmPm: Some(AM)}},
	{in: "  Mon", format: "%a", out: Fields{DayOfWeek: Some(1)}},
	{in: "100%", format: "%j%%", out: Fields{DayOfYear: Some(100)}},
	{in: "4", format: "%q", out: Fields{Quarter: Some(4)}},
	{in: "10:30 10", format: "%H:%M %H", out: Fields{Hour: Some(10), Minute: Some(30)}},
	{in: "07:08:09", format: "%I:%M:%S", out: Fields{Hour12: Some(7), Minute: Some(8), Second: Some(9)}},
	{
		in: "2024-03-05 10:11:12", format: "%c",
		out: Fields{Year: Some(2024), Month: Some(3), Day: Some(5), Hour: Some(10), Minute: Some(11), Second: Some(12)},
	},
	{
		in: "05/03/2024 10h11", format: "%x %X",
		opts: []Option{WithPreferredDate("%d/%m/%Y"), WithPreferredTime("%Hh%M")},
		out:  Fields{Year: Some(2024), Month: Some(3), Day: Some(5), Hour: Some(10), Minute: Some(11)},
	},
	{
		in: "1. März 2024", format: "%-d. %B %Y",
		opts: []Option{WithMonthNames("Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember")},
		out: Fields{Year: Some(2024), Month: Some(3), Day: Some(1)},
	},
	{
		in: "9 AM", format: "%-I %p",
		opts: []Option{WithAmPmNames("am", "pm")},
		out:  Fields{Hour12: Some(9), AmPm: Some(AM)},
	},
	{
		in: "9 vorm.", format: "%-I %P",
		opts: []Option{WithAmPmNames("vorm.", "nachm.")},
		out:  Fields{Hour12: Some(9), AmPm: Some(AM)},
	},
}

func TestParseFields(t *testing.T) {
	for _, th := range testFields {
		got, err := Parse(th.in, th.format, th.opts...)
		require.NoError(t, err, "%q with %q", th.in, th.format)
		if diff := cmp.Diff(th.out, got); diff != "" {
			t.Errorf("Parse(%q, %q) mismatch (-want +got):\n%s", th.in, th.format, diff)
		}
	}
}

type parseErrTest struct {
	in, format string
	opts       []Option
	kind       ParseErrorKind
	modifier   string
	expected   any
	got        any
}

var testParseErrors = []parseErrTest{
	{in: "Wednesday, Fri", format: "%A, %a", kind: Conflict, modifier: "%a", expected: 3, got: 5},
	{in: "10:30 11", format: "%H:%M %H", kind: Conflict, modifier: "%H", expected: 10, got: 11},
	{in: "am pm", format: "%P %P", kind: Conflict, modifier: "%P", expected: AM, got: PM},
	{in: "CET UTC", format: "%Z %Z", kind: Conflict, modifier: "%Z", expected: "CET", got: "UTC"},
	{in: "2024/03", format: "%Y-%m", kind: ExpectedExact, expected: "-", got: "/03"},
	{in: "2024", format: "%Y-%m", kind: InvalidInput, expected: "-", got: ""},
	{in: "2024-03-", format: "%Y-%m-%d", kind: InvalidInput, modifier: "%d", got: ""},
	{in: "2024-03-05x", format: "%Y-%m-%d", kind: InvalidInput, got: "x"},
	{in: "123", format: "%H", kind: InvalidInput, got: "3"},
	{in: "Sept", format: "%b", kind: InvalidInput, got: "t"},
	{in: "ab", format: "%d", kind: InvalidInteger, modifier: "%d", got: "ab"},
	{in: "202", format: "%Y", kind: InvalidInteger, modifier: "%Y", got: "202"},
	{in: "0130", format: "%z", kind: InvalidInteger, modifier: "%z", got: "0130"},
	{in: "+013", format: "%z", kind: InvalidInteger, modifier: "%z", got: "013"},
	{in: "+0199", format: "%z", kind: InvalidInteger, modifier: "%z", got: "0199"},
	{in: "-0060", format: "%z", kind: InvalidInteger, modifier: "%z", got: "0060"},
	{in: "+9999999999", format: "%-z", kind: InvalidInteger, modifier: "%-z", got: "9999999999"},
	{in: "+10000", format: "%-z", kind: InvalidInteger, modifier: "%-z", got: "10000"},
	{in: "  99", format: "%_4Y", kind: InvalidInteger, modifier: "%_Y", got: "  99"},
	{in: " 202", format: "%_Y", kind: InvalidInteger, modifier: "%_Y", got: " 202"},
	{in: ".5", format: "%f", kind: InvalidInteger, modifier: "%f", got: ".5"},
	{in: "   ", format: "%_d", kind: InvalidInteger, modifier: "%_d", got: "   "},
	{in: "cest", format: "%Z", kind: InvalidString, modifier: "%Z", got: "cest"},
	{in: "PM", format: "%P", kind: InvalidString, modifier: "%P", got: "PM"},
	{in: "monday", format: "%A", kind: InvalidString, modifier: "%A", got: "monday"},
	{in: "x", format: "%%", kind: ExpectedExact, modifier: "%%", expected: "%", got: "x"},
}

func TestParseErrors(t *testing.T) {
	for _, th := range testParseErrors {
		_, err := Parse(th.in, th.format, th.opts...)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "%q with %q: %v", th.in, th.format, err)
		assert.Equal(t, th.kind, pe.Kind, "%q with %q", th.in, th.format)
		assert.Equal(t, th.modifier, pe.Modifier, "%q with %q", th.in, th.format)
		assert.Equal(t, th.expected, pe.Expected, "%q with %q", th.in, th.format)
		assert.Equal(t, th.got, pe.Got, "%q with %q", th.in, th.format)
		assert.NotEmpty(t, pe.Error())
	}
}

func TestParseMissingPivotYear(t *testing.T) {
	for _, th := range []struct {
		in, format string
		opts       []Option
	}{
		{in: "18", format: "%y"},
		// the check does not depend on the input
		{in: "not a date", format: "%y"},
		{in: "18", format: "%x", opts: []Option{WithPreferredDate("%y")}},
	} {
		_, err := Parse(th.in, th.format, th.opts...)
		var oe *OptionError
		require.True(t, errors.As(err, &oe), "%q: %v", th.format, err)
		assert.Equal(t, MissingOption, oe.Kind)
		assert.Equal(t, "pivot_year", oe.Key)
	}
}

func TestParseShorthandCycle(t *testing.T) {
	cases := []struct {
		in, format string
		opts       []Option
		key, mod   string
	}{
		{"2024/2024", "%x", []Option{WithPreferredDate("%Y/%x")}, "preferred_date", "%x"},
		{"", "%x", []Option{WithPreferredDate("%Y/%x")}, "preferred_date", "%x"},
		{"10", "%X", []Option{WithPreferredTime("%X")}, "preferred_time", "%X"},
		{"x", "%x", []Option{WithPreferredDate("%c"), WithPreferredDateTime("%x %X")}, "preferred_date", "%x"},
		{"2024 x", "%Y %c", []Option{WithPreferredDate("%c"), WithPreferredDateTime("%x %X")}, "preferred_datetime", "%c"},
	}
	for _, c := range cases {
		_, err := Parse(c.in, c.format, c.opts...)
		var oe *OptionError
		require.True(t, errors.As(err, &oe), "%q: %v", c.format, err)
		assert.Equal(t, CycleOption, oe.Kind, c.format)
		assert.Equal(t, c.key, oe.Key, c.format)
		assert.Equal(t, c.mod, oe.Modifier, c.format)
	}

	// a cyclic shorthand does not matter to formats not using it
	fields, err := Parse("2024", "%Y", WithPreferredDate("%Y/%x"))
	require.NoError(t, err)
	assert.Equal(t, Some(2024), fields.Year)
}

func TestParseInvalidPreferredFormat(t *testing.T) {
	_, err := Parse("10", "%X", WithPreferredTime("%H%Q"))
	var fe *FormatStringError
	require.True(t, errors.As(err, &fe), "%v", err)
	assert.Equal(t, "%Q", fe.Modifier)

	_, err = Parse("10", "%H", WithPreferredTime("%H%Q"))
	assert.NoError(t, err)
}

func TestParseInvalidOptions(t *testing.T) {
	cases := []struct {
		opt Option
		key string
	}{
		{WithPivotYear(100), "pivot_year"},
		{WithPivotYear(-1), "pivot_year"},
		{WithMonthNames("Jan"), "month_names"},
		{WithAbbreviatedMonthNames(), "abbreviated_month_names"},
		{WithDayOfWeekNames("a", "b", "c", "d", "e", "f", ""), "day_of_week_names"},
		{WithAbbreviatedDayOfWeekNames("a", "b"), "abbreviated_day_of_week_names"},
		{WithAmPmNames("", "pm"), "am_pm_names"},
		{WithCalendar(nil), "calendar"},
		{WithZoneResolver(nil), "time_zone"},
	}
	for _, c := range cases {
		_, err := Parse("", "", c.opt)
		var oe *OptionError
		require.True(t, errors.As(err, &oe), "%s: %v", c.key, err)
		assert.Equal(t, InvalidOption, oe.Kind, c.key)
		assert.Equal(t, c.key, oe.Key)
	}
}

func TestParseCompiledReuse(t *testing.T) {
	f := MustCompile("%d.%m.%Y")
	for _, in := range []string{"01.02.2003", "31.12.1999", "05.05.2005"} {
		_, err := f.Parse(in)
		assert.NoError(t, err, in)
	}
	fields, err := f.Parse("01.02.2003")
	require.NoError(t, err)
	assert.Equal(t, Fields{Year: Some(2003), Month: Some(2), Day: Some(1)}, fields)
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, Some(12), MustParse("12", "%H").Hour)
	assert.Panics(t, func() { MustParse("xx", "%H") })
}

// One compiled Format serves goroutines that each carry their own
// preferred date; no call may leak into another or into the defaults.
func TestFormatConcurrentOptions(t *testing.T) {
	f := MustCompile("%x %H")
	preferred := []struct {
		format, in string
	}{
		{"%d.%m.%Y", "05.03.2024 10"},
		{"%Y/%m/%d", "2024/03/05 10"},
		{"%m-%d-%Y", "03-05-2024 10"},
		{"", "2024-03-05 10"},
	}
	want := Fields{Year: Some(2024), Month: Some(3), Day: Some(5), Hour: Some(10)}

	var eg errgroup.Group
	for i := 0; i < 64; i++ {
		p := preferred[i%len(preferred)]
		eg.Go(func() error {
			var opts []Option
			if p.format != "" {
				opts = append(opts, WithPreferredDate(p.format))
			}
			for j := 0; j < 50; j++ {
				got, err := f.Parse(p.in, opts...)
				if err != nil {
					return fmt.Errorf("%q with preferred date %q: %w", p.in, p.format, err)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					return fmt.Errorf("%q with preferred date %q (-want +got):\n%s", p.in, p.format, diff)
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	assert.Equal(t, DefaultPreferredDate, defaultPreferred[shorthandDate].format.Source())
	assert.NoError(t, defaultPreferred[shorthandDate].err)
	fields, err := f.Parse("2024-03-05 10")
	require.NoError(t, err)
	assert.Equal(t, want, fields)
	_, err = f.Parse("05.03.2024 10")
	assert.Error(t, err)
}

func TestParseLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	_, err := Parse("2024-03-05", "%Y-%m-%d", WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Len())

	_, err = Parse("2024-13", "%Y/%m", WithLogger(logger))
	require.Error(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "strptime: parse failed", entry.Message)
	assert.Equal(t, "2024-13", entry.ContextMap()["input"])
	assert.Equal(t, "%Y/%m", entry.ContextMap()["format"])
}

func TestFieldsString(t *testing.T) {
	fields := MustParse("2024-03-05 07 pm +0100 .25", "%Y-%m-%d %I %P %z .%f")
	assert.Equal(t, "year=2024 month=3 day=5 hour_12=7 am_pm=pm microsecond=25/2 zone_offset=3600", fields.String())
}

func TestFieldsJSON(t *testing.T) {
	fields := MustParse("2024-03-05 pm CET .5", "%Y-%m-%d %P %Z .%f")
	data, err := fields.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2024,"month":3,"day":5,"am_pm":"pm","zone_abbr":"CET","microsecond":{"value":5,"digits":1}}`, string(data))
}
