package strptime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/araddon/strptime/calendar"
)

// Config is the declarative form of the parse options, as read from a YAML
// or JSON document. Absent keys keep their defaults.
type Config struct {
	Calendar                  string            `yaml:"calendar" json:"calendar" validate:"omitempty,oneof=iso"`
	PreferredDate             *string           `yaml:"preferred_date" json:"preferred_date"`
	PreferredTime             *string           `yaml:"preferred_time" json:"preferred_time"`
	PreferredDateTime         *string           `yaml:"preferred_datetime" json:"preferred_datetime"`
	MonthNames                []string          `yaml:"month_names" json:"month_names" validate:"omitempty,len=12,dive,required"`
	AbbreviatedMonthNames     []string          `yaml:"abbreviated_month_names" json:"abbreviated_month_names" validate:"omitempty,len=12,dive,required"`
	DayOfWeekNames            []string          `yaml:"day_of_week_names" json:"day_of_week_names" validate:"omitempty,len=7,dive,required"`
	AbbreviatedDayOfWeekNames []string          `yaml:"abbreviated_day_of_week_names" json:"abbreviated_day_of_week_names" validate:"omitempty,len=7,dive,required"`
	AmPmNames                 []string          `yaml:"am_pm_names" json:"am_pm_names" validate:"omitempty,len=2,dive,required"`
	PivotYear                 *int              `yaml:"pivot_year" json:"pivot_year" validate:"omitempty,min=0,max=99"`
	// TimeZone maps zone abbreviations to offsets written as +hhmm.
	TimeZone map[string]string `yaml:"time_zone" json:"time_zone" validate:"omitempty,dive,keys,required,endkeys,required"`
}

var configKeys = map[string]bool{
	"calendar":                      true,
	"preferred_date":                true,
	"preferred_time":                true,
	"preferred_datetime":            true,
	"month_names":                   true,
	"abbreviated_month_names":       true,
	"day_of_week_names":             true,
	"abbreviated_day_of_week_names": true,
	"am_pm_names":                   true,
	"pivot_year":                    true,
	"time_zone":                     true,
}

var offsetFormat = MustCompile("%z")

func checkKeys[V any](m map[string]V) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !configKeys[k] {
			return &OptionError{Kind: UnknownOption, Key: k}
		}
	}
	return nil
}

// LoadConfigYAML decodes and validates a YAML options document.
func LoadConfigYAML(data []byte) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &OptionError{Kind: InvalidOption, Err: errors.New(yaml.FormatError(err, false, true))}
	}
	if err := checkKeys(raw); err != nil {
		return nil, err
	}
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Validator(validate), yaml.Strict())
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, &OptionError{Kind: InvalidOption, Err: errors.New(yaml.FormatError(err, false, true))}
	}
	return &c, nil
}

// LoadConfigJSON decodes and validates a JSON options document.
func LoadConfigJSON(data []byte) (*Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &OptionError{Kind: InvalidOption, Err: err}
	}
	if err := checkKeys(raw); err != nil {
		return nil, err
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &OptionError{Kind: InvalidOption, Err: err}
	}
	return &c, c.validate()
}

// ConfigFromMap builds a Config from option keys and values, as a caller
// holding options in a generic map would have them.
func ConfigFromMap(m map[string]any) (*Config, error) {
	if err := checkKeys(m); err != nil {
		return nil, err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, &OptionError{Kind: InvalidOption, Err: err}
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &OptionError{Kind: InvalidOption, Err: err}
	}
	return &c, c.validate()
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return &OptionError{Kind: InvalidOption, Err: err}
	}
	return nil
}

// Options converts the document into parse options.
func (c *Config) Options() ([]Option, error) {
	var opts []Option
	if c.Calendar != "" {
		cal, ok := calendar.Lookup(c.Calendar)
		if !ok {
			return nil, &OptionError{Kind: InvalidOption, Key: "calendar", Err: fmt.Errorf("no calendar %q", c.Calendar)}
		}
		opts = append(opts, WithCalendar(cal))
	}
	if c.PreferredDate != nil {
		opts = append(opts, WithPreferredDate(*c.PreferredDate))
	}
	if c.PreferredTime != nil {
		opts = append(opts, WithPreferredTime(*c.PreferredTime))
	}
	if c.PreferredDateTime != nil {
		opts = append(opts, WithPreferredDateTime(*c.PreferredDateTime))
	}
	if c.MonthNames != nil {
		opts = append(opts, WithMonthNames(c.MonthNames...))
	}
	if c.AbbreviatedMonthNames != nil {
		opts = append(opts, WithAbbreviatedMonthNames(c.AbbreviatedMonthNames...))
	}
	if c.DayOfWeekNames != nil {
		opts = append(opts, WithDayOfWeekNames(c.DayOfWeekNames...))
	}
	if c.AbbreviatedDayOfWeekNames != nil {
		opts = append(opts, WithAbbreviatedDayOfWeekNames(c.AbbreviatedDayOfWeekNames...))
	}
	if c.AmPmNames != nil {
		if len(c.AmPmNames) != 2 {
			return nil, &OptionError{Kind: InvalidOption, Key: "am_pm_names"}
		}
		opts = append(opts, WithAmPmNames(c.AmPmNames[0], c.AmPmNames[1]))
	}
	if c.PivotYear != nil {
		opts = append(opts, WithPivotYear(*c.PivotYear))
	}
	if len(c.TimeZone) > 0 {
		offsets := make(map[string]int, len(c.TimeZone))
		for abbr, text := range c.TimeZone {
			fields, err := offsetFormat.Parse(text)
			if err != nil {
				return nil, &OptionError{Kind: InvalidOption, Key: "time_zone", Err: err}
			}
			offsets[abbr] = fields.ZoneOffset.Value
		}
		opts = append(opts, WithZoneResolver(AbbreviationTable(offsets)))
	}
	return opts, nil
}
