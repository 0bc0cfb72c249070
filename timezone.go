package strptime

import (
	"time"

	"github.com/araddon/strptime/calendar"
)

// ZoneResolver turns a naive reading plus the zone fields found in the
// input into an instant. abbr and offset (seconds east of UTC) are absent
// when the format did not match them.
type ZoneResolver func(naive calendar.NaiveDateTime, abbr Optional[string], offset Optional[int]) (time.Time, error)

// DefaultZoneResolver reads the naive value as UTC, shifted by the offset
// when there is one. The only abbreviation it knows is UTC.
func DefaultZoneResolver(naive calendar.NaiveDateTime, abbr Optional[string], offset Optional[int]) (time.Time, error) {
	t := naive.UTC()
	name, hasAbbr := abbr.Get()
	secs, hasOffset := offset.Get()
	switch {
	case !hasAbbr && hasOffset:
		return t.Add(-time.Duration(secs) * time.Second), nil
	case !hasAbbr:
		return t, nil
	case name == "UTC" && secs == 0:
		return t, nil
	}
	return time.Time{}, &ValidationError{Kind: UnknownTimezoneAbbr, Abbr: name}
}

// AbbreviationTable returns a resolver that knows the given abbreviations,
// each mapped to its offset in seconds east of UTC. An explicit offset in
// the input has to agree with the table. Unlisted abbreviations fall back
// to DefaultZoneResolver.
func AbbreviationTable(offsets map[string]int) ZoneResolver {
	table := make(map[string]int, len(offsets))
	for k, v := range offsets {
		table[k] = v
	}
	return func(naive calendar.NaiveDateTime, abbr Optional[string], offset Optional[int]) (time.Time, error) {
		name, ok := abbr.Get()
		if !ok {
			return DefaultZoneResolver(naive, abbr, offset)
		}
		secs, known := table[name]
		if !known {
			return DefaultZoneResolver(naive, abbr, offset)
		}
		if v, ok := offset.Get(); ok && v != secs {
			return time.Time{}, &ValidationError{Kind: InvalidZoneOffset, Abbr: name}
		}
		return naive.UTC().Add(-time.Duration(secs) * time.Second), nil
	}
}
