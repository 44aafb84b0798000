package volatility

import "time"

// DateLayout is the wire format for calendar dates. Zero-padded ISO
// dates compare lexicographically in chronological order, which the
// series assembler relies on.
const DateLayout = "2006-01-02"

// TimeRange names a look-back window for charting.
type TimeRange string

const (
	Range1M  TimeRange = "1M"
	Range1Y  TimeRange = "1Y"
	Range3Y  TimeRange = "3Y"
	Range5Y  TimeRange = "5Y"
	Range10Y TimeRange = "10Y"
)

// TimeRanges returns the supported ranges in display order.
func TimeRanges() []TimeRange {
	return []TimeRange{Range1M, Range1Y, Range3Y, Range5Y, Range10Y}
}

// ParseTimeRange validates a raw range string.
func ParseTimeRange(raw string) (TimeRange, error) {
	switch TimeRange(raw) {
	case Range1M, Range1Y, Range3Y, Range5Y, Range10Y:
		return TimeRange(raw), nil
	}
	return "", &ValidationError{Field: "range", Reason: "must be one of 1M, 1Y, 3Y, 5Y, 10Y"}
}

// ResolveFromDate computes the inclusive lower bound of the query
// window anchored at anchorDate (the inclusive upper bound). Offsets
// use calendar arithmetic; when the target month has no such day
// (e.g. Mar 31 minus one month) the result clamps to the last day of
// the target month rather than spilling into the next one.
func (r TimeRange) ResolveFromDate(anchorDate string) (string, error) {
	anchor, err := time.Parse(DateLayout, anchorDate)
	if err != nil {
		return "", &ValidationError{Field: "anchorDate", Reason: "must be a YYYY-MM-DD calendar date"}
	}

	var years, months int
	switch r {
	case Range1M:
		months = 1
	case Range1Y:
		years = 1
	case Range3Y:
		years = 3
	case Range5Y:
		years = 5
	case Range10Y:
		years = 10
	default:
		return "", &ValidationError{Field: "range", Reason: "must be one of 1M, 1Y, 3Y, 5Y, 10Y"}
	}

	return subtractCalendar(anchor, years, months).Format(DateLayout), nil
}

// subtractCalendar walks back by whole years/months with day clamping.
// time.AddDate normalises Feb 31 forward into March, which is the
// wrong side of the boundary for a look-back window.
func subtractCalendar(t time.Time, years, months int) time.Time {
	year := t.Year() - years
	month := int(t.Month()) - months
	for month < 1 {
		month += 12
		year--
	}

	day := t.Day()
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
