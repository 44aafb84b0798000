package volatility

import "testing"

func TestResolveFromDate(t *testing.T) {
	cases := []struct {
		r      TimeRange
		anchor string
		want   string
	}{
		{Range1Y, "2024-03-15", "2023-03-15"},
		{Range3Y, "2024-03-15", "2021-03-15"},
		{Range5Y, "2024-03-15", "2019-03-15"},
		{Range10Y, "2024-03-15", "2014-03-15"},
		{Range1M, "2024-02-15", "2024-01-15"},
		// Month subtraction across a year boundary.
		{Range1M, "2024-01-31", "2023-12-31"},
		// Target month is shorter: clamp to its last day.
		{Range1M, "2024-03-31", "2024-02-29"},
		{Range1M, "2023-03-31", "2023-02-28"},
		// Leap day minus a year clamps too.
		{Range1Y, "2024-02-29", "2023-02-28"},
	}

	for _, tc := range cases {
		got, err := tc.r.ResolveFromDate(tc.anchor)
		if err != nil {
			t.Fatalf("%s from %s: %v", tc.r, tc.anchor, err)
		}
		if got != tc.want {
			t.Fatalf("%s from %s: expected %s, got %s", tc.r, tc.anchor, tc.want, got)
		}
	}
}

func TestResolveFromDateBadAnchor(t *testing.T) {
	for _, anchor := range []string{"", "2024-13-01", "2024/01/01", "yesterday"} {
		if _, err := Range1Y.ResolveFromDate(anchor); !IsValidation(err) {
			t.Fatalf("anchor %q: expected validation error, got %v", anchor, err)
		}
	}
}

func TestParseTimeRange(t *testing.T) {
	for _, r := range TimeRanges() {
		got, err := ParseTimeRange(string(r))
		if err != nil || got != r {
			t.Fatalf("ParseTimeRange(%s) = %s, %v", r, got, err)
		}
	}

	if _, err := ParseTimeRange("2W"); !IsValidation(err) {
		t.Fatalf("expected validation error for unknown range, got %v", err)
	}
}
