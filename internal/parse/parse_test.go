package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestHeight(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"6-3", ptr(75)},
		{"5-11", ptr(71)},
		{" 7-0 ", ptr(84)},
		{"0-0", ptr(0)},
		{"6'3\"", nil},
		{"6-", nil},
		{"-3", nil},
		{"6-3-1", nil},
		{"", nil},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Height(tc.in))
		})
	}
}

func TestHomeAway(t *testing.T) {
	cases := []struct {
		in       string
		home     bool
		opponent string
	}{
		{"@ Boston", false, "Boston"},
		{"@Boston", false, "Boston"},
		{"at   New York", false, "New York"},
		{"AT Tampa Bay", false, "Tampa Bay"},
		{"vs. Toronto", true, "Toronto"},
		{"vs Toronto", true, "Toronto"},
		{"Atlanta", true, "Atlanta"},
		{"Toronto", true, "Toronto"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.home, IsHomeGame(tc.in))
			assert.Equal(t, tc.opponent, StripOpponent(tc.in))
		})
	}
}

func TestResult(t *testing.T) {
	cases := []struct {
		in   string
		want *Outcome
	}{
		{"W 23-17", ptr(Win)},
		{"l 2-5", ptr(Loss)},
		{"T 3-3", ptr(Tie)},
		{"W, 4-1", ptr(Win)},
		{"OTL 2-3", ptr(Loss)},
		{"7:05 PM", nil},
		{"", nil},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Result(tc.in))
		})
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, []int{23, 17}, Score("W 23-17"))
	assert.Equal(t, []int{4, 1}, Score("4-1"))
	assert.Equal(t, []int{2, 3}, Score("L 2-3 "))
	assert.Nil(t, Score("W 2-3 OT"))
	assert.Nil(t, Score("Postponed"))
	assert.Nil(t, Score(""))
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, ptr(12), Int(" 12 "))
	assert.Nil(t, Int("12a"))
	assert.Equal(t, 7, IntOr("-", 7))
	assert.Equal(t, ptr(0.625), Float(".625"))
	assert.Equal(t, 0.0, FloatOr("--", 0))
	assert.Equal(t, 1250000, Digits("$1,250,000"))
	assert.Equal(t, 0, Digits("n/a"))
	assert.Nil(t, Str("  "))
	assert.Equal(t, ptr("x"), Str(" x "))
	assert.Equal(t, ptr(0), Experience("R"))
	assert.Equal(t, ptr(4), Experience("4"))
}

func TestNetworks(t *testing.T) {
	assert.Equal(t, []string{"NESN", "ESPN"}, Networks("NESN/ESPN"))
	assert.Equal(t, []string{"TBS"}, Networks(" TBS "))
	assert.Nil(t, Networks(""))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "boston_red_sox", Slugify("Boston Red Sox", "_"))
	assert.Equal(t, "montreal-canadiens", Slugify("Montréal Canadiens", "-"))
	assert.Equal(t, "al_east", DivisionLabel("AL East Division"))
	assert.Equal(t, "afc_north", DivisionLabel("AFC North"))
	assert.Equal(t, "eastern", DivisionLabel("Eastern Conference"))
	assert.Equal(t, "american", DivisionLabel("American League"))
	assert.Equal(t, "atlantic", StandingsDivisionLabel("Atlantic Division"))
}

func TestMonthRange(t *testing.T) {
	assert.Equal(t, []int{9, 10, 11, 12, 1, 2, 3, 4, 5}, MonthRange(9, 6))
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9, 10}, MonthRange(2, 11))
	assert.Empty(t, MonthRange(4, 4))
	assert.Equal(t, 12, MonthNumber(12))
	assert.Equal(t, 12, MonthNumber(24))
	assert.Equal(t, 1, MonthNumber(13))
	assert.Equal(t, "04", PadInt(4))
	assert.Equal(t, "11", PadInt(11))
}

func TestMonthRangeCoversEveryMonthOnce(t *testing.T) {
	for from := 1; from <= 12; from++ {
		for to := 1; to <= 12; to++ {
			seen := map[int]bool{}
			for _, m := range MonthRange(from, to) {
				require.True(t, m >= 1 && m <= 12, "month %d out of range", m)
				require.False(t, seen[m], "month %d repeated for %d..%d", m, from, to)
				seen[m] = true
			}
		}
	}
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "2 Apr 2013 7:05 PM", DateString("2", 4, 2013, "7:05 PM"))
	assert.Equal(t, "9/8 2013", DateString("9/8", 0, 2013, ""))
}

func TestTimestamp(t *testing.T) {
	unix := func(y int, m time.Month, d, h, min int) *int64 {
		v := time.Date(y, m, d, h, min, 0, 0, time.UTC).Unix()
		return &v
	}
	cases := []struct {
		in   string
		want *int64
	}{
		{"2 Apr 2013 7:05 PM", unix(2013, time.April, 2, 19, 5)},
		{"Tue 2 Apr 2013 7:05pm", unix(2013, time.April, 2, 19, 5)},
		{"2 Apr 2013", unix(2013, time.April, 2, 0, 0)},
		{"Sep 8 2013 1:00 PM ET", unix(2013, time.September, 8, 13, 0)},
		{"9/8 2013 1:00 PM", unix(2013, time.September, 8, 13, 0)},
		{"4/12/2013", unix(2013, time.April, 12, 0, 0)},
		{"2013-04-12", unix(2013, time.April, 12, 0, 0)},
		{"TBD", nil},
		{"", nil},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Timestamp(tc.in))
		})
	}

	assert.Equal(t, unix(2013, time.April, 12, 0, 0), TimestampInYear("4/12", 2013))
	assert.Equal(t, unix(2012, time.April, 12, 0, 0), TimestampInYear("4/12/2012", 2013))
}
