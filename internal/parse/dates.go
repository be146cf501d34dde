package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateString rebuilds a provider date from a schedule cell that only shows
// the day: day, then the month abbreviation when month is 1..12, then the
// year, then the GMT time token when present.
func DateString(day string, month, year int, zone string) string {
	parts := []string{strings.TrimSpace(day)}
	if month >= 1 && month <= 12 {
		parts = append(parts, time.Month(month).String()[:3])
	}
	parts = append(parts, strconv.Itoa(year))
	if zone = strings.TrimSpace(zone); zone != "" {
		parts = append(parts, zone)
	}
	return strings.Join(parts, " ")
}

var (
	weekdayRe = regexp.MustCompile(`(?i)^(mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)[a-z]*[.,]?\s+`)
	zoneRe    = regexp.MustCompile(`(?i)\s+(gmt|utc|et|est|edt|ct|cst|cdt|mt|mst|mdt|pt|pst|pdt)$`)
	meridRe   = regexp.MustCompile(`(?i)(\d)\s*([ap])\.?m\.?$`)
	yearRe    = regexp.MustCompile(`\b\d{4}\b`)
)

var layouts = []string{
	"2 Jan 2006 3:04 PM",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"Jan 2 2006 3:04 PM",
	"Jan 2 2006 15:04",
	"Jan 2 2006",
	"1/2 2006 3:04 PM",
	"1/2 2006",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"1/2/06",
}

// Timestamp parses a provider date string as UTC and returns Unix seconds.
// Provider times are GMT. Nil when nothing recognises the string.
func Timestamp(s string) *int64 {
	t, ok := parseTime(s)
	if !ok {
		return nil
	}
	ts := t.Unix()
	return &ts
}

// TimestampInYear is Timestamp for strings that may omit the year.
func TimestampInYear(s string, year int) *int64 {
	if !yearRe.MatchString(s) {
		s = strings.TrimSpace(s) + " " + strconv.Itoa(year)
	}
	return Timestamp(s)
}

func parseTime(s string) (time.Time, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return time.Time{}, false
	}
	clean = weekdayRe.ReplaceAllString(clean, "")
	clean = zoneRe.ReplaceAllString(clean, "")
	clean = meridRe.ReplaceAllStringFunc(clean, func(m string) string {
		sub := meridRe.FindStringSubmatch(m)
		return sub[1] + " " + strings.ToUpper(sub[2]) + "M"
	})
	clean = strings.ReplaceAll(clean, ",", "")

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, clean, time.UTC); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseIn(clean, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}
