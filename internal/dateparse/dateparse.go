// Package dateparse resolves human date input to absolute timestamps. The
// core API only accepts absolute times; this package belongs to the calling
// layer, which must resolve phrases like "tomorrow" before touching the
// service.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// absoluteLayouts are tried in order for non-relative input.
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parse resolves input to an absolute time relative to now. Supported forms:
// "today"/"now", "tomorrow", "yesterday", "in N days|weeks|months|hours",
// "next monday".."next sunday", and absolute dates like "2025-01-15",
// "2025-01-15 14:30" or RFC 3339. Absolute forms without a zone are taken in
// now's location.
func Parse(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	switch s {
	case "today", "now":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	if strings.HasPrefix(s, "in ") {
		if t, err := parseRelative(s, now); err == nil {
			return t, nil
		}
	}
	if strings.HasPrefix(s, "next ") {
		if t, err := parseNextWeekday(s, now); err == nil {
			return t, nil
		}
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date %q; try formats like '2025-01-15', 'tomorrow', 'next monday', 'in 3 days'", input)
}

// parseRelative handles "in N days|weeks|months|hours".
func parseRelative(s string, now time.Time) (time.Time, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 || parts[0] != "in" {
		return time.Time{}, fmt.Errorf("invalid relative date %q", s)
	}
	amount, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid amount in relative date %q", s)
	}

	switch strings.TrimSuffix(parts[2], "s") {
	case "day":
		return now.AddDate(0, 0, amount), nil
	case "week":
		return now.AddDate(0, 0, 7*amount), nil
	case "month":
		return now.AddDate(0, amount, 0), nil
	case "hour":
		return now.Add(time.Duration(amount) * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("unsupported time unit %q", parts[2])
}

// parseNextWeekday handles "next monday" .. "next sunday", always landing in
// the coming week (1-7 days ahead).
func parseNextWeekday(s string, now time.Time) (time.Time, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 || parts[0] != "next" {
		return time.Time{}, fmt.Errorf("invalid weekday phrase %q", s)
	}
	target, ok := weekdays[parts[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid weekday %q", parts[1])
	}

	ahead := int(target-now.Weekday()+7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead), nil
}

// FormatRelative renders a time compactly for terminal display: "Today",
// "Tomorrow", "Yesterday", "In N days", or an absolute date.
func FormatRelative(t, now time.Time) string {
	days := daysBetween(now, t)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("In %d days", days)
	}
	return t.Format("2006-01-02 15:04")
}

// daysBetween counts calendar-day boundaries between a and b in a's location.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
