package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKeyInZone renders the calendar date of t as observed in loc.
func DateKeyInZone(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// DayIndex is the signed day count between the zone-local calendar dates of
// anchor and target (0 = same local day). Local dates are re-anchored to UTC
// midnights before subtracting so DST transitions cannot skew the count.
func DayIndex(anchor, target time.Time, loc *time.Location) int {
	ay, am, ad := anchor.In(loc).Date()
	ty, tm, td := target.In(loc).Date()
	a := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// LocalMidnight returns midnight of the local calendar day offset days after
// t, in loc.
func LocalMidnight(t time.Time, loc *time.Location, offset int) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+offset, 0, 0, 0, 0, loc)
}

// FormatPreferredTime turns a 24h "HH:MM" string into an "h:mm AM/PM" label.
// Out-of-range components are clamped; anything unparseable falls through as
// the raw input. Never errors.
func FormatPreferredTime(raw string) string {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return raw
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return raw
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return raw
	}
	if hour < 0 {
		hour = 0
	}
	if hour > 23 {
		hour = 23
	}
	if minute < 0 {
		minute = 0
	}
	if minute > 59 {
		minute = 59
	}

	suffix := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		display = hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}

// SlotMinutes maps an "h:mm AM/PM" label to minutes since midnight for
// ordering. Labels it cannot parse sort last.
func SlotMinutes(label string) int {
	t, err := time.Parse("3:04 PM", strings.TrimSpace(label))
	if err != nil {
		return 24 * 60
	}
	return t.Hour()*60 + t.Minute()
}

// LoadLocation resolves an IANA zone name, falling back to the host zone on
// empty or unknown names.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
