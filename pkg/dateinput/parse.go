package dateinput

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("unrecognised reminder time")

// default clock for a day given without one
const defaultHour = 9

type multiplier struct {
	key   string
	value time.Duration
}

// matched by prefix, in order: "m" means minutes
var multipliers = []multiplier{
	{"minutes", time.Minute},
	{"hours", time.Hour},
	{"days", time.Hour * 24},
	{"weeks", time.Hour * 24 * 7},
}

// full timestamps, tried before anything else on the raw input
var isoFormats = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
}

// month names in the input are matched case-insensitively
var dayFormats = []string{
	"2006-01-02",
	"_2/01/2006",
	"_2/01",
	"Jan _2 2006",
	"Jan _2",
	"January _2 2006",
	"January _2",
	"_2 Jan 2006",
	"_2 Jan",
	"_2 January 2006",
	"_2 January",
}

var clockFormats = []string{
	"15:04",
	"3:04pm",
	"3pm",
}

// Parse reads a reminder time typed by the user, relative to now.
// An empty input means no reminder and returns nil.
func Parse(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range isoFormats {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return &t, nil
		}
	}
	s = strings.ToLower(s)
	if d, err := parseRelative(s); err == nil {
		t := now.Add(d)
		return &t, nil
	}
	t, err := parseDayClock(s, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseRelative reads offsets such as "in 30m", "2 hours" or "in 1 week".
// Unlike a date, a relative time always needs a unit.
func parseRelative(s string) (time.Duration, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	s, n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing unit")
	}
	for _, m := range multipliers {
		end := min(len(m.key), len(s))
		if m.key[:end] == s {
			if int64(n) > math.MaxInt64/int64(m.value) {
				return 0, ErrParsing
			}
			return time.Duration(n) * m.value, nil
		}
	}
	return 0, errors.New("unexpected postfix")
}

// parseDayClock reads "[day] [clock]", where either part may be left out
func parseDayClock(s string, now time.Time) (time.Time, error) {
	fields := strings.Fields(s)
	hour, minute := defaultHour, 0
	if n := len(fields); n > 0 {
		// "3 pm" is one clock
		last := fields[n-1]
		if (last == "am" || last == "pm") && n > 1 {
			last = fields[n-2] + last
			fields = fields[:n-1]
			n--
		}
		if c, err := parseAnyFormat(last, clockFormats, now.Location()); err == nil {
			hour, minute = c.Hour(), c.Minute()
			fields = fields[:n-1]
		}
	}

	day := strings.Join(fields, " ")
	date, weekday, err := parseDay(day, now)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	t := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	// "mon 9am" on a Monday afternoon means next Monday
	if weekday && !t.After(now) {
		t = t.AddDate(0, 0, 7)
	}
	return t, nil
}

// parseDay returns the day named by s; weekday is true when s named a
// day of the week rather than a date
func parseDay(s string, now time.Time) (date time.Time, weekday bool, err error) {
	today := startOfDay(now)
	switch s {
	case "", "today", "tod":
		return today, false, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), false, nil
	}
	for i := time.Sunday; i <= time.Saturday; i++ {
		name := strings.ToLower(i.String())
		if s == name || s == name[:3] {
			return nextWeekday(today, i), true, nil
		}
	}
	t, err := parseAbsolute(s, now)
	if err != nil {
		return time.Time{}, false, ErrParsing
	}
	return t, false, nil
}

// parseAbsolute fills in the current year when s leaves it out
func parseAbsolute(s string, now time.Time) (time.Time, error) {
	t, err := parseAnyFormat(s, dayFormats, now.Location())
	if err != nil {
		return t, err
	}
	if t.Year() == 0 {
		t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	}
	return t, nil
}

func parseAnyFormat(s string, formats []string, loc *time.Location) (time.Time, error) {
	for _, fmt := range formats {
		t, err := time.ParseInLocation(fmt, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("format not found")
}

func nextWeekday(t time.Time, d time.Weekday) time.Time {
	day := d - t.Weekday()
	if day < 0 {
		day += 7
	}
	return t.AddDate(0, 0, int(day))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseInt(s string) (string, int, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s, 0, errors.New("failed to parse")
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return s, 0, err
	}
	return s[i:], n, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
