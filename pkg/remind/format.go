package remind

import "time"

// FormatDue renders a reminder relative to now, e.g. "Today 3:04 PM",
// "Tomorrow 9:00 AM", "Jan 2 3:04 PM" or "Jan 2, 2027 3:04 PM"
func FormatDue(t, now time.Time) string {
	t = t.In(now.Location())
	today := startOfDay(now)
	day := startOfDay(t)

	var date string
	switch {
	case day.Equal(today):
		date = "Today"
	case day.Equal(today.AddDate(0, 0, 1)):
		date = "Tomorrow"
	case t.Year() != now.Year():
		date = t.Format("Jan 2, 2006")
	default:
		date = t.Format("Jan 2")
	}
	return date + " " + t.Format("3:04 PM")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
