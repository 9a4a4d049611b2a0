package task

import (
	"math"
	"time"
)

type View int

const (
	ViewAll View = iota
	ViewToday
	ViewUpcoming
	ViewCompleted
)

var viewTitles = []string{"All Tasks", "Today", "Upcoming", "Completed"}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewTitles) {
		return "unknown"
	}
	return viewTitles[v]
}

type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Next cycles all -> active -> completed -> all
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

// Visible reports whether t is shown under the given view and filter.
// Today and Upcoming only ever show tasks that have a reminder.
func Visible(t Task, v View, f Filter, now time.Time) bool {
	byView := true
	switch v {
	case ViewToday:
		byView = t.Reminder != nil && sameDay(*t.Reminder, now)
	case ViewUpcoming:
		byView = t.Reminder != nil && t.Reminder.After(now) && !t.Completed
	case ViewCompleted:
		byView = t.Completed
	}

	byFilter := true
	switch f {
	case FilterActive:
		byFilter = !t.Completed
	case FilterCompleted:
		byFilter = t.Completed
	}
	return byView && byFilter
}

// Select returns the visible tasks, keeping collection order
func Select(tasks []Task, v View, f Filter, now time.Time) []Task {
	out := []Task{}
	for _, t := range tasks {
		if Visible(t, v, f, now) {
			out = append(out, t)
		}
	}
	return out
}

type Counts struct {
	All       int
	Today     int
	Upcoming  int
	Completed int
}

// Of returns the count shown next to a view
func (c Counts) Of(v View) int {
	switch v {
	case ViewToday:
		return c.Today
	case ViewUpcoming:
		return c.Upcoming
	case ViewCompleted:
		return c.Completed
	default:
		return c.All
	}
}

func Count(tasks []Task, now time.Time) Counts {
	var c Counts
	for _, t := range tasks {
		c.All++
		if t.Completed {
			c.Completed++
		}
		if t.Reminder == nil {
			continue
		}
		if sameDay(*t.Reminder, now) {
			c.Today++
		}
		if t.Reminder.After(now) && !t.Completed {
			c.Upcoming++
		}
	}
	return c
}

// Productivity is the share of completed tasks as a rounded percentage
func Productivity(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

// sameDay compares calendar dates in b's location
func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
