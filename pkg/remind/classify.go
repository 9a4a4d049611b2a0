package remind

import (
	"time"

	"github.com/td0m/taskmaster/pkg/task"
)

// UrgentWindow is how long before its reminder a task turns urgent
const UrgentWindow = time.Hour

// Clock returns the current time
type Clock func() time.Time

type State int

const (
	NoReminder State = iota
	Pending
	Urgent
	DueUnnotified
	DueNotified
	// Done tasks are out of scanning whatever their reminder says
	Done
)

var stateNames = []string{"no-reminder", "pending", "urgent", "due-unnotified", "due-notified", "done"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// IsUrgent reports whether reminder is in the future but no further
// away than window. It keeps no memory between calls.
func IsUrgent(reminder, now time.Time, window time.Duration) bool {
	left := reminder.Sub(now)
	return left > 0 && left <= window
}

// IsDue uses an inclusive comparison: a reminder at exactly now is due
func IsDue(reminder, now time.Time) bool {
	return !now.Before(reminder)
}

// Classify places t in the reminder state machine at time now
func Classify(t task.Task, now time.Time, window time.Duration) State {
	switch {
	case t.Completed:
		return Done
	case t.Reminder == nil:
		return NoReminder
	case IsDue(*t.Reminder, now) && t.Notified:
		return DueNotified
	case IsDue(*t.Reminder, now):
		return DueUnnotified
	case IsUrgent(*t.Reminder, now, window):
		return Urgent
	default:
		return Pending
	}
}
