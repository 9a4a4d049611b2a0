package persist

import (
	"fmt"
	"time"

	"github.com/td0m/taskmaster/pkg/task"
)

// savable is the stored shape of a task. It has no ID: identities are
// handed out again every time the collection is loaded.
type savable struct {
	Text         string  `json:"text"`
	Completed    bool    `json:"completed"`
	ReminderTime *string `json:"reminderTime"`
	Priority     string  `json:"priority"`
	Notified     bool    `json:"notified"`
}

// reminder layouts accepted when loading; datetime-local values carry no
// zone and are read in local time
var reminderLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func newSavable(ts []task.Task) []savable {
	out := make([]savable, len(ts))
	for i, t := range ts {
		s := savable{
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  string(t.Priority),
			Notified:  t.Notified,
		}
		if t.Reminder != nil {
			r := t.Reminder.Format(time.RFC3339Nano)
			s.ReminderTime = &r
		}
		out[i] = s
	}
	return out
}

// Load turns stored records back into tasks with fresh IDs
func load(ss []savable) ([]task.Task, error) {
	tasks := make([]task.Task, len(ss))
	for i, s := range ss {
		reminder, err := parseReminder(s.ReminderTime)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		priority, _ := task.ParsePriority(s.Priority)
		tasks[i] = task.Task{
			ID:        task.NewID(),
			Text:      s.Text,
			Completed: s.Completed,
			Reminder:  reminder,
			Priority:  priority,
			Notified:  s.Notified,
		}
	}
	return tasks, nil
}

func parseReminder(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range reminderLayouts {
		t, err := time.ParseInLocation(layout, *s, time.Local)
		if err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid reminderTime %q", *s)
}
