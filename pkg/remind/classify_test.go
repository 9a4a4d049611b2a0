package remind

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/taskmaster/pkg/task"
)

func at(t time.Time) *time.Time {
	return &t
}

func TestIsUrgent(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		reminder time.Time
		want     bool
	}{
		{"in 30 minutes", now.Add(30 * time.Minute), true},
		{"in exactly one hour", now.Add(time.Hour), true},
		{"just over an hour", now.Add(time.Hour + time.Millisecond), false},
		{"in two hours", now.Add(2 * time.Hour), false},
		{"right now", now, false},
		{"already passed", now.Add(-time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUrgent(tt.reminder, now, UrgentWindow); got != tt.want {
				t.Errorf("IsUrgent(%v) = %v, want %v", tt.reminder.Sub(now), got, tt.want)
			}
		})
	}
}

func TestIsDue_Inclusive(t *testing.T) {
	is := is.New(t)
	now := time.Now()
	is.True(IsDue(now, now))
	is.True(IsDue(now.Add(-time.Second), now))
	is.True(!IsDue(now.Add(time.Nanosecond), now))
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		task task.Task
		want State
	}{
		{"no reminder", task.Task{}, NoReminder},
		{"far away", task.Task{Reminder: at(now.Add(2 * time.Hour))}, Pending},
		{"within the hour", task.Task{Reminder: at(now.Add(30 * time.Minute))}, Urgent},
		{"due", task.Task{Reminder: at(now.Add(-time.Second))}, DueUnnotified},
		{"due exactly now", task.Task{Reminder: at(now)}, DueUnnotified},
		{"due and notified", task.Task{Reminder: at(now.Add(-time.Second)), Notified: true}, DueNotified},
		{"completed", task.Task{Reminder: at(now.Add(-time.Second)), Completed: true}, Done},
		{"completed without reminder", task.Task{Completed: true}, Done},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.task, now, UrgentWindow); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_IsPure(t *testing.T) {
	is := is.New(t)
	now := time.Now()
	tk := task.Task{Reminder: at(now.Add(10 * time.Minute))}
	for i := 0; i < 3; i++ {
		is.Equal(Classify(tk, now, UrgentWindow), Urgent)
	}
	is.True(!tk.Notified)

	// urgency is not sticky: moving the clock back un-sets it
	is.Equal(Classify(tk, now.Add(-2*time.Hour), UrgentWindow), Pending)
}

func TestFormatDue(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		due  time.Time
		want string
	}{
		{time.Date(2026, 10, 17, 15, 4, 0, 0, time.UTC), "Today 3:04 PM"},
		{time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), "Tomorrow 9:00 AM"},
		{time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC), "Oct 16 11:30 PM"},
		{time.Date(2026, 1, 2, 0, 5, 0, 0, time.UTC), "Jan 2 12:05 AM"},
		{time.Date(2027, 1, 2, 15, 4, 0, 0, time.UTC), "Jan 2, 2027 3:04 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDue(tt.due, now); got != tt.want {
				t.Errorf("FormatDue() = %q, want %q", got, tt.want)
			}
		})
	}
}
