package task

import (
	"time"

	"github.com/google/uuid"
)

type ID string

// NewID returns a fresh process-local task identity
func NewID() ID {
	return ID(uuid.NewString())
}

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// ParsePriority returns the priority named by s
// ok is false (and Medium is returned) for anything unknown
func ParsePriority(s string) (p Priority, ok bool) {
	switch Priority(s) {
	case Low, Medium, High:
		return Priority(s), true
	}
	return Medium, false
}

type Task struct {
	ID ID

	Text      string
	Completed bool
	Reminder  *time.Time
	Priority  Priority

	// set once by the scanner, never reset
	Notified bool
}

func (t Task) HasReminder() bool {
	return t.Reminder != nil
}
