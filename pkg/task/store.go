package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation = errors.New("task text must not be empty")
	ErrNotFound   = errors.New("not found")
)

// Committer durably stores a snapshot of the whole collection
type Committer interface {
	Save([]Task) error
}

type StoreManager interface {
	Add(text string, reminder *time.Time, p Priority) (Task, error)
	Toggle(ID) error
	Delete(ID) error
	MarkNotified(ID) error
	Clear() error

	Get(ID) (Task, bool)
	All() []Task
}

var _ StoreManager = &Store{}

// Store owns the ordered task collection. Every mutation is committed
// before it returns.
// It is not safe for concurrent use: callers drive it from a single loop.
type Store struct {
	tasks  []Task
	commit Committer
}

func NewStore(tasks []Task, c Committer) *Store {
	s := &Store{commit: c}
	s.tasks = append(s.tasks, tasks...)
	return s
}

func (s *Store) Add(text string, reminder *time.Time, p Priority) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrValidation
	}
	p, _ = ParsePriority(string(p))
	if reminder != nil {
		r := *reminder
		reminder = &r
	}
	t := Task{
		ID:       NewID(),
		Text:     text,
		Reminder: reminder,
		Priority: p,
	}
	s.tasks = append(s.tasks, t)
	return t, s.save()
}

func (s *Store) Toggle(id ID) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.save()
}

func (s *Store) Delete(id ID) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.save()
}

// MarkNotified flags a task as alerted. The flag only ever goes from false
// to true, and marking an already notified task does not commit.
func (s *Store) MarkNotified(id ID) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	if s.tasks[i].Notified {
		return nil
	}
	s.tasks[i].Notified = true
	return s.save()
}

func (s *Store) Clear() error {
	s.tasks = nil
	return s.save()
}

func (s *Store) Get(id ID) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// All returns a copy of the collection in insertion order
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) index(id ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// the in-memory collection stays authoritative when a commit fails;
// the next successful commit catches the durable copy up
func (s *Store) save() error {
	if s.commit == nil {
		return nil
	}
	if err := s.commit.Save(s.All()); err != nil {
		return fmt.Errorf("commit tasks: %w", err)
	}
	return nil
}
