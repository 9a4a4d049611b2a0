package remind

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/td0m/taskmaster/pkg/task"
)

// DefaultInterval is the time between two scans
const DefaultInterval = 10 * time.Second

// Store is the part of the task store the scanner needs
type Store interface {
	All() []task.Task
	MarkNotified(task.ID) error
}

// Report is what a single scan saw
type Report struct {
	At time.Time
	// Fired holds the tasks alerted during this scan
	Fired []task.Task
	// Urgent is recomputed from scratch on every scan and never stored
	Urgent map[task.ID]bool
}

type Scanner struct {
	store    Store
	dispatch Dispatcher
	now      Clock
	window   time.Duration
	log      zerolog.Logger
}

type Option func(*Scanner)

func WithClock(c Clock) Option {
	return func(s *Scanner) { s.now = c }
}

func WithUrgentWindow(d time.Duration) Option {
	return func(s *Scanner) { s.window = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Scanner) { s.log = l }
}

func NewScanner(store Store, d Dispatcher, opts ...Option) *Scanner {
	s := &Scanner{
		store:    store,
		dispatch: d,
		now:      time.Now,
		window:   UrgentWindow,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Scan checks every task once. A task whose reminder has passed fires
// exactly once: it is dispatched, then marked notified and committed.
// Tasks already notified never fire again, even after a reload.
func (s *Scanner) Scan() Report {
	now := s.now()
	r := Report{At: now, Urgent: map[task.ID]bool{}}
	for _, t := range s.store.All() {
		switch Classify(t, now, s.window) {
		case DueUnnotified:
			s.dispatch.Dispatch(t)
			if err := s.store.MarkNotified(t.ID); err != nil {
				s.log.Error().
					Err(err).
					Str("task_id", string(t.ID)).
					Msg("mark task notified")
			}
			t.Notified = true
			r.Fired = append(r.Fired, t)
		case Urgent:
			r.Urgent[t.ID] = true
		}
	}
	if len(r.Fired) > 0 {
		s.log.Info().Int("fired", len(r.Fired)).Msg("reminders due")
	}
	return r
}

// Run scans right away and then every interval until ctx is done.
// Ticks that come late or get dropped are harmless: a due task is caught
// by whichever scan runs next.
func (s *Scanner) Run(ctx context.Context, interval time.Duration, reports func(Report)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r := s.Scan()
		if reports != nil {
			reports(r)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
