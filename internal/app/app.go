// Package app wires the task store, persistence and reminder scanner
// together for the command line programs.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/td0m/taskmaster/internal/alert"
	"github.com/td0m/taskmaster/internal/config"
	"github.com/td0m/taskmaster/internal/logging"
	"github.com/td0m/taskmaster/pkg/persist"
	"github.com/td0m/taskmaster/pkg/remind"
	"github.com/td0m/taskmaster/pkg/task"
)

// Context holds everything a running program needs. It is created once
// at startup; Close releases it.
type Context struct {
	Config *config.Config
	Log    zerolog.Logger
	Now    remind.Clock

	Dir        *persist.Dir
	Store      *task.Store
	Permission *alert.StoredPermission
	Notifier   remind.Notifier
	Highlight  *remind.Highlight
	Scanner    *remind.Scanner

	logOut  io.Writer
	beeper  remind.Beeper
	closers []io.Closer
}

// Option customises a Context before its components are built
type Option func(*Context)

// WithLogOutput sends logs to w instead of stdout
func WithLogOutput(w io.Writer) Option {
	return func(c *Context) { c.logOut = w }
}

// WithClock replaces the wall clock, for tests
func WithClock(now remind.Clock) Option {
	return func(c *Context) { c.Now = now }
}

// WithHost replaces the speaker and desktop notifier
func WithHost(b remind.Beeper, n remind.Notifier) Option {
	return func(c *Context) {
		c.beeper, c.Notifier = b, n
	}
}

func New(cfg *config.Config, opts ...Option) (*Context, error) {
	c := &Context{
		Config:   cfg,
		Now:      time.Now,
		Notifier: alert.Desktop{},
		logOut:   os.Stdout,
		beeper:   alert.Speaker{},
	}
	for _, o := range opts {
		o(c)
	}

	var err error
	c.Log, err = logging.New(cfg, c.logOut)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	c.Dir, err = persist.OpenDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}
	// every process commits its whole snapshot, so only one may own the dir
	lock, err := c.Dir.Lock()
	if err != nil {
		return nil, err
	}
	c.Closes(lock)

	persistor := persist.InJSON(c.Dir)
	tasks, err := loadTasks(persistor, c.Now(), c.Log)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Store = task.NewStore(tasks, persistor)
	c.Log.Info().
		Str("data_dir", cfg.DataDir).
		Int("tasks", len(tasks)).
		Msg("loaded tasks")

	c.Permission = alert.NewStoredPermission(c.Dir)
	c.Highlight = remind.NewHighlight()
	channels := []remind.Channel{c.Highlight, remind.NewDesktop(c.Notifier, c.Permission, c.Now)}
	if !cfg.Mute {
		channels = append(channels, remind.NewChime(c.beeper, c.Log))
	}
	c.Scanner = remind.NewScanner(c.Store, remind.NewAlerts(c.Log, channels...),
		remind.WithClock(c.Now),
		remind.WithUrgentWindow(cfg.UrgentWindow),
		remind.WithLogger(c.Log),
	)
	return c, nil
}

// loadTasks falls back to an empty collection when the stored record is
// unreadable. The record is moved aside first so nothing is overwritten.
func loadTasks(p *persist.JSON, now time.Time, log zerolog.Logger) ([]task.Task, error) {
	tasks, err := p.Load()
	var decodeErr *persist.DecodeError
	if errors.As(err, &decodeErr) {
		moved, qerr := p.Quarantine(now)
		if qerr != nil {
			return nil, fmt.Errorf("move malformed tasks aside: %w", qerr)
		}
		log.Error().Err(err).Str("moved_to", moved).Msg("stored tasks are malformed, starting empty")
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// Grant records the user's consent and confirms it with a first
// notification. Deny records a refusal.
func (c *Context) Grant() error {
	if err := c.Permission.Record(remind.PermissionGranted); err != nil {
		return err
	}
	return c.Notifier.Notify("Notifications enabled 🎉", "You'll receive timely reminders for your tasks.")
}

func (c *Context) Deny() error {
	return c.Permission.Record(remind.PermissionDenied)
}

// OpenLogFile opens the log file the interactive program writes to,
// defaulting to taskmaster.log inside the data dir
func OpenLogFile(cfg *config.Config) (*os.File, error) {
	path := cfg.LogFile
	if path == "" {
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, err
		}
		path = filepath.Join(cfg.DataDir, "taskmaster.log")
	}
	return logging.OpenFile(path)
}

// Closes registers something to close with the context
func (c *Context) Closes(cl io.Closer) {
	c.closers = append(c.closers, cl)
}

// Close releases everything registered with Closes, newest first. Calling
// it again is a no-op.
func (c *Context) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}
