package remind

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/td0m/taskmaster/pkg/task"
)

type beeper struct {
	mu    sync.Mutex
	freqs []float64
	err   error
}

func (b *beeper) Beep(freq float64, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.freqs = append(b.freqs, freq)
	return b.err
}

type notifier struct {
	title, body string
	sent        int
	err         error
}

func (n *notifier) Notify(title, body string) error {
	n.title, n.body = title, body
	n.sent++
	return n.err
}

type permission Permission

func (p permission) State() Permission { return Permission(p) }

// channel is a stub channel that counts calls and may fail or panic
type channel struct {
	name   string
	calls  int
	err    error
	panics bool
}

func (c *channel) Name() string { return c.name }

func (c *channel) Alert(task.Task) error {
	c.calls++
	if c.panics {
		panic("audio engine exploded")
	}
	return c.err
}

func TestAlerts_ChannelsAreIndependent(t *testing.T) {
	is := is.New(t)
	failing := &channel{name: "failing", err: errors.New("no audio device")}
	panicking := &channel{name: "panicking", panics: true}
	ok := &channel{name: "ok"}

	a := NewAlerts(zerolog.Nop(), failing, panicking, ok)
	a.Dispatch(task.Task{ID: "a", Text: "a"})

	is.Equal(failing.calls, 1)
	is.Equal(panicking.calls, 1)
	is.Equal(ok.calls, 1)
}

func TestChime_Play(t *testing.T) {
	t.Run("plays two distinct tones", func(t *testing.T) {
		is := is.New(t)
		b := &beeper{}
		NewChime(b, zerolog.Nop()).play()
		freqs := append([]float64{}, b.freqs...)
		sort.Float64s(freqs)
		is.Equal(freqs, []float64{800, 1000})
	})

	t.Run("tone failure is swallowed", func(t *testing.T) {
		is := is.New(t)
		b := &beeper{err: errors.New("no speaker")}
		c := NewChime(b, zerolog.Nop())
		c.play()
		is.NoErr(c.Alert(task.Task{}))
	})
}

func TestHighlight(t *testing.T) {
	is := is.New(t)
	h := NewHighlight()
	is.True(!h.Alerting("a"))
	is.NoErr(h.Alert(task.Task{ID: "a"}))
	is.True(h.Alerting("a"))
	is.Equal(h.Count(), 1)
	h.Forget("a")
	is.True(!h.Alerting("a"))
	is.Equal(h.Count(), 0)
}

func TestDesktop(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	due := task.Task{ID: "a", Text: "stand-up", Reminder: at(now.Add(-time.Minute))}

	t.Run("granted", func(t *testing.T) {
		is := is.New(t)
		n := &notifier{}
		d := NewDesktop(n, permission(PermissionGranted), fixed(now))
		is.NoErr(d.Alert(due))
		is.Equal(n.sent, 1)
		is.Equal(n.title, NotificationTitle)
		is.Equal(n.body, "stand-up\nDue: Today 11:59 AM")
	})

	for _, p := range []Permission{PermissionDefault, PermissionDenied} {
		t.Run(p.String(), func(t *testing.T) {
			is := is.New(t)
			n := &notifier{}
			d := NewDesktop(n, permission(p), fixed(now))
			is.NoErr(d.Alert(due))
			is.Equal(n.sent, 0)
		})
	}

	t.Run("notifier failure is reported", func(t *testing.T) {
		is := is.New(t)
		n := &notifier{err: errors.New("no notification daemon")}
		d := NewDesktop(n, permission(PermissionGranted), fixed(now))
		is.True(d.Alert(due) != nil)
	})
}

func TestScanner_DispatchesEveryChannel(t *testing.T) {
	is := is.New(t)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := task.NewStore([]task.Task{{ID: "a", Text: "a", Reminder: at(now.Add(-time.Second))}}, nil)

	n := &notifier{err: errors.New("unavailable")}
	h := NewHighlight()
	alerts := NewAlerts(zerolog.Nop(), NewDesktop(n, permission(PermissionGranted), fixed(now)), h)

	r := NewScanner(store, alerts, WithClock(fixed(now))).Scan()
	is.Equal(len(r.Fired), 1)
	is.Equal(n.sent, 1)
	is.True(h.Alerting("a")) // the failing desktop channel did not block it
}
