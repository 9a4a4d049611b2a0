package remind

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/td0m/taskmaster/pkg/task"
)

// Beeper plays a single tone, blocking until it ends
type Beeper interface {
	Beep(freq float64, d time.Duration) error
}

type tone struct {
	freq float64
	at   time.Duration
}

// two rising tones, the second starting 200ms into the first
var chime = []tone{{800, 0}, {1000, 200 * time.Millisecond}}

const toneLength = 500 * time.Millisecond

// Chime is the audible channel. The tones play in the background so a
// slow or missing sound device never holds up a scan.
type Chime struct {
	beeper Beeper
	log    zerolog.Logger
}

func NewChime(b Beeper, log zerolog.Logger) *Chime {
	return &Chime{beeper: b, log: log}
}

func (c *Chime) Name() string { return "sound" }

func (c *Chime) Alert(task.Task) error {
	go c.play()
	return nil
}

// play blocks until every tone has finished
func (c *Chime) play() {
	var wg sync.WaitGroup
	start := time.Now()
	for _, t := range chime {
		time.Sleep(time.Until(start.Add(t.at)))
		wg.Add(1)
		go func(t tone) {
			defer wg.Done()
			if err := c.beeper.Beep(t.freq, toneLength); err != nil {
				c.log.Warn().Err(err).Float64("freq", t.freq).Msg("play tone")
			}
		}(t)
	}
	wg.Wait()
}

// Highlight is the visual channel: it remembers which tasks went off so
// the view can render them pulsing.
type Highlight struct {
	mu       sync.Mutex
	alerting map[task.ID]bool
}

func NewHighlight() *Highlight {
	return &Highlight{alerting: map[task.ID]bool{}}
}

func (h *Highlight) Name() string { return "visual" }

func (h *Highlight) Alert(t task.Task) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerting[t.ID] = true
	return nil
}

func (h *Highlight) Alerting(id task.ID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alerting[id]
}

// Count is the number of tasks that went off since start
func (h *Highlight) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.alerting)
}

// Forget drops a task, e.g. once it is deleted
func (h *Highlight) Forget(id task.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.alerting, id)
}

type Permission int

const (
	// PermissionDefault means the user has not been asked yet
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// PermissionReader exposes the host's notification permission. Only
// explicit user consent changes it.
type PermissionReader interface {
	State() Permission
}

type Notifier interface {
	Notify(title, body string) error
}

const NotificationTitle = "⏰ Task Reminder"

// Desktop is the OS notification channel
type Desktop struct {
	notifier   Notifier
	permission PermissionReader
	now        Clock
}

func NewDesktop(n Notifier, p PermissionReader, now Clock) *Desktop {
	return &Desktop{notifier: n, permission: p, now: now}
}

func (d *Desktop) Name() string { return "desktop" }

// Alert sends nothing unless permission was granted; nothing is queued
// for later either
func (d *Desktop) Alert(t task.Task) error {
	if d.permission.State() != PermissionGranted {
		return nil
	}
	body := t.Text
	if t.Reminder != nil {
		body += "\nDue: " + FormatDue(*t.Reminder, d.now())
	}
	return d.notifier.Notify(NotificationTitle, body)
}
