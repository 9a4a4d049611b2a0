package remind

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/td0m/taskmaster/pkg/task"
)

// Channel is one way of telling the user a task is due
type Channel interface {
	Name() string
	Alert(task.Task) error
}

type Dispatcher interface {
	Dispatch(task.Task)
}

var _ Dispatcher = &Alerts{}

// Alerts fans a due task out to every channel. Channels are independent:
// one failing (or panicking) never keeps the others from running.
type Alerts struct {
	channels []Channel
	log      zerolog.Logger
}

func NewAlerts(log zerolog.Logger, channels ...Channel) *Alerts {
	return &Alerts{channels: channels, log: log}
}

func (a *Alerts) Dispatch(t task.Task) {
	for _, c := range a.channels {
		if err := alert(c, t); err != nil {
			a.log.Warn().
				Err(err).
				Str("channel", c.Name()).
				Str("task_id", string(t.ID)).
				Msg("alert failed")
		}
	}
}

func alert(c Channel, t task.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Alert(t)
}
