package main

import (
	"fmt"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/taskmaster/internal/app"
	"github.com/td0m/taskmaster/internal/config"
	"github.com/td0m/taskmaster/pkg/remind"
	"github.com/td0m/taskmaster/pkg/task"
)

type quiet struct{}

func (quiet) Beep(float64, time.Duration) error { return nil }
func (quiet) Notify(string, string) error       { return nil }

// testModel returns a model whose clock is moved through the returned pointer
func testModel(t *testing.T) (*model, *time.Time) {
	t.Helper()
	clock := time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local)
	cfg := &config.Config{
		Env:          config.EnvProd,
		DataDir:      t.TempDir(),
		ScanInterval: 10 * time.Second,
		UrgentWindow: time.Hour,
		Mute:         true,
		LogLevel:     "info",
	}
	ctx, err := app.New(cfg,
		app.WithLogOutput(io.Discard),
		app.WithClock(func() time.Time { return clock }),
		app.WithHost(quiet{}, quiet{}),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ctx.Close() })
	return newModel(ctx), &clock
}

func press(m *model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func typeString(m *model, s string) {
	for _, r := range s {
		press(m, string(r))
	}
}

func TestModel_AddFlow(t *testing.T) {
	is := is.New(t)
	m, clock := testModel(t)

	press(m, "o")
	typeString(m, "call mum")
	press(m, "enter")
	typeString(m, "in 1m")
	press(m, "enter", "h")

	all := m.ctx.Store.All()
	is.Equal(len(all), 1)
	is.Equal(all[0].Text, "call mum")
	is.Equal(all[0].Priority, task.High)
	is.True(all[0].Reminder.Equal(clock.Add(time.Minute)))

	// first reminder asks for consent
	is.Equal(m.mode, modePermission)
}

func TestModel_ScanRunsInEveryMode(t *testing.T) {
	modes := []mode{modeNormal, modeText, modeReminder, modePriority, modePermission, modeClear}
	for _, md := range modes {
		md := md
		t.Run(fmt.Sprint(md), func(t *testing.T) {
			is := is.New(t)
			m, clock := testModel(t)
			due := clock.Add(time.Minute)
			added, err := m.ctx.Store.Add("pay rent", &due, task.Medium)
			is.NoErr(err)
			m.mode = md

			*clock = clock.Add(time.Hour)
			m.Update(scanMsg(*clock))

			got, ok := m.ctx.Store.Get(added.ID)
			is.True(ok)
			is.True(got.Notified)
			is.True(m.ctx.Highlight.Alerting(added.ID))
			is.Equal(m.mode, md) // the prompt stays open
		})
	}
}

func TestModel_ConsentPromptDoesNotHoldBackReminders(t *testing.T) {
	is := is.New(t)
	m, clock := testModel(t)

	press(m, "o")
	typeString(m, "water plants")
	press(m, "enter")
	typeString(m, "in 1m")
	press(m, "enter", "m")
	is.Equal(m.mode, modePermission)
	is.Equal(m.ctx.Permission.State(), remind.PermissionDefault)

	// the prompt is left open for an hour of ticks
	for i := 0; i < 360; i++ {
		*clock = clock.Add(10 * time.Second)
		m.Update(scanMsg(*clock))
	}
	all := m.ctx.Store.All()
	is.Equal(len(all), 1)
	is.True(all[0].Notified)
}
