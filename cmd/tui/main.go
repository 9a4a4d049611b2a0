package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskmaster/internal/app"
	"github.com/td0m/taskmaster/internal/config"
	"github.com/td0m/taskmaster/internal/ui"
	"github.com/td0m/taskmaster/pkg/dateinput"
	"github.com/td0m/taskmaster/pkg/remind"
	"github.com/td0m/taskmaster/pkg/task"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	configPath = flag.String("config", "", "Path to a config file (yaml, json, toml or env)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), config.Usage())
	}
	flag.Parse()

	cfg, err := config.Read(*configPath)
	check(err)

	// the terminal belongs to the UI, so logs go to a file
	logFile, err := app.OpenLogFile(cfg)
	check(err)

	ctx, err := app.New(cfg, app.WithLogOutput(logFile))
	check(err)
	ctx.Closes(logFile)
	defer ctx.Close()

	p := tea.NewProgram(newModel(ctx))
	p.EnterAltScreen()
	defer p.ExitAltScreen()

	// enable mouse (for scrolling)
	p.EnableMouseAllMotion()
	defer p.DisableMouseAllMotion()

	if err := p.Start(); err != nil {
		ctx.Log.Error().Err(err).Msg("ui stopped")
		check(err)
	}
}

const (
	headerHeight = 3
	footerHeight = 2
)

type mode int

const (
	modeNormal mode = iota
	modeText
	modeReminder
	modePriority
	modePermission
	modeClear
)

// scanMsg asks for a due-task scan; clockMsg refreshes the clock
type (
	scanMsg  time.Time
	clockMsg time.Time
)

var viewTabs = []task.View{task.ViewAll, task.ViewToday, task.ViewUpcoming, task.ViewCompleted}

type model struct {
	ctx *app.Context

	mode mode

	viewport  viewport.Model
	nameinput textinput.Model
	dueinput  dateinput.Model
	tabs      ui.Tabs

	filter  task.Filter
	cursor  int
	visible []task.ID

	// draft of the task being added; its reminder stays in dueinput
	draftText string

	urgent map[task.ID]bool
	pulse  bool
	status string
	failed bool
}

func newModel(ctx *app.Context) *model {
	i := textinput.NewModel()
	i.Prompt = ""
	i.Placeholder = "What needs to be done?"
	i.CharLimit = 200
	i.Width = 40

	due := dateinput.NewModel()
	due.Now = ctx.Now
	due.Format = remind.FormatDue

	titles := make([]string, len(viewTabs))
	for i, v := range viewTabs {
		titles[i] = v.String()
	}

	m := &model{
		ctx:       ctx,
		nameinput: i,
		dueinput:  due,
		viewport:  viewport.Model{},
		tabs:      ui.NewTabs(titles),
		urgent:    map[task.ID]bool{},
	}
	m.updateTasks()
	m.render()
	return m
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m *model) Init() tea.Cmd {
	scanNow := func() tea.Msg { return scanMsg(m.ctx.Now()) }
	return tea.Batch(scanNow, m.tickClock())
}

func (m *model) tickScan() tea.Cmd {
	return tea.Tick(m.ctx.Config.ScanInterval, func(t time.Time) tea.Msg {
		return scanMsg(t)
	})
}

func (m *model) tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		verticalMargins := headerHeight + footerHeight
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - verticalMargins
		m.tabs.Width = msg.Width
		m.setCursor(m.cursor) // make sure cursor is visible
	case scanMsg:
		m.scan()
		cmd = m.tickScan()
	case clockMsg:
		m.pulse = !m.pulse
		cmd = m.tickClock()
	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			m.setCursor(m.cursor - 1)
		case tea.MouseWheelDown:
			m.setCursor(m.cursor + 1)
		}
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.mode = modeNormal
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.render()
	return m, cmd
}

// scan runs one due-task check. It runs in every mode: a prompt left open
// must not hold back reminders, and the draft is never touched.
func (m *model) scan() {
	r := m.ctx.Scanner.Scan()
	m.urgent = r.Urgent
	for _, t := range r.Fired {
		m.setStatus("🔔 "+t.Text+" is due!", false)
	}
	if len(r.Fired) > 0 {
		m.updateTasks()
	}
}

// handle keys differently based on the current mode
func (m *model) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeText:
		if msg.Type == tea.KeyEnter {
			m.draftText = m.nameinput.Value()
			if strings.TrimSpace(m.draftText) == "" {
				m.setStatus("⚠️ Please enter a task description!", true)
				return nil
			}
			m.dueinput.Reset()
			m.mode = modeReminder
			return nil
		}
		m.nameinput, cmd = m.nameinput.Update(msg)
	case modeReminder:
		if msg.Type == tea.KeyEnter {
			if _, err := m.dueinput.Value(); err != nil {
				m.setStatus("⚠️ "+err.Error(), true)
				return nil
			}
			m.mode = modePriority
			return nil
		}
		m.dueinput, cmd = m.dueinput.Update(msg)
	case modePriority:
		p := task.Medium
		switch msg.String() {
		case "l":
			p = task.Low
		case "h":
			p = task.High
		case "m", "enter":
		default:
			return nil
		}
		m.add(p)
	case modePermission:
		switch msg.String() {
		case "y":
			m.fail(m.ctx.Grant())
			m.setStatus("notifications enabled", false)
		case "n":
			m.fail(m.ctx.Deny())
			m.setStatus("notifications disabled; press n to change your mind", false)
		default:
			return nil
		}
		m.mode = modeNormal
	case modeClear:
		if msg.String() == "y" {
			m.fail(m.ctx.Store.Clear())
			m.updateTasks()
		}
		m.mode = modeNormal
	case modeNormal:
		cmd = m.normalKey(msg)
	}
	return cmd
}

func (m *model) normalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "g":
		m.setCursor(0)
	case "G":
		m.setCursor(len(m.visible))
	case "ctrl+d":
		m.setCursor(m.cursor + 10)
	case "ctrl+u":
		m.setCursor(m.cursor - 10)
	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "alt+1", "alt+2", "alt+3", "alt+4":
		m.tabs, _ = m.tabs.Update(msg)
		m.updateTasks()
		m.setCursor(0)
	case "tab":
		m.tabs.Next()
		m.updateTasks()
		m.setCursor(0)
	case "f":
		m.filter = m.filter.Next()
		m.updateTasks()
		m.setCursor(0)
	case "o":
		m.nameinput.SetValue("")
		m.nameinput.Focus()
		m.mode = modeText
	case "t", " ":
		if id := m.atCursor(); id != "" {
			m.fail(m.ctx.Store.Toggle(id))
			m.updateTasks()
		}
	case "x", "delete":
		if id := m.atCursor(); id != "" {
			m.fail(m.ctx.Store.Delete(id))
			m.ctx.Highlight.Forget(id)
			m.updateTasks()
			m.setCursor(m.cursor) // make sure cursor is visible
		}
	case "n":
		m.mode = modePermission
	case "X":
		m.mode = modeClear
	}
	return nil
}

func (m *model) add(p task.Priority) {
	m.mode = modeNormal
	// relative reminders count from confirmation, not from typing
	due, err := m.dueinput.Value()
	if err != nil {
		m.setStatus("⚠️ "+err.Error(), true)
		return
	}
	t, err := m.ctx.Store.Add(m.draftText, due, p)
	if errors.Is(err, task.ErrValidation) {
		m.setStatus("⚠️ Please enter a task description!", true)
		return
	}
	m.fail(err)
	m.ctx.Log.Debug().Str("task_id", string(t.ID)).Msg("task added")
	m.updateTasks()

	// ask for notification consent the first time a reminder is set
	if t.Reminder != nil && m.ctx.Permission.State() == remind.PermissionDefault {
		m.mode = modePermission
	}
}

// fail reports a store error in the status line and the log
func (m *model) fail(err error) {
	if err == nil {
		return
	}
	m.ctx.Log.Error().Err(err).Msg("task update failed")
	m.setStatus("✗ "+err.Error(), true)
}

func (m *model) setStatus(s string, failed bool) {
	m.status, m.failed = s, failed
}

func (m *model) view() task.View {
	return viewTabs[m.tabs.Value()]
}

// updateTasks recomputes what is visible under the current view and filter
func (m *model) updateTasks() {
	now := m.ctx.Now()
	all := m.ctx.Store.All()

	m.visible = m.visible[:0]
	for _, t := range task.Select(all, m.view(), m.filter, now) {
		m.visible = append(m.visible, t.ID)
	}

	counts := task.Count(all, now)
	labels := make([]string, len(viewTabs))
	for i, v := range viewTabs {
		labels[i] = fmt.Sprintf("%s %d", v, counts.Of(v))
	}
	m.tabs.SetLabels(labels)
	m.setCursor(m.cursor)
}

func (m *model) render() {
	m.tabs.Info = m.info()
	m.viewport.SetContent(m.viewTasks())
}

func (m *model) info() string {
	now := m.ctx.Now()
	s := ""
	if n := m.ctx.Highlight.Count(); n > 0 {
		s += ui.Badge.Render(fmt.Sprintf("🔔 %d", n)) + " "
	}
	s += ui.Status.Render(fmt.Sprintf("%s ∙ %d%% done ∙ ", m.filter, task.Productivity(m.ctx.Store.All())))
	s += now.Format("Mon Jan 2 3:04:05 PM")
	return s
}

func (m *model) setCursor(value int) {
	size := len(m.visible)
	m.cursor = clamp(value, 0, max(size-1, 0))
	// update viewport
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
}

func (m *model) viewTasks() string {
	if len(m.visible) == 0 {
		return ui.Status.Render("  Nothing here. Press o to add a task.")
	}
	now := m.ctx.Now()
	s := ""
	for i, id := range m.visible {
		t, ok := m.ctx.Store.Get(id)
		if !ok {
			continue
		}
		s += m.renderTask(t, i == m.cursor, now) + "\n"
	}
	return s
}

func (m *model) renderTask(t task.Task, focused bool, now time.Time) string {
	title := ui.TaskTitle
	priority := t.Priority
	switch {
	case t.Completed:
		title = ui.TaskDone
	case m.ctx.Highlight.Alerting(t.ID):
		// went off this session: pulse and show as high priority
		title = ui.RingingDim
		if m.pulse {
			title = ui.Ringing
		}
		priority = task.High
	}
	if focused {
		title = title.Copy().Underline(true)
	}

	s := ui.Icon(t.Completed) + title.Render(t.Text)
	if t.Reminder != nil {
		due := ui.Due
		switch {
		case m.urgent[t.ID]:
			due = ui.DueUrgent
		case !t.Reminder.After(now):
			due = ui.DuePassed
		}
		s += ui.TaskDivider + due.Render("⏰ "+remind.FormatDue(*t.Reminder, now))
	}
	s += ui.TaskDivider + ui.Priority(priority)
	return s
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m *model) View() string {
	statusline := ""
	switch m.mode {
	case modeText:
		statusline = "new task: " + m.nameinput.View()
	case modeReminder:
		statusline = m.dueinput.View()
	case modePriority:
		statusline = "priority: [l]ow [m]edium [h]igh"
	case modePermission:
		statusline = "🔔 Enable desktop notifications for reminders? [y/n]"
	case modeClear:
		statusline = "Delete ALL tasks? [y/n]"
	default:
		style := ui.Status
		if m.failed {
			style = ui.StatusErr
		}
		statusline = style.Render(m.status)
	}
	help := ui.Status.Render("o add ∙ t toggle ∙ x delete ∙ tab view ∙ f filter ∙ n notifications ∙ X clear ∙ q quit")
	return m.tabs.View() + m.viewport.View() + "\n" + lipgloss.JoinVertical(lipgloss.Left, statusline, help)
}

func (m *model) atCursor() task.ID {
	// if no items visible
	if m.cursor >= len(m.visible) {
		return ""
	}
	return m.visible[m.cursor]
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
