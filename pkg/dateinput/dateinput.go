package dateinput

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

// Model is a text input for an optional reminder time
type Model struct {
	i textinput.Model

	// Now is the clock relative inputs are resolved against
	Now func() time.Time
	// Format renders a parsed time next to the input
	Format func(t, now time.Time) string
}

func NewModel() Model {
	i := textinput.NewModel()
	i.Focus()
	i.CharLimit = 32
	i.Prompt = ""
	i.Placeholder = "none"
	return Model{
		i:      i,
		Now:    time.Now,
		Format: func(t, _ time.Time) string { return t.Format("Mon Jan 2 15:04") },
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Model) View() string {
	var status string
	value, err := m.Value()
	switch {
	case m.i.Value() == "":
		status = ""
	case err != nil:
		status = cross
	case value != nil:
		status = checkmark + m.Format(*value, m.Now())
	}
	return lipgloss.NewStyle().Foreground(faded).Render("remind: ") + m.i.View() + status
}

// Value is the parsed reminder, nil when the input is empty. Relative
// input such as "in 30m" counts from the moment Value is called.
func (m Model) Value() (*time.Time, error) {
	return Parse(m.i.Value(), m.Now())
}

func (m *Model) Reset() {
	m.i.SetValue("")
}
