package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskmaster/pkg/task"
)

var (
	TaskIcon  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TaskTitle = lipgloss.NewStyle().Bold(true)
	TaskDone  = TaskTitle.Copy().Foreground(Secondary).Strikethrough(true)

	TaskDivider = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")

	Due       = lipgloss.NewStyle().Foreground(Secondary)
	DueUrgent = Due.Copy().Foreground(Orange).Bold(true)
	DuePassed = Due.Copy().Foreground(Faded)

	// Ringing is a task whose reminder went off; it alternates with
	// RingingDim to pulse
	Ringing    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Background(Red)
	RingingDim = lipgloss.NewStyle().Bold(true).Foreground(Red)

	Status    = lipgloss.NewStyle().Foreground(Faded)
	StatusErr = lipgloss.NewStyle().Foreground(Red)
	Badge     = lipgloss.NewStyle().Bold(true).Foreground(Primary).Background(Red).Padding(0, 1)

	priorities = map[task.Priority]lipgloss.Style{
		task.Low:    lipgloss.NewStyle().Foreground(Green),
		task.Medium: lipgloss.NewStyle().Foreground(Yellow),
		task.High:   lipgloss.NewStyle().Foreground(Red),
	}
)

// Priority renders a short priority badge
func Priority(p task.Priority) string {
	s, ok := priorities[p]
	if !ok {
		s = priorities[task.Medium]
	}
	return s.Render(string(p))
}

// Icon is the check box in front of a task
func Icon(done bool) string {
	if done {
		return TaskIcon.Copy().Foreground(Green).Render("✓")
	}
	return TaskIcon.Copy().Foreground(Secondary).Render("•")
}
