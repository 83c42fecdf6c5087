package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tasknest/tasknest/todo"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
)

// categorySwatch renders a category name with a block of its color.
func categorySwatch(category todo.Category) string {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(category.Color)).Render("█")
	return swatch + " " + category.Name
}
