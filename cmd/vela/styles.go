package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().Faint(true)

	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)
