package cli

import "github.com/charmbracelet/lipgloss"

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	nameStyle = lipgloss.NewStyle().Bold(true)
	roleStyle = lipgloss.NewStyle().Faint(true)
)
