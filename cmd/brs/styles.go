package main

import "github.com/charmbracelet/lipgloss"

var (
	upColor      = lipgloss.Color("#04d569")
	downColor    = lipgloss.Color("#e2522e")
	borderColor  = lipgloss.Color("#374151")
	focusColor   = lipgloss.Color("#7C3AED")
	textColor    = lipgloss.Color("#F9FAFB")
	dimTextColor = lipgloss.Color("#9CA3AF")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	focusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focusColor).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(focusColor).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dimTextColor)

	rowStyle = lipgloss.NewStyle().
			Foreground(textColor)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(lipgloss.Color("#374151"))

	priceUpStyle   = lipgloss.NewStyle().Foreground(upColor)
	priceDownStyle = lipgloss.NewStyle().Foreground(downColor)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(dimTextColor).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(focusColor).
			Bold(true)
)
