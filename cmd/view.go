package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/identityprobe/pkg/probe"
)

var colorSuccess = lipgloss.Color("#00B785")

var styleHealthy = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
var styleUnhealthy = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1244c")).Bold(true)
var styleMisconfigured = lipgloss.NewStyle().Foreground(lipgloss.Color("#e08dff")).Bold(true)
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)
var styleDescription = lipgloss.NewStyle().Foreground(lipgloss.Color("#5D689C"))

func probeStatusLine(name string, status probe.Status, description string) string {
	marker, style := "◼︎", styleUnhealthy
	switch status {
	case probe.StatusHealthy:
		marker, style = "▶︎", styleHealthy
	case probe.StatusMisconfigured:
		style = styleMisconfigured
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		style.Render(marker), " ",
		styleHighlight.Render(name), " (",
		style.Render(string(status)), "): ",
		styleDescription.Render(description),
	)
}
