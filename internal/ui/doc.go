// Package ui provides terminal color themes and lipgloss styles for CLI
// output, with NO_COLOR support for accessibility.
package ui
