// Package ui provides theme and color support for terminal output. It holds
// the ANSI palette used by progress and report lines and the lipgloss
// palette used by the styled batch summary.
package ui
