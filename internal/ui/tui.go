// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the decode status view
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI. Callers push StatusMsg updates via program.Send.
func Run() *tea.Program {
	return tea.NewProgram(Model{}, tea.WithAltScreen())
}
