// ABOUTME: Bubbletea model for the decode status TUI
// ABOUTME: Shows stream format, bitrate estimate and decode counters
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
)

// StatusMsg carries a snapshot of the decode loop's observable state.
type StatusMsg struct {
	Source  string
	Format  audio.Format
	VBR     bool
	Bitrate int // bits/sec
	Blocks  int64
	Samples int64
	Errors  int64
	Done    bool
}

// Model represents the TUI state
type Model struct {
	source  string
	format  audio.Format
	vbr     bool
	bitrate int
	blocks  int64
	samples int64
	errors  int64
	done    bool

	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.source = msg.Source
		m.format = msg.Format
		m.vbr = msg.VBR
		m.bitrate = msg.Bitrate
		m.blocks = msg.Blocks
		m.samples = msg.Samples
		m.errors = msg.Errors
		m.done = msg.Done
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := "mpegfeed decoder\n\n"
	s += fmt.Sprintf("  Source:  %s\n", m.source)
	s += m.renderFormat()
	s += m.renderBitrate()
	s += fmt.Sprintf("  Blocks:  %d   Samples: %d   Errors: %d\n", m.blocks, m.samples, m.errors)

	if m.done {
		s += "\n  Stream finished.\n"
	}
	s += "\n  q: quit\n"
	return s
}

func (m Model) renderFormat() string {
	if m.format.SampleRate == 0 {
		return "  Format:  waiting for stream...\n"
	}
	return fmt.Sprintf("  Format:  %d Hz, %d ch, %s\n",
		m.format.SampleRate, m.format.Channels, m.format.Sample)
}

func (m Model) renderBitrate() string {
	mode := "CBR"
	if m.vbr {
		mode = "VBR"
	}
	if m.bitrate == 0 {
		return fmt.Sprintf("  Bitrate: --- (%s)\n", mode)
	}
	return fmt.Sprintf("  Bitrate: %.1f kbit/s (%s)\n", float64(m.bitrate)/1000, mode)
}
