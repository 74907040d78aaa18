package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navcore/internal/theme"
)

// StatusBar shows the mode, page title or a message, and the history
// position at the bottom of the screen.
type StatusBar struct {
	title     string
	loading   bool
	mode      string
	linkCount int
	position  string
	width     int
	message   string // temporary status message
	isError   bool
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "NORMAL",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetTitle updates the page title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetMode sets the current mode indicator (NORMAL, INSERT, COMMAND, etc).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the mode indicator.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetLinkCount sets the total link count displayed.
func (s *StatusBar) SetLinkCount(n int) {
	s.linkCount = n
}

// SetPosition shows the history position, e.g. cursor 2 of 5 as "3/5".
func (s *StatusBar) SetPosition(cursor, total int) {
	if total == 0 {
		s.position = ""
		return
	}
	s.position = fmt.Sprintf("%d/%d", cursor+1, total)
}

// SetMessage sets a temporary informational message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets a temporary error message.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// ClearMessage removes any temporary message.
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.isError = false
}

// Message returns the temporary message and whether it is an error.
func (s *StatusBar) Message() (string, bool) {
	return s.message, s.isError
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeBg := t.Secondary
	switch s.mode {
	case "NORMAL":
		modeBg = t.Primary
	case "INSERT":
		modeBg = t.Success
	case "COMMAND":
		modeBg = t.Accent
	case "FOLLOW":
		modeBg = t.Link
	case "MARK", "JUMP":
		modeBg = t.Warning
	}
	mode := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background).
		Background(modeBg).
		Render(s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	leftStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Padding(0, 1)

	var left string
	switch {
	case s.loading:
		left = leftStyle.Foreground(t.Warning).Bold(true).Render("Loading...")
	case s.message != "" && s.isError:
		left = leftStyle.Foreground(t.Error).Render(s.message)
	case s.message != "":
		left = leftStyle.Foreground(t.Info).Render(s.message)
	case s.title != "":
		left = leftStyle.Foreground(t.Text).Render(s.title)
	}

	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	var right string
	if s.linkCount > 0 {
		right += rightStyle.Render(fmt.Sprintf("%d links", s.linkCount))
	}
	if s.position != "" {
		right += rightStyle.Bold(true).Foreground(t.Secondary).Render(s.position)
	}

	spacerWidth := max(s.width-lipgloss.Width(mode)-lipgloss.Width(left)-lipgloss.Width(right), 0)
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
