package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navcore/internal/theme"
)

// Controls mirrors the navigation queries the bar's buttons depend on.
type Controls struct {
	Back    bool
	Forward bool
	Home    bool
}

// controlsWidth is the rendered width of the buttons, the prompt and the
// border padding.
const controlsWidth = 18

// URLBar is the address input with back/forward/home indicators. Between
// edits it shows the current address.
type URLBar struct {
	input    textinput.Model
	width    int
	controls Controls
}

// NewURLBar creates an unfocused address bar.
func NewURLBar() URLBar {
	ti := textinput.New()
	ti.Placeholder = "address, path relative to this page, or host"
	ti.CharLimit = 2048
	ti.Prompt = ""
	return URLBar{input: ti}
}

// SetWidth resizes the bar.
func (u *URLBar) SetWidth(w int) {
	u.width = w
	u.input.Width = max(w-controlsWidth, 1)
}

// SetControls updates which buttons are enabled.
func (u *URLBar) SetControls(c Controls) {
	u.controls = c
}

// Controls returns the button state.
func (u *URLBar) Controls() Controls {
	return u.controls
}

// Focus starts editing.
func (u *URLBar) Focus() tea.Cmd {
	u.input.CursorEnd()
	return u.input.Focus()
}

// Blur stops editing.
func (u *URLBar) Blur() {
	u.input.Blur()
}

// IsActive reports whether the bar is being edited.
func (u *URLBar) IsActive() bool {
	return u.input.Focused()
}

// Value returns the text in the bar.
func (u *URLBar) Value() string {
	return u.input.Value()
}

// SetValue replaces the text in the bar.
func (u *URLBar) SetValue(s string) {
	u.input.SetValue(s)
}

// Reset clears the bar.
func (u *URLBar) Reset() {
	u.input.Reset()
}

// Update passes key input to the text field while editing.
func (u *URLBar) Update(msg tea.Msg) (*URLBar, tea.Cmd) {
	if !u.IsActive() {
		return u, nil
	}
	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return u, cmd
}

// View renders the bar.
func (u *URLBar) View() string {
	t := theme.Current

	style := lipgloss.NewStyle().
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(u.width-2, 1))
	if u.IsActive() {
		style = style.Foreground(t.Text).BorderForeground(t.BorderFocus)
	} else {
		style = style.Foreground(t.TextDim).BorderForeground(t.Border)
	}

	prompt := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("›")
	return style.Render(u.controlsView() + "  " + prompt + " " + u.input.View())
}

func (u *URLBar) controlsView() string {
	t := theme.Current
	on := lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	off := lipgloss.NewStyle().Foreground(t.TextDim)

	buttons := []struct {
		label   string
		enabled bool
	}{
		{"◀", u.controls.Back},
		{"▶", u.controls.Forward},
		{"⌂", u.controls.Home},
	}
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		if b.enabled {
			parts[i] = on.Render(b.label)
		} else {
			parts[i] = off.Render(b.label)
		}
	}
	return strings.Join(parts, " ")
}
