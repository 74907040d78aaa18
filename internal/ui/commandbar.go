package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navcore/internal/theme"
)

// CommandType identifies what the prompt is asking for.
type CommandType int

const (
	CommandNone   CommandType = iota
	CommandEx                 // : commands
	CommandFollow             // link number
	CommandMark               // name for a new bookmark
	CommandJump               // bookmark to open
)

type promptSpec struct {
	prompt      string
	placeholder string
	remember    bool // keep submitted values for up/down recall
}

var prompts = map[CommandType]promptSpec{
	CommandEx:     {":", "open ADDR | back | forward | home | mark NAME | go NAME | marks", true},
	CommandFollow: {"follow ", "link number", false},
	CommandMark:   {"bookmark as ", "name", false},
	CommandJump:   {"open bookmark ", "name (Tab completes)", true},
}

// CommandResult is emitted when a prompt is submitted.
type CommandResult struct {
	Type  CommandType
	Value string
}

// recall is the submitted-value history of one prompt type. pos is -1
// while the user is typing fresh input.
type recall struct {
	entries []string
	pos     int
}

func (r *recall) add(v string) {
	if n := len(r.entries); n > 0 && r.entries[n-1] == v {
		return
	}
	r.entries = append(r.entries, v)
}

func (r *recall) older() (string, bool) {
	if r.pos >= len(r.entries)-1 {
		return "", false
	}
	r.pos++
	return r.entries[len(r.entries)-1-r.pos], true
}

func (r *recall) newer() (string, bool) {
	if r.pos <= 0 {
		r.pos = -1
		return "", false
	}
	r.pos--
	return r.entries[len(r.entries)-1-r.pos], true
}

// CommandBar is the one-line prompt under the status bar.
type CommandBar struct {
	input   textinput.Model
	cmdType CommandType
	width   int
	recalls map[CommandType]*recall
}

// NewCommandBar creates a closed command bar.
func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.ShowSuggestions = true

	return CommandBar{
		input:   ti,
		recalls: make(map[CommandType]*recall),
	}
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// Open activates the prompt for ct.
func (c *CommandBar) Open(ct CommandType) tea.Cmd {
	p := prompts[ct]
	c.cmdType = ct
	c.input.Reset()
	c.input.Prompt = p.prompt
	c.input.Placeholder = p.placeholder
	c.input.SetSuggestions(nil)
	if r, ok := c.recalls[ct]; ok {
		r.pos = -1
	}
	return c.input.Focus()
}

// SetSuggestions sets the completions offered while typing.
func (c *CommandBar) SetSuggestions(s []string) {
	c.input.SetSuggestions(s)
}

// Close deactivates the command bar.
func (c *CommandBar) Close() {
	c.cmdType = CommandNone
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the command bar is open.
func (c *CommandBar) IsActive() bool {
	return c.cmdType != CommandNone
}

// SetValue pre-fills the prompt.
func (c *CommandBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.CursorEnd()
}

// Type returns the open prompt type.
func (c *CommandBar) Type() CommandType {
	return c.cmdType
}

// Submit closes the bar and returns the trimmed input.
func (c *CommandBar) Submit() CommandResult {
	result := CommandResult{
		Type:  c.cmdType,
		Value: strings.TrimSpace(c.input.Value()),
	}
	if result.Value != "" && prompts[c.cmdType].remember {
		r, ok := c.recalls[c.cmdType]
		if !ok {
			r = &recall{pos: -1}
			c.recalls[c.cmdType] = r
		}
		r.add(result.Value)
	}
	c.Close()
	return result
}

// Update handles Esc, recall with up/down and text input. Enter is left to
// the caller, which calls Submit.
func (c *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	if !c.IsActive() {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			c.Close()
			return c, nil
		case tea.KeyEnter:
			return c, nil
		case tea.KeyUp, tea.KeyDown:
			r, ok := c.recalls[c.cmdType]
			if !ok {
				return c, nil
			}
			step := r.older
			if msg.Type == tea.KeyDown {
				step = r.newer
			}
			if v, ok := step(); ok {
				c.SetValue(v)
			} else if msg.Type == tea.KeyDown {
				c.input.Reset()
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the command bar.
func (c *CommandBar) View() string {
	if !c.IsActive() {
		return ""
	}

	t := theme.Current
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width).
		Render(c.input.View())
}
