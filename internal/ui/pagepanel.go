package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navcore/internal/browser"
	"github.com/vidyasagar/navcore/internal/theme"
)

// PagePanel shows the summary of the current page: title, address, excerpt
// and numbered links. One link is selected at a time; its href is what the
// status bar shows and what Enter follows.
type PagePanel struct {
	viewport viewport.Model
	ready    bool
	address  string
	page     *browser.Page
	selected int // index into page.Links, -1 for none
	text     string
}

// NewPagePanel creates a new panel (dimensions set on first WindowSizeMsg).
func NewPagePanel() PagePanel {
	return PagePanel{selected: -1}
}

// SetSize updates the panel dimensions.
func (pp *PagePanel) SetSize(width, height int) {
	if !pp.ready {
		pp.viewport = viewport.New(width, height)
		pp.viewport.MouseWheelEnabled = true
		pp.viewport.MouseWheelDelta = 3
		pp.ready = true
	} else {
		pp.viewport.Width = width
		pp.viewport.Height = height
	}
	pp.render()
}

// SetPage shows page for address. A nil page shows the address alone.
func (pp *PagePanel) SetPage(address string, page *browser.Page) {
	pp.address = address
	pp.page = page
	pp.selected = -1
	if page != nil && len(page.Links) > 0 {
		pp.selected = 0
	}
	pp.render()
	if pp.ready {
		pp.viewport.GotoTop()
	}
}

// Page returns the page being shown.
func (pp *PagePanel) Page() *browser.Page {
	return pp.page
}

// Link returns the link with the given 1-based number.
func (pp *PagePanel) Link(n int) (browser.Link, bool) {
	if pp.page == nil || n < 1 || n > len(pp.page.Links) {
		return browser.Link{}, false
	}
	return pp.page.Links[n-1], true
}

// SelectedLink returns the selected link.
func (pp *PagePanel) SelectedLink() (browser.Link, bool) {
	if pp.page == nil || pp.selected < 0 || pp.selected >= len(pp.page.Links) {
		return browser.Link{}, false
	}
	return pp.page.Links[pp.selected], true
}

// SelectNext moves the link selection down, wrapping around.
func (pp *PagePanel) SelectNext() {
	if pp.page == nil || len(pp.page.Links) == 0 {
		return
	}
	pp.selected = (pp.selected + 1) % len(pp.page.Links)
	pp.render()
}

// SelectPrev moves the link selection up, wrapping around.
func (pp *PagePanel) SelectPrev() {
	if pp.page == nil || len(pp.page.Links) == 0 {
		return
	}
	pp.selected = (pp.selected - 1 + len(pp.page.Links)) % len(pp.page.Links)
	pp.render()
}

// SetText replaces the panel with free-form text (help, bookmark lists).
func (pp *PagePanel) SetText(text string) {
	pp.text = text
	pp.render()
	if pp.ready {
		pp.viewport.GotoTop()
	}
}

// ClearText returns to the page view.
func (pp *PagePanel) ClearText() {
	pp.text = ""
	pp.render()
}

// ShowingText reports whether free-form text is displayed.
func (pp *PagePanel) ShowingText() bool {
	return pp.text != ""
}

// Update forwards messages to the viewport.
func (pp *PagePanel) Update(msg tea.Msg) (*PagePanel, tea.Cmd) {
	if !pp.ready {
		return pp, nil
	}
	var cmd tea.Cmd
	pp.viewport, cmd = pp.viewport.Update(msg)
	return pp, cmd
}

// View renders the panel.
func (pp *PagePanel) View() string {
	if !pp.ready {
		return "\n  Initializing..."
	}
	return pp.viewport.View()
}

func (pp *PagePanel) render() {
	if !pp.ready {
		return
	}
	switch {
	case pp.text != "":
		pp.viewport.SetContent(pp.text)
	case pp.address == "":
		pp.viewport.SetContent(renderWelcome())
	default:
		pp.viewport.SetContent(pp.renderPage())
	}
}

func (pp *PagePanel) renderPage() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	textStyle := lipgloss.NewStyle().Foreground(t.Text)
	indexStyle := lipgloss.NewStyle().Foreground(t.LinkIndex)
	linkStyle := lipgloss.NewStyle().Foreground(t.Link)
	selectedStyle := linkStyle.Bold(true).Underline(true)

	var sb strings.Builder
	if pp.page == nil {
		sb.WriteString(titleStyle.Render("  " + pp.address))
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render("  Page summary not loaded."))
		sb.WriteString("\n")
		return sb.String()
	}

	p := pp.page
	sb.WriteString(titleStyle.Render("  " + p.Title))
	sb.WriteString("\n")
	if p.SiteName != "" {
		sb.WriteString(dimStyle.Render("  " + p.SiteName))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s  ·  %d  ·  %s", pp.address, p.StatusCode, p.FetchTime.Round(time.Millisecond))))
	sb.WriteString("\n\n")

	if p.Excerpt != "" {
		width := pp.viewport.Width - 4
		sb.WriteString(textStyle.Width(max(width, 20)).PaddingLeft(2).Render(p.Excerpt))
		sb.WriteString("\n\n")
	}

	if len(p.Links) == 0 {
		sb.WriteString(dimStyle.Render("  No links on this page."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, l := range p.Links {
		style := linkStyle
		marker := "  "
		if i == pp.selected {
			style = selectedStyle
			marker = "› "
		}
		sb.WriteString(marker)
		sb.WriteString(indexStyle.Render(fmt.Sprintf("[%d]", l.Index)))
		sb.WriteString(" ")
		sb.WriteString(style.Render(l.Text))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderWelcome() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Secondary)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("\n  navcore"))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("  back, forward, home and bookmarks for the terminal"))
	sb.WriteString("\n\n")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"o", "Open an address"},
		{"H / L", "Go back / forward"},
		{"gh", "Go home"},
		{"S", "Set current page as home"},
		{"B / '", "Add / open bookmark"},
		{"f", "Follow link by number"},
		{"?", "Show all keybindings"},
		{"q", "Quit"},
	}

	for _, s := range shortcuts {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("  %-10s", s.key)))
		sb.WriteString(descStyle.Render(s.desc))
		sb.WriteString("\n")
	}

	return sb.String()
}
