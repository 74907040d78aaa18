package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navcore/internal/theme"
)

// HistoryItem is one session history entry as shown in the panel.
type HistoryItem struct {
	Address string
	Title   string // empty when the page summary is not cached
}

// HistoryPanel lists the session history with the navigation cursor marked.
// It has its own selection so the user can scroll without moving the cursor.
type HistoryPanel struct {
	items    []HistoryItem
	current  int // navigation cursor, -1 when empty
	selected int
	offset   int // scroll offset for visible window
	width    int
	height   int
	visible  bool
}

// NewHistoryPanel creates a new history panel.
func NewHistoryPanel() HistoryPanel {
	return HistoryPanel{current: -1}
}

// SetItems replaces the entries and moves the selection to the cursor.
func (hp *HistoryPanel) SetItems(items []HistoryItem, current int) {
	hp.items = items
	hp.current = current
	hp.selected = current
	if hp.selected < 0 {
		hp.selected = 0
	}
	hp.ensureVisible()
}

// SetSize updates the panel dimensions.
func (hp *HistoryPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
	hp.ensureVisible()
}

// Show makes the panel visible.
func (hp *HistoryPanel) Show() {
	hp.visible = true
}

// Hide closes the panel.
func (hp *HistoryPanel) Hide() {
	hp.visible = false
}

// IsVisible reports whether the panel is shown.
func (hp *HistoryPanel) IsVisible() bool {
	return hp.visible
}

// CursorUp moves the selection up one entry.
func (hp *HistoryPanel) CursorUp() {
	if hp.selected > 0 {
		hp.selected--
		hp.ensureVisible()
	}
}

// CursorDown moves the selection down one entry.
func (hp *HistoryPanel) CursorDown() {
	if hp.selected < len(hp.items)-1 {
		hp.selected++
		hp.ensureVisible()
	}
}

// Selected returns the selected entry.
func (hp *HistoryPanel) Selected() (HistoryItem, bool) {
	if hp.selected < 0 || hp.selected >= len(hp.items) {
		return HistoryItem{}, false
	}
	return hp.items[hp.selected], true
}

// visibleCount returns how many entries fit. Each entry takes 2 lines and
// the header takes 2.
func (hp *HistoryPanel) visibleCount() int {
	count := (hp.height - 3) / 2
	if count < 1 {
		count = 1
	}
	return count
}

func (hp *HistoryPanel) ensureVisible() {
	visible := hp.visibleCount()
	if hp.selected < hp.offset {
		hp.offset = hp.selected
	}
	if hp.selected >= hp.offset+visible {
		hp.offset = hp.selected - visible + 1
	}
	if hp.offset < 0 {
		hp.offset = 0
	}
}

// View renders the history panel.
func (hp *HistoryPanel) View() string {
	if !hp.visible {
		return ""
	}

	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(hp.width).
		Height(hp.height).
		Background(t.Background)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(hp.width).
		Padding(0, 1)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Bold(true).
		Width(hp.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(hp.width).
		Padding(0, 1)

	addrStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Width(hp.width).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("History (%d)", len(hp.items))))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", max(hp.width-2, 1))))
	sb.WriteString("\n")

	if len(hp.items) == 0 {
		sb.WriteString(addrStyle.Render("No pages visited yet."))
		return panelStyle.Render(sb.String())
	}

	end := min(hp.offset+hp.visibleCount(), len(hp.items))
	maxLen := max(hp.width-6, 10)

	for i := hp.offset; i < end; i++ {
		item := hp.items[i]
		title := item.Title
		if title == "" {
			title = item.Address
		}

		marker := "  "
		if i == hp.current {
			marker = "▶ "
		}

		style := normalStyle
		if i == hp.selected {
			style = selectedStyle
		}
		sb.WriteString(style.Render(marker + clip(title, maxLen)))
		sb.WriteString("\n")
		sb.WriteString(addrStyle.Render("  " + clip(item.Address, maxLen)))
		sb.WriteString("\n")
	}

	return panelStyle.Render(sb.String())
}

// clip shortens s to n runes with a trailing ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
