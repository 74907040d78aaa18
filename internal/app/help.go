package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
)

var (
	helpRendererMu    sync.Mutex
	helpRenderer      *glamour.TermRenderer
	helpRendererWidth int
)

// exCommands lists the : commands shown in help.
var exCommands = []struct{ cmd, desc string }{
	{":open ADDR", "Visit an address"},
	{":back", "Go back"},
	{":forward", "Go forward"},
	{":home", "Visit the home address"},
	{":sethome", "Make the current page home"},
	{":mark NAME", "Bookmark the current page"},
	{":go NAME", "Visit a bookmark"},
	{":marks [GLOB]", "List bookmarks, optionally filtered"},
	{":history", "Toggle the history panel"},
	{":reload", "Fetch the current page again"},
	{":theme [NAME]", "Show or change the theme"},
	{":q", "Quit"},
}

// helpMarkdown builds the help page from the key map, so the text never
// drifts from the actual bindings.
func helpMarkdown(keys KeyMap) string {
	sections := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{keys.OpenURL, keys.Back, keys.Forward, keys.Home, keys.SetHome, keys.Reload}},
		{"Bookmarks", []key.Binding{keys.Bookmark, keys.OpenBookmark}},
		{"Links", []key.Binding{keys.FollowLink, keys.NextLink, keys.PrevLink, keys.OpenLink}},
		{"Scrolling", []key.Binding{keys.ScrollDown, keys.ScrollUp, keys.HalfPageDown, keys.HalfPageUp}},
		{"Other", []key.Binding{keys.CommandMode, keys.HistoryToggle, keys.Help, keys.Quit}},
	}

	var sb strings.Builder
	sb.WriteString("# navcore keybindings\n\n")
	for _, s := range sections {
		fmt.Fprintf(&sb, "## %s\n\n| Key | Action |\n|---|---|\n", s.name)
		for _, b := range s.bindings {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Commands\n\n| Command | Action |\n|---|---|\n")
	for _, c := range exCommands {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", c.cmd, c.desc)
	}
	sb.WriteString("\nPress `Esc` or `?` to close this page.\n")
	return sb.String()
}

// renderHelp renders the help page with glamour. The renderer is reused
// until the width changes. On error the raw markdown is returned.
func renderHelp(keys KeyMap, width int) string {
	md := helpMarkdown(keys)
	if width <= 0 {
		width = 80
	}

	helpRendererMu.Lock()
	defer helpRendererMu.Unlock()

	if helpRenderer == nil || helpRendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		helpRenderer = r
		helpRendererWidth = width
	}

	out, err := helpRenderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
