package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette used by the shell. Nav controls that are disabled
// (no previous page, no home yet) are drawn in TextDim.
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color

	Background  lipgloss.Color
	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Link      lipgloss.Color
	LinkIndex lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color
}

// palette holds the base colors a Theme is derived from.
type palette struct {
	fg, dim, bg, surface, border string
	primary, secondary, link     string
	red, green, yellow, blue     string
}

func (p palette) theme(name string) Theme {
	return Theme{
		Name:        name,
		Primary:     lipgloss.Color(p.primary),
		Secondary:   lipgloss.Color(p.secondary),
		Accent:      lipgloss.Color(p.yellow),
		Text:        lipgloss.Color(p.fg),
		TextDim:     lipgloss.Color(p.dim),
		Background:  lipgloss.Color(p.bg),
		Surface:     lipgloss.Color(p.surface),
		Border:      lipgloss.Color(p.border),
		BorderFocus: lipgloss.Color(p.primary),
		Link:        lipgloss.Color(p.link),
		LinkIndex:   lipgloss.Color(p.yellow),
		Error:       lipgloss.Color(p.red),
		Success:     lipgloss.Color(p.green),
		Warning:     lipgloss.Color(p.yellow),
		Info:        lipgloss.Color(p.blue),
	}
}

var (
	Default = palette{
		fg: "#E5E7EB", dim: "#6B7280", bg: "#111827", surface: "#1F2937", border: "#374151",
		primary: "#14B8A6", secondary: "#818CF8", link: "#60A5FA",
		red: "#F87171", green: "#4ADE80", yellow: "#FBBF24", blue: "#3B82F6",
	}.theme("default")

	Light = palette{
		fg: "#1F2937", dim: "#9CA3AF", bg: "#FFFFFF", surface: "#F3F4F6", border: "#D1D5DB",
		primary: "#0F766E", secondary: "#4F46E5", link: "#1D4ED8",
		red: "#B91C1C", green: "#15803D", yellow: "#B45309", blue: "#1E40AF",
	}.theme("light")

	Solarized = palette{
		fg: "#839496", dim: "#586E75", bg: "#002B36", surface: "#073642", border: "#0A4A5A",
		primary: "#268BD2", secondary: "#2AA198", link: "#6C71C4",
		red: "#DC322F", green: "#859900", yellow: "#B58900", blue: "#268BD2",
	}.theme("solarized")

	Mono = palette{
		fg: "#D4D4D4", dim: "#737373", bg: "#0A0A0A", surface: "#262626", border: "#404040",
		primary: "#FAFAFA", secondary: "#A3A3A3", link: "#E5E5E5",
		red: "#FAFAFA", green: "#D4D4D4", yellow: "#E5E5E5", blue: "#A3A3A3",
	}.theme("mono")
)

var themes = map[string]Theme{
	Default.Name:   Default,
	Light.Name:     Light,
	Solarized.Name: Solarized,
	Mono.Name:      Mono,
}

// Current is the active theme.
var Current = Default

// Lookup returns the theme registered under name.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// Set changes the active theme by name.
func Set(name string) bool {
	t, ok := Lookup(name)
	if ok {
		Current = t
	}
	return ok
}

// List returns all available theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
