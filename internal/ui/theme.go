package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles palette + symbols.
// All render helpers pull from the Theme passed in the View.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Cursor, Done, Help, Tab, ActiveTab  lipgloss.Style
	Border                                        lipgloss.Color
	BoxUnchecked, BoxChecked                      string
	SymDirty, SymCursor                           string
}

type palette struct {
	text, subtext, overlay, blue, green, red, yellow, mauve lipgloss.Color
}

// Catppuccin Frappe and Latte, as in the desktop original.
var (
	frappe = palette{
		text: "#c6d0f5", subtext: "#a5adce", overlay: "#737994",
		blue: "#8caaee", green: "#a6d189", red: "#e78284", yellow: "#e5c890", mauve: "#ca9ee6",
	}
	latte = palette{
		text: "#4c4f69", subtext: "#6c6f85", overlay: "#9ca0b0",
		blue: "#1e66f5", green: "#40a02b", red: "#d20f39", yellow: "#df8e1d", mauve: "#8839ef",
	}
)

// NewTheme returns the dark or light theme.
func NewTheme(dark bool) Theme {
	p := latte
	if dark {
		p = frappe
	}
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.mauve),
		Muted:     lipgloss.NewStyle().Foreground(p.overlay),
		Accent:    lipgloss.NewStyle().Foreground(p.blue),
		Success:   lipgloss.NewStyle().Foreground(p.green),
		Error:     lipgloss.NewStyle().Foreground(p.red).Bold(true),
		Pending:   lipgloss.NewStyle().Foreground(p.yellow),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(p.blue),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(p.mauve),
		Done:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:      lipgloss.NewStyle().Foreground(p.subtext),
		Tab:       lipgloss.NewStyle().Foreground(p.subtext).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(p.text).Background(p.overlay).Padding(0, 1),
		Border:    p.overlay,

		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		SymDirty:     "*",
		SymCursor:    "> ",
	}
}
