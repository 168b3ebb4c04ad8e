package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.TerminalColor
	Faint                                         bool
	BoxUnchecked, BoxChecked                      string
	SymOK, SymFail, SymPending                    string
	Border                                        lipgloss.Border
}

var (
	classic = Theme{
		Name:  "classic",
		Title: lipgloss.NoColor{}, Muted: lipgloss.Color("8"), Accent: lipgloss.Color("12"),
		Success: lipgloss.Color("42"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("214"),
		Faint:        true,
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymOK: "✔", SymFail: "✖", SymPending: "•",
		Border: lipgloss.NormalBorder(),
	}
	neon = Theme{
		Name:  "neon",
		Title: lipgloss.Color("13"), Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
		Success: lipgloss.Color("10"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("11"),
		BoxUnchecked: "◻", BoxChecked: "◼",
		SymOK: "✔", SymFail: "✖", SymPending: "•",
		Border: lipgloss.RoundedBorder(),
	}
	mono = Theme{
		Name:  "mono",
		Title: lipgloss.NoColor{}, Muted: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
		Success: lipgloss.NoColor{}, Error: lipgloss.NoColor{}, Pending: lipgloss.NoColor{},
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymOK: "ok", SymFail: "error:", SymPending: "-",
		Border: lipgloss.ASCIIBorder(),
	}
)

// ThemeByName falls back to classic for unknown names.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return neon
	case "mono":
		return mono
	default:
		return classic
	}
}

type styles struct {
	title, muted, accent, success, pending, fail, done lipgloss.Style
}

func (t Theme) styles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(t.Title),
		muted:   r.NewStyle().Foreground(t.Muted).Faint(t.Faint),
		accent:  r.NewStyle().Foreground(t.Accent),
		success: r.NewStyle().Foreground(t.Success),
		pending: r.NewStyle().Foreground(t.Pending),
		fail:    r.NewStyle().Foreground(t.Error).Bold(true),
		done:    r.NewStyle().Faint(true).Strikethrough(true),
	}
}
