package ui

import (
	"fmt"
	"strings"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func (p *Printer) Panel(lines []string) {
	box := p.outR.NewStyle().
		Border(p.theme.Border).
		BorderForeground(p.theme.Muted).
		Padding(0, 1)
	fmt.Fprintln(p.Out, box.Render(strings.Join(lines, "\n")))
}

// Truncate shortens s to at most max runes, ending in "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}
