package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/muesli/termenv"
)

// maxTitle keeps list lines on one terminal row.
const maxTitle = 80

// Printer writes styled lines: results to Out, failures to Err.
// Colour is dropped automatically when a stream isn't a terminal.
type Printer struct {
	Out, Err io.Writer

	theme      Theme
	outR, errR *lipgloss.Renderer
	out, err   styles
}

func NewPrinter(out, errw io.Writer, theme Theme, noColor bool) *Printer {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errw)
	if noColor {
		outR.SetColorProfile(termenv.Ascii)
		errR.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		Out:   out,
		Err:   errw,
		theme: theme,
		outR:  outR,
		errR:  errR,
		out:   theme.styles(outR),
		err:   theme.styles(errR),
	}
}

func (p *Printer) Theme() Theme { return p.theme }

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.out.success.Render(p.theme.SymOK+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.err.fail.Render(p.theme.SymFail+" "+msg))
}

// Info prints an unstyled line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.Out, msg)
}

// Hint prints a muted line to Err, used after failures.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.err.muted.Render(msg))
}

// TaskLine renders "☐ [3] title" with the done state styled.
func (p *Printer) TaskLine(t model.Task) string {
	title := Truncate(t.Title, maxTitle)
	id := p.out.muted.Render(fmt.Sprintf("[%d]", t.ID))
	if t.Done {
		return fmt.Sprintf("%s %s %s", p.out.success.Render(p.theme.BoxChecked), id, p.out.done.Render(title))
	}
	return fmt.Sprintf("%s %s %s", p.out.muted.Render(p.theme.BoxUnchecked), id, title)
}

// Header is the title row with counters shown above a task list.
func (p *Printer) Header(title string, done, pending int) string {
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		p.out.title.Render(title),
		p.out.success.Render(p.theme.SymOK), done,
		p.out.pending.Render(p.theme.SymPending), pending,
		p.out.accent.Render("Total"), done+pending,
	)
}

func (p *Printer) Muted(s string) string { return p.out.muted.Render(s) }
