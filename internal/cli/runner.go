package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/jsonstore"
	"github.com/idilsaglam/tasks/internal/tracker"
	"github.com/idilsaglam/tasks/internal/ui"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Run decodes args, runs one command and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	v := config.New()
	var decoded Command
	root := newRootCmd(v, &decoded)
	root.SetArgs(markNegativeIDs(args))
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err != nil {
		var ue UsageError
		if !errors.As(err, &ue) {
			ue = UsageError{Err: err}
		}
		decoded = ue
	}
	if decoded == nil {
		// help or version was printed
		return ExitOK
	}

	r := &runner{
		p:     ui.NewPrinter(stdout, stderr, ui.ThemeByName("classic"), false),
		log:   log.New(io.Discard),
		usage: cmd,
	}
	if _, ok := decoded.(UsageError); !ok {
		cfg, err := config.Load(v)
		if err != nil {
			r.p.Fail(err.Error())
			return ExitError
		}
		r.cfg = cfg
		r.p = ui.NewPrinter(stdout, stderr, ui.ThemeByName(cfg.Theme), cfg.NoColor)
		r.log = newLogger(stderr, cfg.LogLevel)
	}
	return r.dispatch(decoded)
}

func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "tasks",
	})
}

type runner struct {
	cfg   *config.Config
	p     *ui.Printer
	log   *log.Logger
	usage *cobra.Command
}

func (r *runner) dispatch(c Command) int {
	switch c := c.(type) {
	case UsageError:
		return r.doUsage(c)
	case AddCmd:
		return r.withTracker(func(t *tracker.Tracker) int { return r.doAdd(t, c) })
	case ListCmd:
		return r.withTracker(func(t *tracker.Tracker) int { return r.doList(t, c) })
	case DoneCmd:
		return r.withTracker(func(t *tracker.Tracker) int { return r.doDone(t, c) })
	case DeleteCmd:
		return r.withTracker(func(t *tracker.Tracker) int { return r.doDelete(t, c) })
	}
	r.p.Fail(fmt.Sprintf("unhandled command %T", c))
	return ExitError
}

// withTracker loads the store for one command.
func (r *runner) withTracker(fn func(*tracker.Tracker) int) int {
	st := jsonstore.New(r.cfg.File, jsonstore.WithLogger(r.log))
	t, err := tracker.Open(st, tracker.WithLogger(r.log))
	if err != nil {
		return r.fail(err)
	}
	return fn(t)
}

// -------------- subcommand impls ----------------

func (r *runner) doUsage(c UsageError) int {
	r.p.Fail(c.Error())
	if r.usage != nil {
		fmt.Fprint(r.p.Err, "\n"+r.usage.UsageString())
	}
	return ExitUsage
}

func (r *runner) doAdd(t *tracker.Tracker, c AddCmd) int {
	task, err := t.Add(c.Title)
	if err != nil {
		return r.fail(err)
	}
	r.p.OK("Added: " + task.String())
	return ExitOK
}

func (r *runner) doList(t *tracker.Tracker, c ListCmd) int {
	if c.Interactive {
		changed, err := ui.RunInteractive(t, r.p)
		if err != nil {
			return r.fail(err)
		}
		if changed {
			r.p.OK("saved")
		}
		return ExitOK
	}

	visible := t.List(c.All)
	switch c.Format {
	case FormatJSON:
		return r.export(writeJSON, visible)
	case FormatYAML:
		return r.export(writeYAML, visible)
	}

	all, done, pending := t.All()
	if len(all) == 0 {
		r.p.Info(`No tasks yet. Add one with: tasks add "Task title"`)
		return ExitOK
	}
	if len(visible) == 0 {
		r.p.Info("All tasks are completed (use --all to view history)")
		return ExitOK
	}

	lines := []string{
		r.p.Header("Tasks", done, pending),
		r.p.Muted(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	if c.Group {
		lines = append(lines, r.groupLines(visible)...)
	} else {
		lines = append(lines, r.flatLines(visible)...)
	}
	r.p.Panel(lines)
	return ExitOK
}

func (r *runner) doDone(t *tracker.Tracker, c DoneCmd) int {
	task, changed, err := t.Complete(c.ID)
	if err != nil {
		return r.fail(err)
	}
	if !changed {
		r.p.Info("Already done: " + task.String())
		return ExitOK
	}
	r.p.OK("Done: " + task.String())
	return ExitOK
}

func (r *runner) doDelete(t *tracker.Tracker, c DeleteCmd) int {
	task, err := t.Remove(c.ID)
	if err != nil {
		return r.fail(err)
	}
	r.p.OK("Deleted: " + task.String())
	return ExitOK
}

func (r *runner) export(write func(io.Writer, []model.Task) error, tasks []model.Task) int {
	if err := write(r.p.Out, tasks); err != nil {
		return r.fail(err)
	}
	return ExitOK
}

// fail reports a store error. Every kind is terminal for the invocation.
func (r *runner) fail(err error) int {
	r.p.Fail(err.Error())
	if errors.Is(err, tracker.ErrNotFound) {
		r.p.Hint("Hint: run `tasks list --all` to see valid ids")
	}
	r.log.Debug("command failed", "err", err)
	return ExitError
}

// -------------- rendering helpers --------------

func (r *runner) flatLines(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, r.p.TaskLine(t))
	}
	return out
}

func (r *runner) groupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Done {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, "Pending")
	if len(pend) == 0 {
		lines = append(lines, r.p.Muted("(none)"))
	} else {
		lines = append(lines, r.flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, "Done")
	if len(done) == 0 {
		lines = append(lines, r.p.Muted("(none)"))
	} else {
		lines = append(lines, r.flatLines(done)...)
	}
	return lines
}
