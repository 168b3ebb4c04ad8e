package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/tasks/internal/model"
)

// Actions is what the interactive list needs from the tracker. Every key
// press goes through it, so each change is validated and saved on its own.
type Actions interface {
	Add(title string) (model.Task, error)
	Complete(id int) (model.Task, bool, error)
	Remove(id int) (model.Task, error)
	List(includeDone bool) []model.Task
}

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.task.Title }

// Single-line delegate
type itemDelegate struct {
	st    styles
	theme Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := d.st.muted.Render(d.theme.BoxUnchecked)
	title := Truncate(it.task.Title, maxTitle)
	if it.task.Done {
		box = d.st.success.Render(d.theme.BoxChecked)
		title = d.st.done.Render(title)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.st.title.Reverse(true).Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, box, d.st.muted.Render(fmt.Sprintf("[%d]", it.task.ID)), title)
}

var (
	completeKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done"))
	deleteKey   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	addKey      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	quitKey     = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit"))
)

type modelTUI struct {
	actions Actions
	list    list.Model
	st      styles
	theme   Theme
	width   int
	height  int

	// Inline add
	adding bool
	ti     textinput.Model

	status  string
	failure bool
	changed bool
}

func newModelTUI(actions Actions, theme Theme, r *lipgloss.Renderer) modelTUI {
	st := theme.styles(r)
	l := list.New(nil, itemDelegate{st: st, theme: theme}, 76, 19)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = st.title
	l.Styles.HelpStyle = st.muted
	l.Styles.PaginationStyle = st.muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	bindings := func() []key.Binding { return []key.Binding{completeKey, deleteKey, addKey} }
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task title..."
	ti.CharLimit = 200

	m := modelTUI{
		actions: actions,
		list:    l,
		st:      st,
		theme:   theme,
		width:   80,
		height:  24,
		ti:      ti,
	}
	m.refresh()
	return m
}

// refresh reloads items from the tracker and keeps the cursor in range.
func (m *modelTUI) refresh() {
	tasks := m.actions.List(true)
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, listItem{task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	done, pending := model.Stats(tasks)
	m.list.Title = fmt.Sprintf("Tasks   %s %d  %s %d",
		m.st.success.Render(m.theme.SymOK), done,
		m.st.pending.Render(m.theme.SymPending), pending)
}

func (m *modelTUI) report(msg string, err error) {
	if err != nil {
		m.status, m.failure = err.Error(), true
		return
	}
	m.status, m.failure = msg, false
	m.changed = true
}

func (m *modelTUI) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.task, ok
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(m.width-4, m.height-5)
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, quitKey):
		if m.list.FilterState() == list.FilterApplied && km.String() == "esc" {
			break
		}
		return m, tea.Quit
	case key.Matches(km, completeKey):
		if t, ok := m.selected(); ok {
			task, changed, err := m.actions.Complete(t.ID)
			switch {
			case err != nil:
				m.report("", err)
			case changed:
				m.report("Done: "+task.String(), nil)
			default:
				m.status, m.failure = "Already done: "+task.String(), false
			}
			m.refresh()
		}
		return m, nil
	case key.Matches(km, deleteKey):
		if t, ok := m.selected(); ok {
			task, err := m.actions.Remove(t.ID)
			m.report("Deleted: "+task.String(), err)
			m.refresh()
		}
		return m, nil
	case key.Matches(km, addKey):
		m.adding = true
		m.status = ""
		m.ti.SetValue("")
		m.ti.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			task, err := m.actions.Add(m.ti.Value())
			if err != nil {
				m.report("", err)
				return m, nil
			}
			m.report("Added: "+task.String(), nil)
			m.adding = false
			m.ti.Blur()
			m.refresh()
			m.list.Select(len(m.list.Items()) - 1)
			return m, nil
		case "esc":
			m.adding = false
			m.status = ""
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	listHeight := m.height - 5
	if m.adding {
		listHeight -= 3
	}
	m.list.SetSize(m.width-4, listHeight)

	parts := []string{m.list.View()}
	if m.adding {
		bar := lipgloss.NewStyle().Border(m.theme.Border).BorderForeground(m.theme.Muted).Padding(0, 1)
		parts = append(parts, bar.Render("Add task\n"+m.ti.View()))
	}
	if m.status != "" {
		st := m.st.success
		if m.failure {
			st = m.st.fail
		}
		parts = append(parts, st.Render(m.status))
	}
	frame := lipgloss.NewStyle().Border(m.theme.Border).BorderForeground(m.theme.Muted).Padding(0, 1)
	return frame.Render(strings.Join(parts, "\n"))
}

// RunInteractive opens the full-screen list. It reports whether anything was saved.
func RunInteractive(actions Actions, p *Printer) (bool, error) {
	m := newModelTUI(actions, p.theme, p.outR)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(p.Out))
	final, err := prog.Run()
	if err != nil {
		return false, fmt.Errorf("interactive list: %w", err)
	}
	fm, ok := final.(modelTUI)
	if !ok {
		return false, errors.New("interactive list: unexpected model")
	}
	return fm.changed, nil
}
