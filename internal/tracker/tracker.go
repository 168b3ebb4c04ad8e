// Package tracker applies task operations to a loaded snapshot and persists
// the result. Every mutation is validated first and committed only after the
// store accepted it, so a failed call leaves both memory and disk unchanged.
package tracker

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/idilsaglam/tasks/internal/model"
)

// Store loads and saves whole snapshots.
type Store interface {
	Load() (*model.Snapshot, error)
	Save(*model.Snapshot) error
}

type Tracker struct {
	store Store
	snap  *model.Snapshot
	now   func() time.Time
	log   *log.Logger
}

type Option func(*Tracker)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// Open loads the store once; all later operations work on that snapshot.
func Open(store Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: store,
		now:   time.Now,
		log:   log.New(io.Discard),
	}
	for _, o := range opts {
		o(t)
	}
	snap, err := store.Load()
	if err != nil {
		return nil, err
	}
	t.snap = snap
	return t, nil
}

// Add creates a pending task with the next free ID.
func (t *Tracker) Add(title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrInvalidTitle
	}

	next := t.snap.Clone()
	id := next.NextID()
	if id > model.MaxID {
		return model.Task{}, ErrIDsExhausted
	}
	task := model.Task{
		ID:        id,
		Title:     title,
		CreatedAt: model.NewTimestamp(t.now()),
	}
	next.Tasks = append(next.Tasks, task)
	next.LastID = task.ID

	if err := t.commit(next); err != nil {
		return model.Task{}, err
	}
	t.log.Debug("added", "id", task.ID)
	return task, nil
}

// Complete marks a task done. Completing a done task succeeds without writing;
// changed reports whether anything was saved.
func (t *Tracker) Complete(id int) (task model.Task, changed bool, err error) {
	i := model.FindByID(t.snap.Tasks, id)
	if i < 0 {
		return model.Task{}, false, &NotFoundError{ID: id}
	}
	if t.snap.Tasks[i].Done {
		return t.snap.Tasks[i], false, nil
	}

	next := t.snap.Clone()
	next.Tasks[i].Done = true
	next.Tasks[i].CompletedAt = model.NewTimestamp(t.now())

	if err := t.commit(next); err != nil {
		return model.Task{}, false, err
	}
	t.log.Debug("completed", "id", id)
	return next.Tasks[i], true, nil
}

// Remove deletes the first task with id. Remaining IDs are left alone.
func (t *Tracker) Remove(id int) (model.Task, error) {
	i := model.FindByID(t.snap.Tasks, id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}

	removed := t.snap.Tasks[i]
	next := t.snap.Clone()
	next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)

	if err := t.commit(next); err != nil {
		return model.Task{}, err
	}
	t.log.Debug("removed", "id", id)
	return removed, nil
}

// List returns pending tasks, or all of them when includeDone is set.
func (t *Tracker) List(includeDone bool) []model.Task {
	return model.Filter(t.snap.Tasks, includeDone)
}

// All is List(true) plus the done/pending counts.
func (t *Tracker) All() (tasks []model.Task, done, pending int) {
	tasks = t.List(true)
	done, pending = model.Stats(tasks)
	return
}

func (t *Tracker) commit(next *model.Snapshot) error {
	if err := t.store.Save(next); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	t.snap = next
	return nil
}
