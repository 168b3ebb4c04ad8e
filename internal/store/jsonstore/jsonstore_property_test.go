package jsonstore

import (
	"testing"
	"time"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/spf13/afero"
	"pgregory.net/rapid"
)

func genTimestamp(t *rapid.T, label string) *model.Timestamp {
	if !rapid.Bool().Draw(t, label+"Set") {
		return nil
	}
	sec := rapid.Int64Range(0, 4102444800).Draw(t, label+"Sec")
	return model.NewTimestamp(time.Unix(sec, 0))
}

func genTasks(t *rapid.T) []model.Task {
	n := rapid.IntRange(0, 15).Draw(t, "n")
	ids := rapid.Permutation(rapidRange(1, n+10)).Draw(t, "ids")
	tasks := make([]model.Task, n)
	for i := range tasks {
		done := rapid.Bool().Draw(t, "done")
		task := model.Task{
			ID:        ids[i],
			Title:     rapid.StringN(1, 30, -1).Draw(t, "title"),
			Done:      done,
			CreatedAt: genTimestamp(t, "created"),
		}
		if done {
			task.CompletedAt = genTimestamp(t, "completed")
		}
		tasks[i] = task
	}
	return tasks
}

func rapidRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func sameTimestamp(a, b *model.Timestamp) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Time().Equal(b.Time())
}

// save(load(save(T))) reproduces T field by field, in order.
func TestSaveLoadRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := genTasks(t)
		s := New(testPath, WithFs(afero.NewMemMapFs()))

		if err := s.Save(&model.Snapshot{Tasks: tasks}); err != nil {
			t.Fatal(err)
		}
		loaded, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Save(loaded); err != nil {
			t.Fatal(err)
		}
		again, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}

		if len(again.Tasks) != len(tasks) {
			t.Fatalf("got %d tasks, want %d", len(again.Tasks), len(tasks))
		}
		for i, want := range tasks {
			got := again.Tasks[i]
			if got.ID != want.ID || got.Title != want.Title || got.Done != want.Done {
				t.Fatalf("task %d: got %+v, want %+v", i, got, want)
			}
			if !sameTimestamp(got.CreatedAt, want.CreatedAt) || !sameTimestamp(got.CompletedAt, want.CompletedAt) {
				t.Fatalf("task %d: timestamps differ", i)
			}
		}
	})
}
